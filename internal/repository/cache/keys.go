package cache

import (
	"encoding/json"
	"fmt"

	"github.com/geo-directory/internal/domain"
)

// StatsKey - ключ снимка статистики, который пишет воркер
const StatsKey = "geo:stats:current"

// VersionKey - счётчик версии коллекции; растёт при каждой записи
func VersionKey(plural string) string {
	return fmt.Sprintf("geo:%s:version", plural)
}

// EntryKey - ключ закешированного ответа для заданной версии коллекции
func EntryKey(plural string, version int64, parts ...string) string {
	key := fmt.Sprintf("geo:%s:v%d", plural, version)
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

func decodeStats(data []byte) (*domain.Statistics, error) {
	if data == nil {
		return nil, nil // Cache miss
	}
	var stats domain.Statistics
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("unmarshal stats: %w", err)
	}
	return &stats, nil
}

func encodeStats(stats *domain.Statistics) ([]byte, error) {
	data, err := json.Marshal(stats)
	if err != nil {
		return nil, fmt.Errorf("marshal stats: %w", err)
	}
	return data, nil
}
