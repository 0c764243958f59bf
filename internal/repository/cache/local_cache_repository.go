package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/geo-directory/internal/domain"
	"github.com/geo-directory/internal/domain/repository"
)

type localCacheRepository struct {
	cache  *gocache.Cache
	logger *zap.Logger
}

// NewLocalCacheRepository - кеш в памяти процесса, когда Redis выключен
func NewLocalCacheRepository(defaultTTL time.Duration, logger *zap.Logger) repository.CacheRepository {
	return &localCacheRepository{
		cache:  gocache.New(defaultTTL, 2*defaultTTL),
		logger: logger,
	}
}

func (r *localCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	v, ok := r.cache.Get(key)
	if !ok {
		return nil, nil
	}
	r.logger.Debug("Local cache hit", zap.String("key", key))
	switch val := v.(type) {
	case []byte:
		return val, nil
	case int64:
		// счётчики Incr отдаём так же, как Redis: десятичной строкой
		return []byte(strconv.FormatInt(val, 10)), nil
	}
	return nil, fmt.Errorf("local cache: unexpected value type %T for key %s", v, key)
}

func (r *localCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	r.cache.Set(key, value, ttl)
	return nil
}

func (r *localCacheRepository) Delete(ctx context.Context, key string) error {
	r.cache.Delete(key)
	return nil
}

func (r *localCacheRepository) Incr(ctx context.Context, key string) (int64, error) {
	// Add не перезаписывает существующий счётчик
	_ = r.cache.Add(key, int64(0), gocache.NoExpiration)
	n, err := r.cache.IncrementInt64(key, 1)
	if err != nil {
		return 0, fmt.Errorf("local cache incr error: %w", err)
	}
	return n, nil
}

func (r *localCacheRepository) GetStats(ctx context.Context) (*domain.Statistics, error) {
	data, _ := r.Get(ctx, StatsKey)
	return decodeStats(data)
}

func (r *localCacheRepository) SetStats(ctx context.Context, stats *domain.Statistics, ttl time.Duration) error {
	data, err := encodeStats(stats)
	if err != nil {
		return err
	}
	return r.Set(ctx, StatsKey, data, ttl)
}
