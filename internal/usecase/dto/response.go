package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/geo-directory/internal/domain"
)

// ListResponse - конверт {"<plural>": {<key>: {record}}, "count": N}.
// Записи сериализуются в порядке среза, поэтому сортировка сохраняется.
type ListResponse[T domain.Record[T]] struct {
	Plural  string
	Records []T
	// Page == 0 - ответ без пагинации
	Page  int
	Limit int
	Total int
}

func (r ListResponse[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	plural, _ := json.Marshal(r.Plural)
	buf.WriteByte('{')
	buf.Write(plural)
	buf.WriteString(":{")
	for i, rec := range r.Records {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(rec.EnvelopeKey())
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(rec)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteString("}")
	fmt.Fprintf(&buf, `,"count":%d`, len(r.Records))
	if r.Page > 0 {
		fmt.Fprintf(&buf, `,"page":%d,"limit":%d,"total":%d`, r.Page, r.Limit, r.Total)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// CountResponse - ответ GET /{plural}/count
type CountResponse struct {
	Count int `json:"count"`
}

// BulkError - ошибка одного элемента bulk-запроса
type BulkError struct {
	Index int    `json:"index"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error"`
}

// BulkResponse - итог bulk-операции; элементы обрабатываются независимо
type BulkResponse struct {
	Success int         `json:"success"`
	Failed  int         `json:"failed"`
	IDs     []string    `json:"ids"`
	Errors  []BulkError `json:"errors"`
}

// DependencyHealth - состояние одной зависимости
type DependencyHealth struct {
	OK          bool    `json:"ok"`
	RoundTripMS float64 `json:"round_trip_ms"`
	Error       string  `json:"error,omitempty"`
}

// HealthResponse - ответ GET /health
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Unix      int64             `json:"unix"`
	DB        DependencyHealth  `json:"db"`
	Cache     *DependencyHealth `json:"cache,omitempty"`
}
