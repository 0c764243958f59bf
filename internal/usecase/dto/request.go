package dto

import (
	"encoding/json"
	"strings"

	"github.com/geo-directory/internal/domain"
	"github.com/geo-directory/internal/pkg/errors"
)

// DefaultPageSize - размер страницы, если передан только page
const DefaultPageSize = 20

// ListRequest - параметры GET /{plural}
type ListRequest struct {
	Page   int    `query:"page" json:"page" validate:"min=0"`
	Limit  int    `query:"limit" json:"limit" validate:"min=0,max=1000"`
	SortBy string `query:"sort_by" json:"sort_by"`
	Order  string `query:"order" json:"order" validate:"omitempty,oneof=asc desc"`
}

// Options переводит запрос в параметры репозитория
func (r ListRequest) Options() domain.ListOptions {
	opts := domain.ListOptions{
		Page:   r.Page,
		Limit:  r.Limit,
		SortBy: r.SortBy,
		Order:  domain.SortOrder(strings.ToLower(r.Order)),
	}
	if opts.Page > 0 && opts.Limit == 0 {
		opts.Limit = DefaultPageSize
	}
	if opts.Limit > 0 && opts.Page == 0 {
		opts.Page = 1
	}
	return opts
}

// BulkUpdateItem - элемент PUT /{plural}/bulk
type BulkUpdateItem struct {
	ID     json.RawMessage `json:"id"`
	Fields json.RawMessage `json:"fields"`
}

// DecodeKey разбирает ключ записи из тела bulk-запроса.
// Для городов это {"name": ..., "state_code": ...}, для остальных - строка с именем.
func DecodeKey(kind domain.Kind, raw json.RawMessage) (domain.Key, error) {
	var key domain.Key

	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		key.Name = name
	} else if err := json.Unmarshal(raw, &key); err != nil {
		return key, errors.Validation("Invalid " + kind.Singular + " identifier")
	}

	key = key.Normalize()
	if err := ValidateKey(kind, key); err != nil {
		return key, err
	}
	return key, nil
}

// ValidateKey проверяет, что ключ однозначно определяет запись коллекции
func ValidateKey(kind domain.Kind, key domain.Key) error {
	if strings.TrimSpace(key.Name) == "" {
		return errors.Validation("Missing required fields: name")
	}
	if kind.CompositeKey() && strings.TrimSpace(key.StateCode) == "" {
		return errors.ErrInvalidRequest.WithMessage("state_code is required to identify a " + kind.Singular)
	}
	return nil
}
