package domain

import (
	"strings"
	"time"
)

// Key - идентичность записи. Для городов имя неоднозначно,
// поэтому в ключ входит код штата; у стран и штатов StateCode пустой.
type Key struct {
	Name      string `json:"name"`
	StateCode string `json:"state_code,omitempty"`
}

// String - "Boston, MA" для городов, "Canada" для остальных
func (k Key) String() string {
	if k.StateCode == "" {
		return k.Name
	}
	return k.Name + ", " + k.StateCode
}

// Normalize обрезает пробелы и приводит код штата к верхнему регистру
func (k Key) Normalize() Key {
	return Key{
		Name:      strings.TrimSpace(k.Name),
		StateCode: NormalizeCode(k.StateCode),
	}
}

// NormalizeCode - коды (state_code, iso_code) храним в верхнем регистре
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// SortOrder направление сортировки
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ListOptions - параметры постраничной выборки. Limit == 0 означает "без пагинации".
type ListOptions struct {
	Page   int
	Limit  int
	SortBy string
	Order  SortOrder
}

// Paginated - запрошена ли пагинация
func (o ListOptions) Paginated() bool {
	return o.Limit > 0
}

// Offset для SQL OFFSET / среза
func (o ListOptions) Offset() int {
	if !o.Paginated() || o.Page <= 1 {
		return 0
	}
	return (o.Page - 1) * o.Limit
}

// Statistics - количество записей в каждой коллекции
type Statistics struct {
	Cities      int       `json:"cities"`
	Countries   int       `json:"countries"`
	States      int       `json:"states"`
	LastUpdated time.Time `json:"last_updated"`
}
