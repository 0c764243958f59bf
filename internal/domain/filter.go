package domain

import "strings"

// Valuer отдаёт текстовое значение поля записи по имени
type Valuer interface {
	Value(field string) string
}

// Criterion - одно условие поиска
type Criterion struct {
	Field string
	Mode  MatchMode
	Value string
}

// Matches проверяет одно условие
func (c Criterion) Matches(r Valuer) bool {
	got := r.Value(c.Field)
	switch c.Mode {
	case MatchExact:
		return strings.EqualFold(strings.TrimSpace(got), strings.TrimSpace(c.Value))
	default:
		return strings.Contains(strings.ToLower(got), strings.ToLower(c.Value))
	}
}

// Filter - набор условий, объединённых через AND
type Filter []Criterion

// Empty - ни одного условия не задано
func (f Filter) Empty() bool {
	return len(f) == 0
}

// Matches - запись удовлетворяет всем условиям
func (f Filter) Matches(r Valuer) bool {
	for _, c := range f {
		if !c.Matches(r) {
			return false
		}
	}
	return true
}

// Apply возвращает подмножество записей, удовлетворяющих фильтру
func Apply[T Valuer](f Filter, records []T) []T {
	result := make([]T, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			result = append(result, r)
		}
	}
	return result
}

// Params - обратное преобразование в map (для ключей кеша и логов)
func (f Filter) Params() map[string]string {
	params := make(map[string]string, len(f))
	for _, c := range f {
		params[c.Field] = c.Value
	}
	return params
}
