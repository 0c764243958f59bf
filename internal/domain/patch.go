package domain

import (
	"sort"
	"strings"
)

// Patch - частичное обновление: поле -> новое значение.
// Значения строковые, кроме population (int).
type Patch map[string]interface{}

// String возвращает строковое значение поля, если оно задано
func (p Patch) String(field string) (string, bool) {
	v, ok := p[field]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Int возвращает целое значение поля, если оно задано
func (p Patch) Int(field string) (int, bool) {
	v, ok := p[field]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	}
	return 0, false
}

// Fields - имена изменяемых полей в стабильном порядке
func (p Patch) Fields() []string {
	fields := make([]string, 0, len(p))
	for f := range p {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Normalized - копия патча с обрезанными строками и кодами в верхнем регистре
func (p Patch) Normalized() Patch {
	out := make(Patch, len(p))
	for field, value := range p {
		s, ok := value.(string)
		if !ok {
			out[field] = value
			continue
		}
		switch field {
		case FieldStateCode, FieldISOCode:
			out[field] = NormalizeCode(s)
		default:
			out[field] = strings.TrimSpace(s)
		}
	}
	return out
}
