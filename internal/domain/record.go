package domain

import "strconv"

// Record - общее поведение City, Country и State. T - сам тип записи,
// методы работают со значениями и возвращают изменённые копии.
type Record[T any] interface {
	Valuer
	Key() Key
	Patched(p Patch) T
	WithID(id string) T
	Normalized() T
	// EnvelopeKey - ключ записи в ответе вида {"cities": {<key>: {...}}}
	EnvelopeKey() string
}

// City - город; идентичность (name, state_code)
type City struct {
	ID        string `json:"id,omitempty" db:"id"`
	Name      string `json:"name" db:"name"`
	StateCode string `json:"state_code" db:"state_code"`
}

func (c City) Key() Key {
	return Key{Name: c.Name, StateCode: c.StateCode}
}

func (c City) Value(field string) string {
	switch field {
	case FieldID:
		return c.ID
	case FieldName:
		return c.Name
	case FieldStateCode:
		return c.StateCode
	}
	return ""
}

func (c City) Patched(p Patch) City {
	if v, ok := p.String(FieldName); ok {
		c.Name = v
	}
	if v, ok := p.String(FieldStateCode); ok {
		c.StateCode = v
	}
	return c.Normalized()
}

func (c City) WithID(id string) City {
	c.ID = id
	return c
}

func (c City) Normalized() City {
	k := c.Key().Normalize()
	c.Name, c.StateCode = k.Name, k.StateCode
	return c
}

func (c City) EnvelopeKey() string {
	return c.Key().String()
}

// Country - страна; идентичность по имени
type Country struct {
	ID      string `json:"id,omitempty" db:"id"`
	Name    string `json:"name" db:"name"`
	ISOCode string `json:"iso_code" db:"iso_code"`
}

func (c Country) Key() Key {
	return Key{Name: c.Name}
}

func (c Country) Value(field string) string {
	switch field {
	case FieldID:
		return c.ID
	case FieldName:
		return c.Name
	case FieldISOCode:
		return c.ISOCode
	}
	return ""
}

func (c Country) Patched(p Patch) Country {
	if v, ok := p.String(FieldName); ok {
		c.Name = v
	}
	if v, ok := p.String(FieldISOCode); ok {
		c.ISOCode = v
	}
	return c.Normalized()
}

func (c Country) WithID(id string) Country {
	c.ID = id
	return c
}

func (c Country) Normalized() Country {
	c.Name = c.Key().Normalize().Name
	c.ISOCode = NormalizeCode(c.ISOCode)
	return c
}

func (c Country) EnvelopeKey() string {
	return c.Name
}

// State - штат; идентичность по имени, state_code тоже уникален
type State struct {
	ID         string `json:"id,omitempty" db:"id"`
	Name       string `json:"name" db:"name"`
	StateCode  string `json:"state_code" db:"state_code"`
	Capital    string `json:"capital,omitempty" db:"capital"`
	Population *int   `json:"population,omitempty" db:"population"`
}

func (s State) Key() Key {
	return Key{Name: s.Name}
}

func (s State) Value(field string) string {
	switch field {
	case FieldID:
		return s.ID
	case FieldName:
		return s.Name
	case FieldStateCode:
		return s.StateCode
	case FieldCapital:
		return s.Capital
	case FieldPopulation:
		if s.Population == nil {
			return ""
		}
		return strconv.Itoa(*s.Population)
	}
	return ""
}

func (s State) Patched(p Patch) State {
	if v, ok := p.String(FieldName); ok {
		s.Name = v
	}
	if v, ok := p.String(FieldStateCode); ok {
		s.StateCode = v
	}
	if v, ok := p.String(FieldCapital); ok {
		s.Capital = v
	}
	if v, ok := p.Int(FieldPopulation); ok {
		population := v
		s.Population = &population
	}
	return s.Normalized()
}

func (s State) WithID(id string) State {
	s.ID = id
	return s
}

func (s State) Normalized() State {
	s.Name = s.Key().Normalize().Name
	s.StateCode = NormalizeCode(s.StateCode)
	return s
}

func (s State) EnvelopeKey() string {
	return s.Name
}
