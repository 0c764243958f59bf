package domain

import "strings"

// Поля записей (совпадают с JSON-ключами и колонками БД)
const (
	FieldID         = "id"
	FieldName       = "name"
	FieldStateCode  = "state_code"
	FieldISOCode    = "iso_code"
	FieldCapital    = "capital"
	FieldPopulation = "population"
)

// MatchMode - как поле сравнивается при поиске
type MatchMode int

const (
	// MatchSubstring - регистронезависимое вхождение подстроки
	MatchSubstring MatchMode = iota
	// MatchExact - регистронезависимое равенство (для кодов)
	MatchExact
)

// SearchField - поисковый параметр коллекции
type SearchField struct {
	Name string
	Mode MatchMode
}

// FieldType - JSON-тип поля во входящем теле запроса
type FieldType int

const (
	FieldString FieldType = iota
	FieldInt
)

// FieldSpec - описание изменяемого поля записи
type FieldSpec struct {
	Name     string
	Type     FieldType
	Required bool
	// Rules - теги go-playground/validator для значения поля
	Rules string
}

// Kind описывает коллекцию: имена, таблицу, поисковые и сортируемые поля.
// Три коллекции отличаются только этим описанием.
type Kind struct {
	Singular     string
	Plural       string
	Table        string
	SearchFields []SearchField
	SortFields   []string
	// KeyFields - колонки, образующие идентичность
	KeyFields []string
	// UniqueFields - прочие колонки с ограничением уникальности
	UniqueFields []string
	Fields       []FieldSpec
}

var (
	CityKind = Kind{
		Singular: "city",
		Plural:   "cities",
		Table:    "cities",
		SearchFields: []SearchField{
			{Name: FieldName, Mode: MatchSubstring},
			{Name: FieldStateCode, Mode: MatchExact},
		},
		SortFields: []string{FieldName, FieldStateCode},
		KeyFields:  []string{FieldName, FieldStateCode},
		Fields: []FieldSpec{
			{Name: FieldName, Required: true, Rules: "max=100"},
			{Name: FieldStateCode, Required: true, Rules: "statecode"},
		},
	}

	CountryKind = Kind{
		Singular: "country",
		Plural:   "countries",
		Table:    "countries",
		SearchFields: []SearchField{
			{Name: FieldName, Mode: MatchSubstring},
			{Name: FieldISOCode, Mode: MatchExact},
		},
		SortFields: []string{FieldName, FieldISOCode},
		KeyFields:  []string{FieldName},
		Fields: []FieldSpec{
			{Name: FieldName, Required: true, Rules: "max=100"},
			{Name: FieldISOCode, Required: true, Rules: "isocode"},
		},
	}

	StateKind = Kind{
		Singular: "state",
		Plural:   "states",
		Table:    "states",
		SearchFields: []SearchField{
			{Name: FieldName, Mode: MatchSubstring},
			{Name: FieldStateCode, Mode: MatchExact},
			{Name: FieldCapital, Mode: MatchSubstring},
		},
		SortFields:   []string{FieldName, FieldStateCode, FieldCapital, FieldPopulation},
		KeyFields:    []string{FieldName},
		UniqueFields: []string{FieldStateCode},
		Fields: []FieldSpec{
			{Name: FieldName, Required: true, Rules: "max=100"},
			{Name: FieldStateCode, Required: true, Rules: "statecode"},
			{Name: FieldCapital, Rules: "max=100"},
			{Name: FieldPopulation, Type: FieldInt, Rules: "min=1,max=2147483647"},
		},
	}
)

// SearchParamNames - имена поисковых параметров в порядке объявления
func (k Kind) SearchParamNames() []string {
	names := make([]string, len(k.SearchFields))
	for i, f := range k.SearchFields {
		names[i] = f.Name
	}
	return names
}

// CompositeKey - нужен ли код штата для идентификации записи
func (k Kind) CompositeKey() bool {
	return len(k.KeyFields) > 1
}

// Sortable проверяет, можно ли сортировать по полю
func (k Kind) Sortable(field string) bool {
	for _, f := range k.SortFields {
		if f == field {
			return true
		}
	}
	return false
}

// Field возвращает описание поля по имени
func (k Kind) Field(name string) (FieldSpec, bool) {
	for _, f := range k.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// NewFilter строит фильтр из параметров запроса. Пустые и состоящие
// из пробелов значения отбрасываются, неизвестные параметры игнорируются.
func (k Kind) NewFilter(params map[string]string) Filter {
	filter := make(Filter, 0, len(k.SearchFields))
	for _, f := range k.SearchFields {
		value, ok := params[f.Name]
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		if f.Mode == MatchExact {
			value = strings.TrimSpace(value)
		}
		filter = append(filter, Criterion{Field: f.Name, Mode: f.Mode, Value: value})
	}
	return filter
}
