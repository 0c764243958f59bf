package validator

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/geo-directory/internal/domain"
	"github.com/geo-directory/internal/pkg/errors"
)

var (
	validate *validator.Validate

	stateCodeRe = regexp.MustCompile(`^[A-Z]{2}$`)
	isoCodeRe   = regexp.MustCompile(`^[A-Z]{2,3}$`)
)

func init() {
	validate = validator.New()

	// В сообщениях об ошибках используем имена JSON-полей
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = validate.RegisterValidation("statecode", func(fl validator.FieldLevel) bool {
		return stateCodeRe.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("isocode", func(fl validator.FieldLevel) bool {
		return isoCodeRe.MatchString(fl.Field().String())
	})
}

// Validate - валидация структуры; ошибка приводится к errors.ErrValidation
func Validate(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return translate("", err)
	}
	return nil
}

// Var - валидация одного значения по набору тегов
func Var(field string, value interface{}, rules string) error {
	if err := validate.Var(value, rules); err != nil {
		return translate(field, err)
	}
	return nil
}

// DecodeFields разбирает JSON-объект тела запроса на создание записи в Patch
// по описанию коллекции; все обязательные поля должны присутствовать.
// Строки обрезаются, коды приводятся к верхнему регистру до проверки правил.
func DecodeFields(kind domain.Kind, body []byte) (domain.Patch, error) {
	return decodeFields(kind, body, false)
}

// DecodePatch - то же для частичного обновления: любое непустое подмножество полей
func DecodePatch(kind domain.Kind, body []byte) (domain.Patch, error) {
	return decodeFields(kind, body, true)
}

func decodeFields(kind domain.Kind, body []byte, partial bool) (domain.Patch, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return nil, errors.Validation("Request body must be a JSON object")
	}

	var unexpected []string
	for name := range raw {
		if _, ok := kind.Field(name); !ok {
			unexpected = append(unexpected, name)
		}
	}
	if len(unexpected) > 0 {
		sort.Strings(unexpected)
		return nil, errors.Validation("Unexpected fields: " + strings.Join(unexpected, ", "))
	}

	if partial && len(raw) == 0 {
		return nil, errors.Validation("No fields to update")
	}

	if !partial {
		var missing []string
		for _, f := range kind.Fields {
			if _, ok := raw[f.Name]; f.Required && !ok {
				missing = append(missing, f.Name)
			}
		}
		if len(missing) > 0 {
			return nil, errors.Validation("Missing required fields: " + strings.Join(missing, ", "))
		}
	}

	patch := make(domain.Patch, len(raw))
	var empty []string
	for _, f := range kind.Fields {
		value, ok := raw[f.Name]
		if !ok {
			continue
		}
		if string(value) == "null" {
			if !f.Required {
				return nil, typeError(f)
			}
			empty = append(empty, f.Name)
			continue
		}

		switch f.Type {
		case domain.FieldInt:
			var n float64
			if err := json.Unmarshal(value, &n); err != nil || n != math.Trunc(n) {
				return nil, typeError(f)
			}
			// колонка INTEGER
			if n > math.MaxInt32 {
				return nil, errors.Validation(fmt.Sprintf("%s must be at most %d", f.Name, math.MaxInt32))
			}
			if n < math.MinInt32 {
				return nil, errors.Validation(fmt.Sprintf("%s must be at least %d", f.Name, math.MinInt32))
			}
			patch[f.Name] = int(n)
		default:
			var s string
			if err := json.Unmarshal(value, &s); err != nil {
				return nil, typeError(f)
			}
			if f.Required && strings.TrimSpace(s) == "" {
				empty = append(empty, f.Name)
				continue
			}
			patch[f.Name] = s
		}
	}
	if len(empty) > 0 {
		return nil, errors.Validation("Fields cannot be empty: " + strings.Join(empty, ", "))
	}

	patch = patch.Normalized()
	for _, f := range kind.Fields {
		value, ok := patch[f.Name]
		if !ok || f.Rules == "" {
			continue
		}
		if err := Var(f.Name, value, f.Rules); err != nil {
			return nil, err
		}
	}
	return patch, nil
}

func typeError(f domain.FieldSpec) error {
	if f.Type == domain.FieldInt {
		return errors.Validation(fmt.Sprintf("%s must be an integer", f.Name))
	}
	return errors.Validation(fmt.Sprintf("%s must be a string", f.Name))
}

// translate превращает ошибки validator в сообщения API
func translate(field string, err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return errors.Validation(err.Error())
	}

	fe := verrs[0]
	name := field
	if name == "" {
		name = fe.Field()
	}

	var msg string
	switch fe.Tag() {
	case "statecode":
		msg = fmt.Sprintf("%s must be exactly 2 uppercase letters", name)
	case "isocode":
		msg = fmt.Sprintf("%s must be 2-3 uppercase letters", name)
	case "required":
		msg = fmt.Sprintf("Missing required fields: %s", name)
	case "max":
		if fe.Kind() == reflect.String {
			msg = fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
		} else {
			msg = fmt.Sprintf("%s must be at most %s", name, fe.Param())
		}
	case "min":
		if fe.Kind() != reflect.String && fe.Param() == "1" {
			msg = fmt.Sprintf("%s must be a positive integer", name)
		} else {
			msg = fmt.Sprintf("%s must be at least %s", name, fe.Param())
		}
	case "oneof":
		msg = fmt.Sprintf("%s must be one of: %s", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		msg = fmt.Sprintf("%s is invalid", name)
	}
	return errors.Validation(msg)
}
