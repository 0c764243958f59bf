package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is сравнивает ошибки по коду, чтобы errors.Is(err, ErrNotFound)
// срабатывал и для ошибок, созданных через NotFound(...)
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

// WithDetails возвращает копию ошибки с деталями, исходная (часто sentinel) не меняется
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// WithMessage возвращает копию ошибки с другим текстом
func (e *AppError) WithMessage(message string) *AppError {
	cp := *e
	cp.Message = message
	return &cp
}

// As достаёт *AppError из цепочки обёрток
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is - прокси на стандартный errors.Is, чтобы не импортировать оба пакета
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// NotFound - "No such city: Boston, MA"
func NotFound(kind, key string) *AppError {
	return ErrNotFound.WithMessage(fmt.Sprintf("No such %s: %s", kind, key))
}

// Conflict - "City already exists: Boston, MA"
func Conflict(kind, key string) *AppError {
	return ErrConflict.WithMessage(fmt.Sprintf("%s already exists: %s", capitalize(kind), key))
}

// Validation - ошибка валидации с произвольным текстом
func Validation(message string) *AppError {
	return ErrValidation.WithMessage(message)
}

// MissingParams - "Provide at least one parameter: name, state_code"
func MissingParams(params []string) *AppError {
	return ErrMissingParams.WithMessage("Provide at least one parameter: " + strings.Join(params, ", "))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
