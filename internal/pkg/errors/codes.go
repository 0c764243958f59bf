package errors

import "net/http"

var (
	ErrNotFound = New(
		"NOT_FOUND",
		"Record not found",
		http.StatusNotFound,
	)

	ErrConflict = New(
		"CONFLICT",
		"Record already exists",
		http.StatusConflict,
	)

	ErrValidation = New(
		"VALIDATION_ERROR",
		"Validation failed",
		http.StatusBadRequest,
	)

	ErrMissingParams = New(
		"MISSING_PARAMETERS",
		"Provide at least one parameter",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidBody = New(
		"INVALID_BODY",
		"Invalid request body",
		http.StatusBadRequest,
	)

	ErrRateLimited = New(
		"RATE_LIMIT_EXCEEDED",
		"Rate limit exceeded",
		http.StatusTooManyRequests,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
