package apperror

import "net/http"

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)
)

// RequiredField builds the error for a missing required field.
func RequiredField(field string) *AppError {
	return New(CodeInvalidInput, field+" is required", http.StatusBadRequest)
}

// InvalidField builds the error for a field that failed validation.
func InvalidField(field string) *AppError {
	return New(CodeInvalidInput, field+" is invalid", http.StatusBadRequest)
}
