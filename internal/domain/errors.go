package domain

import (
	"errors"
	"net/http"
)

// Error codes for business logic errors.
const (
	CodeNotFound         = 1
	CodeInvalidArgument  = 2
	CodeStoreUnavailable = 3
	CodeInternal         = 4
)

// AppError represents a business logic error with a code, message, and optional wrapped error.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the wrapped error for use with errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined business errors.
//
// Match categories with the helper functions (IsNotFound, IsInvalidArgument, ...)
// rather than errors.Is: the helpers compare error codes, so freshly built
// errors from NewAppError match as well as the sentinels below.
var (
	ErrNotFound         = &AppError{Code: CodeNotFound, Message: "not found"}
	ErrInvalidArgument  = &AppError{Code: CodeInvalidArgument, Message: "invalid argument"}
	ErrStoreUnavailable = &AppError{Code: CodeStoreUnavailable, Message: "store unavailable"}
	ErrInternal         = &AppError{Code: CodeInternal, Message: "internal error"}
)

// NewAppError creates a new AppError with the given code, message, and wrapped error.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsNotFound reports whether err is or wraps an AppError with CodeNotFound.
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsInvalidArgument reports whether err is or wraps an AppError with CodeInvalidArgument.
func IsInvalidArgument(err error) bool {
	return hasCode(err, CodeInvalidArgument)
}

// IsStoreUnavailable reports whether err is or wraps an AppError with CodeStoreUnavailable.
func IsStoreUnavailable(err error) bool {
	return hasCode(err, CodeStoreUnavailable)
}

// IsInternal reports whether err is or wraps an AppError with CodeInternal.
func IsInternal(err error) bool {
	return hasCode(err, CodeInternal)
}

func hasCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// HTTPStatusCode maps an error to an HTTP status code.
// Store failures are server errors; anything that is not an *AppError maps to 500.
func HTTPStatusCode(err error) int {
	var appErr *AppError
	if err != nil && errors.As(err, &appErr) {
		switch appErr.Code {
		case CodeNotFound:
			return http.StatusNotFound
		case CodeInvalidArgument:
			return http.StatusBadRequest
		case CodeStoreUnavailable, CodeInternal:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}
