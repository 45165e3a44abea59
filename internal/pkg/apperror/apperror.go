package apperror

import "net/http"

// AppError is a custom error type that includes an HTTP status code and an optional underlying error.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error kinds. Every domain error wraps exactly one of these so callers can
// classify failures with errors.Is regardless of the concrete message.
var (
	ErrNotFound   = New(http.StatusNotFound, "not found")
	ErrValidation = New(http.StatusBadRequest, "validation failed")
	ErrDuplicate  = New(http.StatusConflict, "already exists")
	ErrAuth       = New(http.StatusUnauthorized, "authentication failed")
)

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Kind creates an error of the given kind with its own message.
// The HTTP status code is inherited from the kind.
func Kind(kind *AppError, message string) *AppError {
	return Wrap(kind, kind.Code, message)
}
