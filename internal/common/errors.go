package common

import "errors"

// Error codes reported to the customer by the input validation layer. The
// calculation core itself has no error paths; anything it cannot handle is
// a caller contract violation.
const (
	CodeEmptyInput         = "EMPTY_INPUT"
	CodeInvalidFormat      = "INVALID_FORMAT"
	CodeProductNotFound    = "PRODUCT_NOT_FOUND"
	CodeStockLimitExceeded = "STOCK_LIMIT_EXCEEDED"
)

// AppError represents an error with an attached code and a user-facing
// message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap allows errors.Is/As to inspect the underlying error.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewAppError constructs an AppError.
func NewAppError(code, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// IsAppError checks whether the error is an AppError.
func IsAppError(err error) bool {
	var target *AppError
	return errors.As(err, &target)
}

// CodeOf returns the AppError code, or the empty string for other errors.
func CodeOf(err error) string {
	var target *AppError
	if errors.As(err, &target) {
		return target.Code
	}
	return ""
}

// MessageOf returns the user-facing message of an AppError, falling back
// to the plain error text.
func MessageOf(err error) string {
	var target *AppError
	if errors.As(err, &target) && target.Message != "" {
		return target.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
