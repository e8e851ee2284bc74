package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage describes a missing Redis key.
	RedisNotFoundMessage = "redis key not found"
	// StorageErrorMessage describes local storage failures.
	StorageErrorMessage = "local storage operation failed"
)

// Domain sentinels. Wrap them with New to attach a status and message.
var (
	ErrOutOfStock      = errors.New("product is out of stock")
	ErrProductNotFound = errors.New("product not found")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrMissingField    = errors.New("required field is missing")
)

// Error wraps an underlying error with an HTTP-style status and a safe message.
type Error struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error with the provided information.
func New(err error, status int, message string) *Error {
	return &Error{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// OutOfStock reports that productID cannot be added because its stock is 0.
func OutOfStock(productID string) *Error {
	return New(ErrOutOfStock, http.StatusConflict, fmt.Sprintf("product %s is out of stock", productID))
}

// ProductNotFound reports an unknown product id.
func ProductNotFound(productID string) *Error {
	return New(ErrProductNotFound, http.StatusNotFound, fmt.Sprintf("product %s not found", productID))
}

// MissingField reports a blank required form field.
func MissingField(field string) *Error {
	return New(ErrMissingField, http.StatusBadRequest, fmt.Sprintf("%s is required", field))
}

// WrapStorage wraps a local storage error with a consistent status code and message.
func WrapStorage(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusInternalServerError, StorageErrorMessage)
}

// StatusOf returns the status carried by err, or 500 for foreign errors.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}

// Is reports whether the target matches the underlying error.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to Error or the wrapped error in a chain.
func (e *Error) As(target any) bool {
	if errors.As(e.Err, target) {
		return true
	}
	if t, ok := target.(**Error); ok {
		*t = e
		return true
	}
	return false
}
