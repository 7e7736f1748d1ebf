package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error for propagation decisions: validation errors are
// reported to the user and dropped, transient errors may be retried, capacity
// errors trigger eviction, not-found errors produce a bounded reply.
type Kind string

const (
	KindValidation Kind = "VALIDATION"
	KindTransient  Kind = "TRANSIENT"
	KindCapacity   Kind = "CAPACITY"
	KindNotFound   Kind = "NOT_FOUND"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewValidation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NewTransient(message string, err error) *Error {
	return &Error{Kind: KindTransient, Message: message, Err: err}
}

func NewCapacity(message string) *Error {
	return &Error{Kind: KindCapacity, Message: message}
}

func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// KindOf returns the Kind of err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsTransient(err error) bool  { return KindOf(err) == KindTransient }
func IsCapacity(err error) bool   { return KindOf(err) == KindCapacity }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
