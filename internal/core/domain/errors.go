package domain

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrConcurrentUpdate = errors.New("concurrent update")
)

// Error carries one of the sentinel kinds above plus a message that is safe
// to show to the caller.
type Error struct {
	Kind    error
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func InvalidInput(field, message string) error {
	return &Error{Kind: ErrInvalidInput, Field: field, Message: message}
}

func NotFound(field, message string) error {
	return &Error{Kind: ErrNotFound, Field: field, Message: message}
}

func Conflict(field, message string) error {
	return &Error{Kind: ErrConflict, Field: field, Message: message}
}

func Unauthenticated(message string) error {
	return &Error{Kind: ErrUnauthenticated, Field: "auth", Message: message}
}

func ConcurrentUpdate(field, message string) error {
	return &Error{Kind: ErrConcurrentUpdate, Field: field, Message: message}
}
