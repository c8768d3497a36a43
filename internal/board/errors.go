package board

import (
	"errors"
	"fmt"
)

// Kind classifies a board failure.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindForbidden
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindForbidden:
		return "forbidden"
	case KindValidation:
		return "validation failed"
	default:
		return "internal"
	}
}

// Error is returned by every board operation that fails.
// Message is safe to show to clients and never contains a secret.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Kind == KindInternal {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err. Errors that did not come from the board are internal.
func KindOf(err error) Kind {
	var boardErr *Error
	if errors.As(err, &boardErr) {
		return boardErr.Kind
	}
	return KindInternal
}

func notFound(entity, id string) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

func forbidden(entity string) error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf("%s secret does not match", entity)}
}

func invalid(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func internal(message string, err error) error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}
