package domain

import (
	"errors"
	"fmt"
)

// The three failure kinds the engine surfaces. Callers classify errors with
// errors.Is and map them to their own surface (status codes, exit codes).
// None of them is retried automatically.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrRecordNotFound  = errors.New("record not found")
	ErrConflict        = errors.New("conflict")
)

// Error pairs one of the failure kinds with a caller-facing reason.
type Error struct {
	kind   error
	reason string
}

func (e *Error) Error() string { return e.reason }

func (e *Error) Unwrap() error { return e.kind }

func InvalidArgumentError(format string, args ...any) error {
	return &Error{kind: ErrInvalidArgument, reason: fmt.Sprintf(format, args...)}
}

func NotFoundError(format string, args ...any) error {
	return &Error{kind: ErrRecordNotFound, reason: fmt.Sprintf(format, args...)}
}

func ConflictError(format string, args ...any) error {
	return &Error{kind: ErrConflict, reason: fmt.Sprintf(format, args...)}
}
