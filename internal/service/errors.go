package service

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("duplicate name")
	ErrInvalid  = errors.New("invalid")
)

// Error pairs a taxonomy sentinel with the message the caller should
// see. errors.Is(err, sentinel) keeps working through it.
type Error struct {
	kind    error
	message string
}

func (e *Error) Error() string { return e.message }

func (e *Error) Is(target error) bool { return target == e.kind }

func Invalid(message string) error { return &Error{kind: ErrInvalid, message: message} }

func NotFound(message string) error { return &Error{kind: ErrNotFound, message: message} }

func Conflict(message string) error { return &Error{kind: ErrConflict, message: message} }

// CascadeError is returned when removing a deleted tag's references from
// notes fails. The tag row and the reference cleanup are independent
// operations, so the tag may already be gone when this is reported.
type CascadeError struct {
	TagID int64
	Err   error
}

func (e *CascadeError) Error() string {
	return "remove tag references: " + e.Err.Error()
}

func (e *CascadeError) Unwrap() error { return e.Err }
