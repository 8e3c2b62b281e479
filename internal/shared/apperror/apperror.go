// Package apperror defines the error taxonomy shared by every workflow:
// validation (caller sent bad input), not found (referenced entity absent),
// conflict (duplicate tag or duplicate pending request), and storage (the
// record store failed). Expected business conditions are returned as these
// errors, never panics, and controllers map them to HTTP status codes in
// one place.
package apperror

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindStorage    Kind = "storage"
)

// Error carries a kind plus a human-readable message. The wrapped cause,
// when present, is reachable through errors.Unwrap.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Storage wraps a record-store failure. The caller-facing message stays
// generic; the cause is preserved for logs.
func Storage(msg string, err error) *Error {
	return &Error{Kind: KindStorage, Message: msg, Err: err}
}

// KindOf reports the Kind of err, or an empty Kind for errors outside the
// taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool   { return KindOf(err) == KindConflict }
func IsStorage(err error) bool    { return KindOf(err) == KindStorage }
