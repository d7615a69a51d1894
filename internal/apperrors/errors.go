package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError reports bad caller input. It is never retried and the
// message is safe to surface verbatim.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func Validation(msg string) error {
	return &ValidationError{msg: msg}
}

// NotFoundError reports a lookup for an id that does not exist.
type NotFoundError struct {
	Kind string
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

func NotFound(kind string, id int64) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// PersistenceError wraps an underlying storage I/O failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func Persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

// InvalidAPIKeyError is kept distinct from generic generation failures so
// callers can route the user to key management instead of a retry prompt.
type InvalidAPIKeyError struct {
	msg string
}

func (e *InvalidAPIKeyError) Error() string { return e.msg }

func InvalidAPIKey() error {
	return &InvalidAPIKeyError{msg: "the provided Google Imagen API key appears to be invalid"}
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsInvalidAPIKey(err error) bool {
	var target *InvalidAPIKeyError
	return errors.As(err, &target)
}

// Normalize guarantees a non-nil, message-bearing error for the binding
// layer. A nil err yields a generic error built from fallback.
func Normalize(err error, fallback string) error {
	if err == nil {
		return errors.New(fallback)
	}
	if err.Error() == "" {
		return errors.New(fallback)
	}
	return err
}
