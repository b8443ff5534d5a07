package core

import (
	"strconv"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("record not found")

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	if len(err.Fields) > 0 {
		msg := "invalid " + err.Fields[0].Field + ": " + err.Fields[0].Error
		if n := len(err.Fields) - 1; n > 0 {
			msg += " (and " + strconv.Itoa(n) + " more)"
		}
		return msg
	}
	return ""
}

// ConstraintError reports a violated store constraint (unique key, foreign key, not null).
type ConstraintError struct {
	Constraint string
	Detail     string
}

func NewConstraintError(constraint, detail string) error {
	return &ConstraintError{Constraint: constraint, Detail: detail}
}

func (err ConstraintError) Error() string {
	return "violates constraint " + err.Constraint + ": " + err.Detail
}

func IsConstraint(err error) bool {
	_, ok := errors.Cause(err).(*ConstraintError)
	return ok
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
