package application

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("validation failed")
)

// IsExpected reports whether err is a workflow outcome the caller is meant to
// handle, as opposed to a store or programming failure.
func IsExpected(err error) bool {
	for _, target := range []error{ErrNotFound, ErrConflict, ErrInvalidState, ErrForbidden, ErrValidation} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// TransitionError is returned when op is not legal from the current status.
type TransitionError struct {
	Op       Operation
	From     Status
	Expected []Status
}

func (e *TransitionError) Error() string {
	exp := make([]string, 0, len(e.Expected))
	for _, s := range e.Expected {
		exp = append(exp, string(s))
	}
	return fmt.Sprintf("cannot %s application in status %s (expected %s)",
		e.Op, e.From, strings.Join(exp, " or "))
}

func (e *TransitionError) Unwrap() error { return ErrInvalidState }

// DuplicateError reports the live application that blocks a new one.
type DuplicateError struct {
	ApplicationID string
	Status        Status
}

func (e *DuplicateError) Error() string {
	if e.ApplicationID == "" {
		return "a live application already exists for this employee, project and role"
	}
	return fmt.Sprintf("a live application already exists for this employee, project and role: %s (%s)",
		e.ApplicationID, e.Status)
}

func (e *DuplicateError) Unwrap() error { return ErrConflict }

// fieldError is a ValidationError carrying a readable message.
type fieldError struct{ msg string }

func validationf(format string, args ...any) error {
	return &fieldError{msg: fmt.Sprintf(format, args...)}
}

func (e *fieldError) Error() string { return e.msg }
func (e *fieldError) Unwrap() error { return ErrValidation }
