// Package errors contains helpers for wrapping errors with stack traces and
// collecting several errors into one.
package errors

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
	"github.com/hashicorp/go-multierror"
)

// Errorf creates a new error and wraps it in an Error type that contains the stack trace.
func Errorf(message string, args ...interface{}) error {
	err := fmt.Errorf(message, args...)
	return goerrors.Wrap(err, 1)
}

// WithStackTrace wraps the given error in an Error type that contains the stack trace. If the given error already has a
// stack trace, it is used directly. If the given error is nil, return nil.
func WithStackTrace(err error) error {
	if err == nil {
		return nil
	}

	return goerrors.Wrap(err, 1)
}

// WithStackTraceAndPrefix wraps the given error with a stack trace and prepends message to it.
func WithStackTraceAndPrefix(err error, message string, args ...interface{}) error {
	if err == nil {
		return nil
	}

	return goerrors.WrapPrefix(err, fmt.Sprintf(message, args...), 1)
}

// ErrorStack returns the error message followed by the stack trace, if one was recorded.
func ErrorStack(err error) string {
	var goerr *goerrors.Error
	if errors.As(err, &goerr) {
		return goerr.ErrorStack()
	}
	return err.Error()
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Append adds errs to err, flattening nested multi-errors. A nil result means
// nothing was appended.
func Append(err error, errs ...error) error {
	var merr *multierror.Error
	for _, e := range errs {
		if e != nil {
			merr = multierror.Append(merr, e)
		}
	}
	if merr == nil {
		return err
	}
	return multierror.Append(err, merr.Errors...).ErrorOrNil()
}

// Unwrap returns the individual errors held by a multi-error, or err itself.
func Unwrap(err error) []error {
	if err == nil {
		return nil
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		return merr.Errors
	}
	return []error{err}
}
