package krpcgen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/pkg/errors"
)

// ErrorCode classifies why a generation run failed.
type ErrorCode string

const (
	CodeConfig   ErrorCode = "config"   // invalid configuration
	CodeIO       ErrorCode = "io"       // schema directory or file unreadable
	CodeSchema   ErrorCode = "schema"   // malformed schema document
	CodeSink     ErrorCode = "sink"     // output could not be written
	CodeCanceled ErrorCode = "canceled" // context canceled or deadline exceeded
)

// Error is returned by every failed run. All errors are fatal: a run that
// returns an Error has written nothing.
type Error struct {
	Code ErrorCode

	// Path is the file or directory involved, if any.
	Path string

	Err error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapError wraps err with a message and classifies it under code.
// Context errors are always classified as CodeCanceled.
func wrapError(code ErrorCode, path string, err error, format string, args ...any) *Error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		code = CodeCanceled
	}
	if format != "" {
		err = pkgerrors.Wrapf(err, format, args...)
	}
	return &Error{Code: code, Path: path, Err: err}
}

// CodeOf returns the code of the first *Error in err's chain.
// It returns "" for nil and for errors that did not come from a run.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// configError converts validation failures into a single readable error.
func configError(err error) *Error {
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return &Error{Code: CodeConfig, Err: err}
	}
	messages := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		messages = append(messages, ve.Field()+": "+formatValidationError(ve))
	}
	return &Error{Code: CodeConfig, Err: errors.New(strings.Join(messages, "; "))}
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "rustpath":
		return fmt.Sprintf("%q is not a Rust path", ve.Value())
	case "glob":
		return fmt.Sprintf("%q is not a valid glob pattern", ve.Value())
	case "relpath":
		return fmt.Sprintf("%q must be a clean relative path", ve.Value())
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
