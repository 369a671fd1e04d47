package errs

import (
	"errors"
)

// Code is a page-object error code.
type Code string

const (
	// NavigationTimeout means a location condition did not hold within its bound.
	NavigationTimeout Code = "navigation_timeout"
	// AssertionFailure means a one-shot location check did not match.
	AssertionFailure Code = "assertion_failure"
	InvalidArgument  Code = "invalid_argument"
	AlreadyExists    Code = "already_exists"
	NotFound         Code = "not_found"
	Unavailable      Code = "unavailable"
	Internal         Code = "internal"
)

// Error is a coded error.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a coded error with message.
func New(code Code, message string) error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a coded error with message and cause.
func Wrap(code Code, message string, cause error) error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     cause,
	}
}

// CodeOf returns the error code, defaulting to internal.
func CodeOf(err error) Code {
	if err == nil {
		return Internal
	}
	var coded *Error
	if errors.As(err, &coded) {
		if coded.Code == "" {
			return Internal
		}
		return coded.Code
	}
	return Internal
}

// MessageOf returns the coded message, or "internal error" for untyped errors.
func MessageOf(err error) string {
	if err == nil {
		return string(Internal)
	}
	var coded *Error
	if errors.As(err, &coded) && coded.Message != "" {
		return coded.Message
	}
	return "internal error"
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	if err == nil {
		return false
	}
	var coded *Error
	return errors.As(err, &coded) && coded.Code == code
}

// IsNavigationTimeout reports whether err is a navigation timeout.
func IsNavigationTimeout(err error) bool {
	return Is(err, NavigationTimeout)
}

// IsAssertionFailure reports whether err is a failed location assertion.
func IsAssertionFailure(err error) bool {
	return Is(err, AssertionFailure)
}
