package errs

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	ECONFLICT        = "conflict"
	EFORBIDDEN       = "forbidden"
	EINTERNAL        = "internal"
	EINVALID         = "invalid"
	ENOTFOUND        = "not_found"
	ENOTIMPLEMENTED  = "not_implemented"
	ETOOMANYREQUESTS = "too_many_requests"
	EUNAUTHORIZED    = "unauthorized"
)

// Error represents an application-specific error. Message is safe to show to
// the caller; Details carries itemized field errors for EINVALID.
type Error struct {
	Code    string
	Message string
	Details []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("application error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// ErrorDetails returns the itemized details of an application error, if any.
func ErrorDetails(err error) []string {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return nil
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Invalid returns an EINVALID error carrying itemized details.
func Invalid(message string, details ...string) *Error {
	return &Error{
		Code:    EINVALID,
		Message: message,
		Details: details,
	}
}
