package larder

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL    = "internal"
	EINVALID     = "invalid"
	ENOTFOUND    = "not_found"
	ENETWORK     = "network"
	EPARSE       = "parse"
	EUNSUPPORTED = "unsupported"
)

// Error represents an application-specific error.
// URL and Err are optional; Err is the underlying cause when one exists.
type Error struct {
	Code    string
	Message string
	URL     string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.URL != "" {
		msg = fmt.Sprintf("%s: %s", e.URL, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Code, msg, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Code, msg)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// NetworkError reports a failed fetch of url caused by err.
func NetworkError(url string, err error) *Error {
	return &Error{
		Code:    ENETWORK,
		Message: "fetch failed",
		URL:     url,
		Err:     err,
	}
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
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error"
}
