// Package domainerrors provides coded errors shared by every service layer.
// Codes classify failures for transport mapping and tests; details carry
// structured context for logs without shaping the caller-facing message.
package domainerrors

import (
	"errors"
	"fmt"
)

type Code string

const (
	// CodeValidation marks a malformed or ambiguous request shape.
	CodeValidation Code = "validation"
	// CodeInvalidCredentials marks a failed credential, token, or OTP check.
	// The message stays generic; mismatch context belongs in the details.
	CodeInvalidCredentials Code = "invalid_credentials"
	// CodeMissingConfiguration marks an account state that cannot satisfy its
	// own settings, e.g. MFA over a contact channel the user does not have.
	CodeMissingConfiguration Code = "missing_configuration"
	CodeNotFound             Code = "not_found"
	CodeUnauthorized         Code = "unauthorized"
	CodeForbidden            Code = "forbidden"
	CodeConflict             Code = "conflict"
	CodeInternal             Code = "internal"
)

// Error is the concrete error carried through service layers.
type Error struct {
	Code    Code
	Message string
	// Details holds alternating key/value pairs of diagnostic context,
	// e.g. "expected_user_id", id1, "actual_user_id", id2.
	Details []any

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// WithDetails appends diagnostic key/value pairs and returns the error.
func (e *Error) WithDetails(kv ...any) *Error {
	e.Details = append(e.Details, kv...)
	return e
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether any error in the chain carries the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	for errors.As(err, &e) {
		if e.Code == code {
			return true
		}
		err = e.cause
		if err == nil {
			break
		}
	}
	return false
}

// CodeOf returns the outermost code in the chain, or CodeInternal when the
// error carries none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// Detail returns the value recorded for a details key, or nil.
func Detail(err error, key string) any {
	var e *Error
	for errors.As(err, &e) {
		for i := 0; i+1 < len(e.Details); i += 2 {
			if k, ok := e.Details[i].(string); ok && k == key {
				return e.Details[i+1]
			}
		}
		err = e.cause
		if err == nil {
			break
		}
	}
	return nil
}
