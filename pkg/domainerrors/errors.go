// Package domainerrors defines coded errors for business-rule failures.
//
// Services return these so transport layers can map outcomes to HTTP status
// codes without string matching. Stores do not use this package; they return
// pkg/sentinel errors that services translate here.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error for transport mapping.
type Code string

const (
	// CodeValidation marks malformed input on an individual field.
	CodeValidation Code = "validation"
	// CodeInvalidCPF marks a CPF that fails the checksum algorithm.
	CodeInvalidCPF Code = "invalid_cpf"
	// CodeConflict marks a uniqueness violation (CPF or email already taken).
	CodeConflict Code = "conflict"
	// CodeImmutable marks an attempt to change a field fixed at creation.
	CodeImmutable Code = "immutable"
	// CodeNotFound marks a lookup for a record that does not exist.
	CodeNotFound Code = "not_found"
	// CodeInternal marks unexpected failures; the message is never sent to clients.
	CodeInternal Code = "internal"
)

// Error carries a code plus a human-readable message.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New builds a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error, preserving the
// cause for errors.Is/As chains.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) is a domain error with
// the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// MessageOf returns the message of a domain error, or a zero string when err
// is not one.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}
