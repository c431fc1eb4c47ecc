package watcher

import (
	"errors"
	"fmt"
	"strings"
)

// Error represents a local serialization or deserialization failure.
type Error struct {
	Code    ErrorCode
	Type    string // container or enum the error was raised for
	Message string
	Cause   error
}

// ErrorCode represents the type of binding error.
type ErrorCode string

const (
	// ErrCodeMalformedVariant indicates a container object with more than one known variant key.
	ErrCodeMalformedVariant ErrorCode = "MALFORMED_VARIANT"
	// ErrCodeUnknownEnum indicates a wire string that matches no enum symbol.
	ErrCodeUnknownEnum ErrorCode = "UNKNOWN_ENUM_VALUE"
	// ErrCodeUnsetEnum indicates an attempt to serialize an enum that was never assigned.
	ErrCodeUnsetEnum ErrorCode = "UNSET_ENUM_VALUE"
	// ErrCodeInvalidJSON indicates the payload is not the JSON shape the type expects.
	ErrCodeInvalidJSON ErrorCode = "INVALID_JSON"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s: %v", e.Code, e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Type, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewMalformedVariantError creates an error for a container carrying several variant keys.
func NewMalformedVariantError(typ string, keys []string) *Error {
	return &Error{
		Code:    ErrCodeMalformedVariant,
		Type:    typ,
		Message: fmt.Sprintf("expected at most one of the known keys, found %s", strings.Join(keys, ", ")),
	}
}

// NewUnknownEnumError creates an error for an unrecognized enum wire string.
func NewUnknownEnumError(typ, value string) *Error {
	return &Error{
		Code:    ErrCodeUnknownEnum,
		Type:    typ,
		Message: fmt.Sprintf("unknown value %q", value),
	}
}

// NewUnsetEnumError creates an error for serializing a zero enum.
func NewUnsetEnumError(typ string) *Error {
	return &Error{
		Code:    ErrCodeUnsetEnum,
		Type:    typ,
		Message: "value is not set",
	}
}

// NewInvalidJSONError creates an error for payloads of the wrong JSON shape.
func NewInvalidJSONError(typ, message string, cause error) *Error {
	return &Error{
		Code:    ErrCodeInvalidJSON,
		Type:    typ,
		Message: message,
		Cause:   cause,
	}
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsMalformedVariantError checks if the error is a malformed variant error.
func IsMalformedVariantError(err error) bool {
	return hasCode(err, ErrCodeMalformedVariant)
}

// IsUnknownEnumError checks if the error is an unknown enum value error.
func IsUnknownEnumError(err error) bool {
	return hasCode(err, ErrCodeUnknownEnum)
}

// IsInvalidJSONError checks if the error is an invalid JSON error.
func IsInvalidJSONError(err error) bool {
	return hasCode(err, ErrCodeInvalidJSON)
}
