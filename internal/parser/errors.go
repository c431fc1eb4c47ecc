package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ParseError is a definition document that could not be read or decoded.
// It prints like a compiler diagnostic: "watch.yaml:3:7: message".
type ParseError struct {
	File    string // set by ParseFile
	Line    int    // 1-based, 0 when unknown
	Column  int    // 1-based, 0 when unknown
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var loc []string
	if e.File != "" {
		loc = append(loc, e.File)
	}
	if e.Line > 0 {
		loc = append(loc, strconv.Itoa(e.Line))
		if e.Column > 0 {
			loc = append(loc, strconv.Itoa(e.Column))
		}
	}
	prefix := "definition"
	if len(loc) > 0 {
		prefix = strings.Join(loc, ":")
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new ParseError.
func NewParseError(line, column int, message string, cause error) *ParseError {
	return &ParseError{Line: line, Column: column, Message: message, Cause: cause}
}

// inFile records the source file on a ParseError that does not name one yet.
func inFile(err error, path string) error {
	var pe *ParseError
	if errors.As(err, &pe) && pe.File == "" {
		pe.File = path
	}
	return err
}

// ValidationError is a definition that decoded but cannot be sent. Path
// locates the offending part of the watch, e.g. ["actions", "notify.v2"].
type ValidationError struct {
	Path    []string
	Message string
}

// Field renders Path with dots. Segments that contain a dot, such as
// action names, are bracketed so the path stays unambiguous.
func (e *ValidationError) Field() string {
	var b strings.Builder
	for i, seg := range e.Path {
		if seg == "" || strings.ContainsAny(seg, ".[]") {
			b.WriteString("[" + strconv.Quote(seg) + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Path) == 0 {
		return "invalid watch: " + e.Message
	}
	return fmt.Sprintf("invalid watch at %s: %s", e.Field(), e.Message)
}

// NewValidationError creates a ValidationError for the given path segments.
func NewValidationError(message string, path ...string) *ValidationError {
	return &ValidationError{Path: path, Message: message}
}
