// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

package schematree

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrReadSchemaFile is returned when schema file loading fails.
	ErrReadSchemaFile = errors.New("read schema file")
	// ErrFetchSchema is returned when schema download fails.
	ErrFetchSchema = errors.New("fetch schema")
	// ErrDecodeSchema is returned when schema YAML/JSON decoding fails.
	ErrDecodeSchema = errors.New("decode schema")
	// ErrUnknownEncoding is returned when source encoding name is not recognized.
	ErrUnknownEncoding = errors.New("unknown source encoding")
	// ErrLoadConfig is returned when option file loading fails.
	ErrLoadConfig = errors.New("load config")
	// ErrInvalidFlag is returned when boolean option text is not recognized.
	ErrInvalidFlag = errors.New("invalid flag value")
	// ErrUnsupportedGoValue is returned when in-memory value cannot be converted to schema value.
	ErrUnsupportedGoValue = errors.New("unsupported go value")

	// ErrPointer indicates a malformed or unresolvable JSON pointer.
	ErrPointer = errors.New("pointer error")
	// ErrReference indicates an unresolvable $ref.
	ErrReference = errors.New("reference error")
	// ErrDepthExceeded indicates runaway recursion not broken by reference tracking.
	ErrDepthExceeded = errors.New("depth exceeded")
	// ErrUnsupportedValue indicates a keyword value with unexpected shape.
	ErrUnsupportedValue = errors.New("unsupported value")
)

// PointerError reports a malformed pointer or a pointer with no matching location.
type PointerError struct {
	// Pointer is the pointer text as given by the caller.
	Pointer string
	// Segment is the zero-based failing segment index, -1 for syntax errors.
	Segment int
	// Message describes the failure.
	Message string
}

// Error returns a human-readable error message.
func (e *PointerError) Error() string {
	msg := "pointer " + strconv.Quote(e.Pointer)
	if e.Segment >= 0 {
		msg += " segment " + strconv.Itoa(e.Segment)
	}

	return msg + ": " + e.Message
}

// Is reports whether target matches this error type.
func (e *PointerError) Is(target error) bool {
	return target == ErrPointer
}

// ReferenceError reports a $ref that could not be resolved.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve.
	Ref string
	// External is true when ref points outside the current document.
	External bool
	// Cause is the underlying error, if any.
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	kind := "local"
	if e.External {
		kind = "external"
	}

	msg := fmt.Sprintf("unresolvable %s reference %q", kind, e.Ref)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}

	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrReference
}

// DepthExceededError aborts a render call whose recursion went past the configured limit.
type DepthExceededError struct {
	// Path is the schema location where the limit was hit.
	Path string
	// Limit is the configured maximum depth.
	Limit int
}

// Error returns a human-readable error message.
func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("schema nesting exceeds depth limit %d at %q", e.Limit, e.Path)
}

// Is reports whether target matches this error type.
func (e *DepthExceededError) Is(target error) bool {
	return target == ErrDepthExceeded
}

// UnsupportedValueError reports a keyword value with an unexpected shape.
type UnsupportedValueError struct {
	// Keyword is the schema keyword name.
	Keyword string
	// Path is the keyword location.
	Path string
	// Got is the kind found in the document.
	Got Kind
	// Want describes accepted shapes.
	Want string
}

// Error returns a human-readable error message.
func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("keyword %q at %q must be %s, got %s", e.Keyword, e.Path, e.Want, e.Got)
}

// Is reports whether target matches this error type.
func (e *UnsupportedValueError) Is(target error) bool {
	return target == ErrUnsupportedValue
}
