// Copyright (C) 2026 The jton-lib Authors. All Rights Reserved.

// Package serial implements the wire codecs for jton document trees.
//
// Three formats are supported: [JSON] (the primary format, with comment
// and quoting extensions accepted on read), [XML] (a typed element format
// whose leaves carry a "type" attribute), and [CSV] (flat record lists).
//
// Malformed input and unserializable data are reported as [*Error].
// Failures of the underlying reader or writer are returned as the
// transport's own error, so callers can tell bad data from a broken
// stream.
package serial

import "fmt"

// An Error describes a failure to encode or decode a document.
type Error struct {
	Line    int    // 1-based input line, when known; 0 otherwise
	Message string

	err error
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Unwrap supports error wrapping.
func (e *Error) Unwrap() error { return e.err }

func errorf(line int, format string, args ...any) *Error {
	return &Error{Line: line, Message: fmt.Sprintf(format, args...)}
}

// wrapError adapts err into an *Error carrying the given line, keeping
// the original error reachable through Unwrap. An err that is already an
// *Error is returned unchanged.
func wrapError(line int, err error) *Error {
	if serr, ok := err.(*Error); ok {
		return serr
	}
	return &Error{Line: line, Message: err.Error(), err: err}
}
