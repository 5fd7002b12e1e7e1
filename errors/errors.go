// Package errors defines the closed error vocabulary used throughout coro.
//
// Every fallible operation in the engine, the byte-stack data channel, and
// the handles built on top of them returns either a nil error or an *Error
// carrying one of the Code values below. The engine never logs or prints;
// it only ever returns or propagates one of these.
package errors

import (
	"errors"
	"fmt"
)

// Code categorizes the error. The set is closed: callers that want to
// branch on failure kind should use errors.Is with the Err* sentinels
// below (or CodeOf), not compare Code values with ==, since the Cause
// chain may wrap an Error from a lower layer.
type Code int

const (
	CodeGeneric          Code = iota // generic error
	CodeInvalidPointer               // invalid pointer
	CodeInvalidCoroutine             // invalid coroutine
	CodeNotSuspended                 // coroutine not suspended
	CodeNotRunning                   // coroutine not running
	CodeMakeContext                  // make context error
	CodeSwitchContext                // switch context error
	CodeNotEnoughSpace               // not enough space
	CodeOutOfMemory                  // out of memory
	CodeInvalidArguments             // invalid arguments
	CodeInvalidOperation             // invalid operation
	CodeStackOverflow                // stack overflow
)

var codeNames = map[Code]string{
	CodeGeneric:          "generic_error",
	CodeInvalidPointer:   "invalid_pointer",
	CodeInvalidCoroutine: "invalid_coroutine",
	CodeNotSuspended:     "not_suspended",
	CodeNotRunning:       "not_running",
	CodeMakeContext:      "make_context_error",
	CodeSwitchContext:    "switch_context_error",
	CodeNotEnoughSpace:   "not_enough_space",
	CodeOutOfMemory:      "out_of_memory",
	CodeInvalidArguments: "invalid_arguments",
	CodeInvalidOperation: "invalid_operation",
	CodeStackOverflow:    "stack_overflow",
}

// String returns the stable textual form of the code, e.g. "not_suspended".
func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// Error is the structured error type used throughout coro.
type Error struct {
	// Cause is the underlying error, if any (e.g. a panic recovered from
	// inside a coroutine body).
	Cause error
	// Op names the operation that failed, e.g. "resume", "push", "yield".
	Op string
	// Detail is a short human-readable elaboration. May be empty.
	Detail string
	Code   Code
}

// Error implements the error interface, e.g. "resume: not_suspended: coroutine already running".
func (e *Error) Error() string {
	s := e.Op + ": " + e.Code.String()
	if e.Detail != "" {
		s += ": " + e.Detail
	}
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

// Unwrap exposes Cause to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same Code, so
// errors.Is(err, errors.ErrStackOverflow) works regardless of Op/Detail.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New constructs an *Error for op with the given code and detail.
func New(op string, code Code, detail string) *Error {
	return &Error{Op: op, Code: code, Detail: detail}
}

// Wrap constructs an *Error for op with the given code, detail, and cause.
func Wrap(op string, code Code, detail string, cause error) *Error {
	return &Error{Op: op, Code: code, Detail: detail, Cause: cause}
}

// Sentinels for errors.Is comparisons against a bare code, with no Op/Detail.
var (
	ErrGeneric          = &Error{Code: CodeGeneric}
	ErrInvalidPointer   = &Error{Code: CodeInvalidPointer}
	ErrInvalidCoroutine = &Error{Code: CodeInvalidCoroutine}
	ErrNotSuspended     = &Error{Code: CodeNotSuspended}
	ErrNotRunning       = &Error{Code: CodeNotRunning}
	ErrMakeContext      = &Error{Code: CodeMakeContext}
	ErrSwitchContext    = &Error{Code: CodeSwitchContext}
	ErrNotEnoughSpace   = &Error{Code: CodeNotEnoughSpace}
	ErrOutOfMemory      = &Error{Code: CodeOutOfMemory}
	ErrInvalidArguments = &Error{Code: CodeInvalidArguments}
	ErrInvalidOperation = &Error{Code: CodeInvalidOperation}
	ErrStackOverflow    = &Error{Code: CodeStackOverflow}
)

// CodeOf extracts the Code from err if it is (or wraps) an *Error, along
// with ok=true. Returns CodeGeneric, false otherwise.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return CodeGeneric, false
}
