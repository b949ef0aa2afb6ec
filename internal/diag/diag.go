package diag

import (
	"errors"
	"fmt"
)

// Code is a stable identifier for a recoverable analysis failure.
type Code string

const (
	// Operator, subscript or unary operation applied to an operand of the
	// wrong shape.
	CodeBadOperand Code = "OPERAND_TYPE_MISMATCH"

	// A special method exists but signalled that it does not apply to the
	// given operand.
	CodeNotImplemented Code = "OPERATOR_NOT_IMPLEMENTED"

	// The object model has no such capability for the receiver.
	CodeNotSupported Code = "OPERATION_NOT_SUPPORTED"

	// Sequence index outside the container bounds.
	CodeIndexOutOfRange Code = "INDEX_OUT_OF_RANGE"

	// No matching key in a mapping literal.
	CodeKeyNotFound Code = "KEY_NOT_FOUND"

	// An argument has no declared default value.
	CodeNoDefault Code = "NO_DEFAULT"

	// A slice bound could not be reduced to an integer or an absent bound.
	CodeInvalidSlice Code = "INVALID_SLICE"

	// A starred target's captured range cannot be sized.
	CodeAmbiguousUnpack Code = "AMBIGUOUS_UNPACK"

	// No binding construct produces a value for the requested target.
	CodeNoAssignment Code = "NO_ASSIGNMENT"
)

// Span locates a condition in source code.
type Span struct {
	Line   int
	Column int
}

// IsValid reports whether the span carries a real location.
func (s Span) IsValid() bool { return s.Line > 0 }

// String returns a human-readable representation of the span.
func (s Span) String() string { return fmt.Sprintf("%d:%d", s.Line, s.Column) }

// Error is a recoverable analysis failure with a stable code. Contract
// violations (a tree traversed before initialization, a node initialized
// twice) are not Errors; they panic.
type Error struct {
	Code    Code
	Message string
	Span    Span
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Span.IsValid() {
		return fmt.Sprintf("%s: %s [%s]", e.Span, e.Message, e.Code)
	}
	return fmt.Sprintf("%s [%s]", e.Message, e.Code)
}

// Errorf constructs an Error with a formatted message.
func Errorf(code Code, span Span, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
	}
}

// CodeOf extracts the failure code from err, or "" when err carries none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// IsNotFound reports whether err is one of the not-found conditions,
// as opposed to inference being undetermined.
func IsNotFound(err error) bool {
	switch CodeOf(err) {
	case CodeIndexOutOfRange, CodeKeyNotFound, CodeNoDefault, CodeNoAssignment:
		return true
	}
	return false
}

// IsNotImplemented reports whether err means an operator step legitimately
// failed to apply, letting the caller fall through to the next candidate.
func IsNotImplemented(err error) bool {
	switch CodeOf(err) {
	case CodeNotImplemented, CodeNotSupported:
		return true
	}
	return false
}
