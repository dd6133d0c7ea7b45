package errors

import (
	"fmt"
	"strings"
)

// ErrorKind categorizes the failure raised while reading, parsing or building a program.
type ErrorKind string

const (
	KindEmptyProgram     ErrorKind = "empty_program"     // Program has no expression
	KindStructuralArity  ErrorKind = "structural_arity"  // Construct has the wrong number of children
	KindUnknownType      ErrorKind = "unknown_type"      // Abstraction type tag is not Nat or Bool
	KindUnknownOperator  ErrorKind = "unknown_operator"  // Arithmetic operator tag is not succ or pred
	KindUnrecognizedRule ErrorKind = "unrecognized_rule" // Grammar tag the builder does not handle
	KindSyntax           ErrorKind = "syntax"            // Surface syntax or parse-tree document error
	KindIO               ErrorKind = "io"                // File I/O error
	KindLimit            ErrorKind = "limit"             // Size or nesting limit exceeded
)

// Sentinel errors for use with errors.Is. Matching is by kind only.
var (
	ErrEmptyProgram     = &Error{Kind: KindEmptyProgram}
	ErrStructuralArity  = &Error{Kind: KindStructuralArity}
	ErrUnknownType      = &Error{Kind: KindUnknownType}
	ErrUnknownOperator  = &Error{Kind: KindUnknownOperator}
	ErrUnrecognizedRule = &Error{Kind: KindUnrecognizedRule}
	ErrSyntax           = &Error{Kind: KindSyntax}
	ErrIO               = &Error{Kind: KindIO}
	ErrLimit            = &Error{Kind: KindLimit}
)

// Error is the single error type surfaced by the stlc packages.
// The message is what callers print; the kind is what callers branch on.
type Error struct {
	Kind       ErrorKind // Category of error
	Message    string    // Human-readable message
	Rule       string    // Offending grammar tag, if any
	Suggestion string    // Suggested fix (optional)
	Err        error     // Underlying cause (I/O, YAML)
}

// Error implements the error interface and returns the bare message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Detail returns the multi-line rendering used by the command line:
//
//	[structural_arity] Found ifthenelse with incorrect number of arguments
//	  --> rule: if_then
//	  = suggestion: ...
func (e *Error) Detail() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s\n", e.Kind, e.Message))

	if e.Rule != "" {
		sb.WriteString(fmt.Sprintf("  --> rule: %s\n", e.Rule))
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  = suggestion: %s\n", e.Suggestion))
	}

	return sb.String()
}

// New creates an error of the given kind.
func New(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error of the given kind that carries cause.
// The cause's text is appended to the message.
func Wrap(kind ErrorKind, message string, cause error) *Error {
	msg := message
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", message, cause)
	}
	return &Error{Kind: kind, Message: msg, Err: cause}
}

// KindOf returns the kind of err if it is (or wraps) an *Error,
// and the empty kind otherwise.
func KindOf(err error) ErrorKind {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}
