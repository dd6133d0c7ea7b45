// Package errors provides the error type shared by the stlc packages.
//
// Every failure raised while reading a source file, parsing surface syntax or
// building an AST is an *Error. The message is meant for people; the kind is
// meant for code.
//
// # Error Kinds
//
// KindEmptyProgram: the program has no expression
//
// KindStructuralArity: a construct has the wrong number of children
//
// KindUnknownType: an abstraction's type tag is neither Nat nor Bool
//
// KindUnknownOperator: an arithmetic operator tag is neither succ nor pred
//
// KindUnrecognizedRule: the grammar produced a tag the builder does not handle
//
// KindSyntax, KindIO, KindLimit: failures of the surrounding collaborators
//
// # Basic Usage
//
// Branch on kind rather than message:
//
//	node, err := parser.Build(pairs)
//	if errors.Is(err, stlcErrors.ErrStructuralArity) {
//	    // ...
//	}
//
// Render the long form for a terminal:
//
//	var e *stlcErrors.Error
//	if errors.As(err, &e) {
//	    fmt.Fprint(os.Stderr, e.Detail())
//	}
package errors
