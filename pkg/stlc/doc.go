// Package stlc is the entry point for building simply typed lambda calculus
// programs into ASTs.
//
// The language has booleans, the natural number literal 0 with succ and
// pred, iszero and if-then-else, and single-parameter abstractions annotated
// with Nat or Bool:
//
//	(\n:Nat. if iszero n then true else false) (succ 0)
//
// Subpackages:
//
//   - grammar: tokenizes and recognizes source into parse pairs
//   - parser: converts parse pairs into an AST
//   - ast: the AST node types, the diagnostic printer and renderers
//   - errors: the error type shared by every failure path
//
// Quick use:
//
//	root, err := stlc.Parse("examples/zero_test.lam")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ast.Print(root)
package stlc
