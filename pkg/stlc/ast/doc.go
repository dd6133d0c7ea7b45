// Package ast provides the Abstract Syntax Tree for the simply-typed lambda
// calculus with booleans and natural numbers.
//
// # Core Types
//
// Node: closed interface implemented by the seven variants below
//
// Abstraction: λx:T. body, with a declared parameter Type (Bool or Nat)
//
// Application: function applied to one argument
//
// Identifier: variable name, verbatim from source
//
// Condition: if clause then t else e
//
// Arithmetic: succ or pred of an operand
//
// IsZero: zero test of an operand
//
// Literal: true, false or 0
//
// # Basic Usage
//
// Build a tree with the parser and dump it:
//
//	node, err := parser.NewParser().ParseBytes([]byte(`\x:Nat. succ x`), "memory://example")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ast.Print(node)
//
// Output:
//
//	Abstraction with type Nat
//		Identifier with name x
//		Arithmetic with operator Succ
//			Identifier with name x
//
// Traverse with Walk:
//
//	ast.Walk(node, func(n ast.Node, depth int) error {
//	    fmt.Println(depth, n.Kind())
//	    return nil
//	})
//
// # Immutability
//
// Nodes are built once by the parser and only read afterwards. Type checking
// and evaluation live outside this repository and treat the tree as read-only.
// Each node owns its children; no subtree is shared.
package ast
