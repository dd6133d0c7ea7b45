// Package grammar recognizes the surface syntax of the typed lambda calculus
// and produces a concrete parse tree of tagged pairs.
//
// The parse tree is what the AST builder in package parser consumes. Each
// Pair carries a Rule tag, its ordered children, and the exact source text it
// spans. Only surface syntax is checked here; arity, type tags and operator
// tags are enforced by the builder.
//
// # Basic Usage
//
//	pairs, err := grammar.Parse(`\x:Nat. succ x`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// produces:
//
//	program
//	└── abstraction
//	    ├── ident "x"
//	    ├── type_nat
//	    └── application
//	        └── arithmetic
//	            ├── op_succ
//	            └── ident "x"
//
// # Parse Tree Documents
//
// Parse trees can be written to and read from YAML so that a tree can be
// inspected, edited, or produced by another grammar:
//
//	data, _ := grammar.EncodeYAML(pairs)
//	pairs, err := grammar.DecodeYAML(data)
package grammar
