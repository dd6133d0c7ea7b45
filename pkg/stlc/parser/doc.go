// Package parser converts grammar parse trees into lambda calculus ASTs.
//
// The builder is a tag dispatcher over parse pairs with one builder per
// language construct. Each construct checks its child count first, then any
// type or operator tag, then builds its children left to right. The first
// error aborts the build; no partial tree is ever returned.
//
// Build is the pure entry point:
//
//	pairs, err := grammar.Parse(`\x:Nat. succ x`)
//	if err != nil {
//	    return err
//	}
//	root, err := parser.Build(pairs)
//
// Parser wraps the grammar and the builder with size and depth limits,
// logging, tracing and metrics:
//
//	p := parser.NewParser().WithMaxDepth(256)
//	root, err := p.Parse(ctx, "examples/id.lam")
//
// Errors are *errors.Error values from pkg/stlc/errors; match them with
// errors.Is against the sentinel of the expected kind.
package parser
