// Stlc builds programs of a simply-typed lambda calculus with booleans and
// natural numbers into abstract syntax trees.
//
// Usage:
//
//	# Build a program and print its tree
//	stlc build examples/identity.lam
//
//	# Build an inline expression and print it as JSON
//	stlc build --expr '\x:Nat. succ x' --format json
//
//	# Build a hand-written parse tree
//	stlc build --parse-tree tree.yaml
//
//	# Show the grammar's parse tree as YAML
//	stlc tree examples/identity.lam
//
//	# Rebuild every program in a directory when it changes
//	stlc watch examples/
//
//	# Interactive session
//	stlc repl
//
//	# Inspect and prune the build history
//	stlc history list --outcome failure
//	stlc history prune
package main

func main() {
	Execute()
}
