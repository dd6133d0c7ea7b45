package stlc

import (
	"context"
	"os"

	"lambda-hq/stlc/pkg/stlc/ast"
	stlcErrors "lambda-hq/stlc/pkg/stlc/errors"
	"lambda-hq/stlc/pkg/stlc/parser"
)

// ReadFile loads a source file. Any failure is returned as an error of kind
// io wrapping the underlying cause.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", stlcErrors.Wrap(stlcErrors.KindIO, "Failed to read file", err)
	}
	return string(data), nil
}

// Parse is a convenience function that reads and builds a source file with
// the default parser.
func Parse(path string) (ast.Node, error) {
	return parser.NewParser().Parse(context.Background(), path)
}

// ParseSource builds source text held in memory.
func ParseSource(source string) (ast.Node, error) {
	return parser.NewParser().ParseBytes(context.Background(), []byte(source), "")
}

// ParseAndPrint builds a source file and prints its tree to stdout.
func ParseAndPrint(path string) error {
	root, err := Parse(path)
	if err != nil {
		return err
	}
	return ast.Print(root)
}
