package grammar

import "fmt"

// Span is the byte range [Start, End) of a parse node in its source, with the
// 1-based line and column of Start.
type Span struct {
	Start  int
	End    int
	Line   int
	Column int
}

// String returns "line:column".
func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// Pair is one node of the concrete parse tree: a tag, its ordered children,
// and the exact source text it covers.
type Pair struct {
	Rule     Rule
	Children []*Pair
	Text     string
	Span     Span
}

// NewPair creates a parse node without position information. It is used for
// parse trees decoded from documents and in tests.
func NewPair(rule Rule, text string, children ...*Pair) *Pair {
	return &Pair{
		Rule:     rule,
		Children: children,
		Text:     text,
	}
}

// Inner returns the ordered children of p.
func (p *Pair) Inner() []*Pair {
	return p.Children
}

// IsLeaf returns true if p has no children.
func (p *Pair) IsLeaf() bool {
	return len(p.Children) == 0
}
