package grammar

import (
	"fmt"

	"gopkg.in/yaml.v3"

	stlcErrors "lambda-hq/stlc/pkg/stlc/errors"
)

// yamlPair is the document form of a parse node:
//
//	rule: abstraction
//	children:
//	  - rule: ident
//	    text: x
//	  - rule: type_nat
//	  - rule: ident
//	    text: x
type yamlPair struct {
	Rule     string      `yaml:"rule"`
	Text     string      `yaml:"text,omitempty"`
	Children []*yamlPair `yaml:"children,omitempty"`

	// Internal tracking
	line int // Line of the mapping in the document
}

// UnmarshalYAML records the line of each node for error reporting.
func (yp *yamlPair) UnmarshalYAML(value *yaml.Node) error {
	type plain yamlPair
	var decoded plain
	if err := value.Decode(&decoded); err != nil {
		return err
	}
	*yp = yamlPair(decoded)
	yp.line = value.Line
	return nil
}

// EncodeYAML writes a parse tree as a YAML document. A single root is written
// as a mapping; longer sequences as a list.
func EncodeYAML(pairs []*Pair) ([]byte, error) {
	docs := make([]*yamlPair, 0, len(pairs))
	for _, p := range pairs {
		docs = append(docs, toYAML(p))
	}

	var out any = docs
	if len(docs) == 1 {
		out = docs[0]
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode parse tree: %w", err)
	}
	return data, nil
}

func toYAML(p *Pair) *yamlPair {
	yp := &yamlPair{Rule: string(p.Rule)}
	if p.IsLeaf() {
		yp.Text = p.Text
	}
	for _, child := range p.Children {
		yp.Children = append(yp.Children, toYAML(child))
	}
	return yp
}

// DecodeYAML reads a parse tree written by EncodeYAML or by hand. The document
// may be a single mapping or a list of mappings. Tags are not checked against
// KnownRules; that is the AST builder's job.
func DecodeYAML(data []byte) ([]*Pair, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, stlcErrors.Wrap(stlcErrors.KindSyntax, "invalid parse tree document", err)
	}

	// Empty document
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, nil
	}

	doc := root.Content[0]
	var docs []*yamlPair
	switch doc.Kind {
	case yaml.MappingNode:
		var single yamlPair
		if err := doc.Decode(&single); err != nil {
			return nil, stlcErrors.Wrap(stlcErrors.KindSyntax, "invalid parse tree document", err)
		}
		docs = []*yamlPair{&single}
	case yaml.SequenceNode:
		if err := doc.Decode(&docs); err != nil {
			return nil, stlcErrors.Wrap(stlcErrors.KindSyntax, "invalid parse tree document", err)
		}
	default:
		return nil, stlcErrors.Newf(stlcErrors.KindSyntax,
			"invalid parse tree document: line %d: expected a mapping or a list", doc.Line)
	}

	pairs := make([]*Pair, 0, len(docs))
	for _, yp := range docs {
		p, err := fromYAML(yp)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

func fromYAML(yp *yamlPair) (*Pair, error) {
	if yp == nil {
		return nil, stlcErrors.New(stlcErrors.KindSyntax, "invalid parse tree document: empty node")
	}
	if yp.Rule == "" {
		return nil, stlcErrors.Newf(stlcErrors.KindSyntax,
			"invalid parse tree document: line %d: node has no rule", yp.line)
	}

	p := &Pair{
		Rule: Rule(yp.Rule),
		Text: yp.Text,
		Span: Span{Line: yp.line, Column: 1},
	}
	for _, child := range yp.Children {
		c, err := fromYAML(child)
		if err != nil {
			return nil, err
		}
		p.Children = append(p.Children, c)
	}
	return p, nil
}
