package ast

import "encoding/json"

// jsonNode is the serialized shape of a node. Only the fields that belong to
// the node's variant are set.
type jsonNode struct {
	Kind     NodeKind  `json:"kind"`
	Name     string    `json:"name,omitempty"`
	Type     Type      `json:"type,omitempty"`
	Operator Operator  `json:"operator,omitempty"`
	Value    Value     `json:"value,omitempty"`
	Ident    *jsonNode `json:"ident,omitempty"`
	Body     *jsonNode `json:"body,omitempty"`
	Left     *jsonNode `json:"left,omitempty"`
	Right    *jsonNode `json:"right,omitempty"`
	Clause   *jsonNode `json:"clause,omitempty"`
	Then     *jsonNode `json:"then,omitempty"`
	Else     *jsonNode `json:"else,omitempty"`
	Operand  *jsonNode `json:"operand,omitempty"`
}

// MarshalJSON encodes the tree rooted at n as JSON.
func MarshalJSON(n Node) ([]byte, error) {
	return json.Marshal(toJSON(n))
}

// MarshalIndentJSON encodes the tree rooted at n as indented JSON.
func MarshalIndentJSON(n Node) ([]byte, error) {
	return json.MarshalIndent(toJSON(n), "", "  ")
}

func toJSON(n Node) *jsonNode {
	if n == nil {
		return nil
	}

	out := &jsonNode{Kind: n.Kind()}
	switch v := n.(type) {
	case *Abstraction:
		out.Ident = toJSON(v.Ident)
		out.Type = v.Type
		out.Body = toJSON(v.Body)
	case *Application:
		out.Left = toJSON(v.Left)
		out.Right = toJSON(v.Right)
	case *Identifier:
		out.Name = v.Name
	case *Condition:
		out.Clause = toJSON(v.Clause)
		out.Then = toJSON(v.Then)
		out.Else = toJSON(v.Else)
	case *Arithmetic:
		out.Operator = v.Op
		out.Operand = toJSON(v.Operand)
	case *IsZero:
		out.Operand = toJSON(v.Operand)
	case *Literal:
		out.Value = v.Value
	}
	return out
}
