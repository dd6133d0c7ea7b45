package ast

// NodeKind names the variant of a Node.
type NodeKind string

const (
	KindAbstraction NodeKind = "Abstraction"
	KindApplication NodeKind = "Application"
	KindIdentifier  NodeKind = "Identifier"
	KindCondition   NodeKind = "Condition"
	KindArithmetic  NodeKind = "Arithmetic"
	KindIsZero      NodeKind = "IsZero"
	KindLiteral     NodeKind = "Value"
)

// Node is an AST node. The set of implementations is closed to this package.
// Nodes own their children exclusively and are never mutated after the
// builder returns them.
type Node interface {
	Kind() NodeKind
	node()
}

// Abstraction is a lambda with a typed parameter: λident:Type. body
type Abstraction struct {
	Ident Node // Parameter; an *Identifier for any tree the grammar produces
	Type  Type // Declared parameter type
	Body  Node
}

// Application applies Left to Right.
type Application struct {
	Left  Node // Function
	Right Node // Argument
}

// Identifier is a variable reference or parameter name.
type Identifier struct {
	Name string // Raw source text
}

// Condition is if-then-else.
type Condition struct {
	Clause Node
	Then   Node
	Else   Node
}

// Arithmetic applies succ or pred to its operand.
type Arithmetic struct {
	Op      Operator
	Operand Node
}

// IsZero tests its operand against zero.
type IsZero struct {
	Operand Node
}

// Literal is one of true, false or 0.
type Literal struct {
	Value Value
}

func (*Abstraction) Kind() NodeKind { return KindAbstraction }
func (*Application) Kind() NodeKind { return KindApplication }
func (*Identifier) Kind() NodeKind  { return KindIdentifier }
func (*Condition) Kind() NodeKind   { return KindCondition }
func (*Arithmetic) Kind() NodeKind  { return KindArithmetic }
func (*IsZero) Kind() NodeKind      { return KindIsZero }
func (*Literal) Kind() NodeKind     { return KindLiteral }

func (*Abstraction) node() {}
func (*Application) node() {}
func (*Identifier) node()  {}
func (*Condition) node()   {}
func (*Arithmetic) node()  {}
func (*IsZero) node()      {}
func (*Literal) node()     {}

// IsLeaf returns true for nodes without children.
func IsLeaf(n Node) bool {
	switch n.(type) {
	case *Identifier, *Literal:
		return true
	default:
		return false
	}
}
