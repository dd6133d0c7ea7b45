package ast

// Value is the payload of a Literal node.
type Value string

const (
	ValueTrue  Value = "True"
	ValueFalse Value = "False"
	ValueZero  Value = "Zero"
)

// Operator is the payload of an Arithmetic node.
type Operator string

const (
	OperatorSucc Operator = "Succ"
	OperatorPred Operator = "Pred"
)

// Type is the declared type of an abstraction parameter.
type Type string

const (
	TypeBool Type = "Bool"
	TypeNat  Type = "Nat"
)
