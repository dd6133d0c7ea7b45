package ast

import "strings"

// Format renders n back to surface syntax. Parsing the result yields a tree
// equal to n. Operands that are not atoms are parenthesized.
func Format(n Node) string {
	var sb strings.Builder
	format(&sb, n)
	return sb.String()
}

func format(sb *strings.Builder, n Node) {
	switch v := n.(type) {
	case *Abstraction:
		sb.WriteString("λ")
		format(sb, v.Ident)
		sb.WriteString(":")
		sb.WriteString(string(v.Type))
		sb.WriteString(". ")
		format(sb, v.Body)
	case *Application:
		// Application is left-associative, so a nested application on the
		// left needs no parentheses.
		if _, ok := v.Left.(*Application); ok {
			format(sb, v.Left)
		} else {
			formatOperand(sb, v.Left)
		}
		sb.WriteString(" ")
		formatOperand(sb, v.Right)
	case *Identifier:
		sb.WriteString(v.Name)
	case *Condition:
		sb.WriteString("if ")
		format(sb, v.Clause)
		sb.WriteString(" then ")
		format(sb, v.Then)
		sb.WriteString(" else ")
		format(sb, v.Else)
	case *Arithmetic:
		if v.Op == OperatorPred {
			sb.WriteString("pred ")
		} else {
			sb.WriteString("succ ")
		}
		formatOperand(sb, v.Operand)
	case *IsZero:
		sb.WriteString("iszero ")
		formatOperand(sb, v.Operand)
	case *Literal:
		switch v.Value {
		case ValueTrue:
			sb.WriteString("true")
		case ValueFalse:
			sb.WriteString("false")
		default:
			sb.WriteString("0")
		}
	}
}

func formatOperand(sb *strings.Builder, n Node) {
	if IsLeaf(n) {
		format(sb, n)
		return
	}
	sb.WriteString("(")
	format(sb, n)
	sb.WriteString(")")
}
