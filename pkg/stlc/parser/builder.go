package parser

import (
	"fmt"

	"lambda-hq/stlc/pkg/stlc/ast"
	stlcErrors "lambda-hq/stlc/pkg/stlc/errors"
	"lambda-hq/stlc/pkg/stlc/grammar"
)

// Messages of the builder errors. Callers print them verbatim.
const (
	msgInvalidProgram    = "Invalid program"
	msgEmptyProgram      = "No application body in program"
	msgApplicationArity  = "Found application with incorrect number of arguments"
	msgAbstractionArity  = "Found abstraction with incorrect number of arguments"
	msgArithmeticArity   = "Found arithmetic with incorrect number of arguments"
	msgZeroCheckArity    = "Found zero check with incorrect number of arguments"
	msgIfThenArity       = "Found ifthenelse with incorrect number of arguments"
	msgIncorrectType     = "Incorrect type"
	msgIncorrectOperator = "Incorrect operator"
)

// expressionRules are the tags the dispatcher routes; used for suggestions.
var expressionRules = []string{
	string(grammar.RuleProgram),
	string(grammar.RuleApplication),
	string(grammar.RuleAbstraction),
	string(grammar.RuleIdent),
	string(grammar.RuleArithmetic),
	string(grammar.RuleZeroCheck),
	string(grammar.RuleIfThen),
	string(grammar.RuleValZero),
	string(grammar.RuleValTrue),
	string(grammar.RuleValFalse),
}

// Build converts a parse-tree sequence into an AST. Only the first pair is
// consumed; the grammar yields a single program pair. The first error aborts
// the build and no partial tree is returned.
func Build(pairs []*grammar.Pair) (ast.Node, error) {
	return newBuilder(0).buildAST(pairs)
}

// BuildPair converts a single parse node into an AST.
func BuildPair(p *grammar.Pair) (ast.Node, error) {
	return newBuilder(0).build(p)
}

// builder constructs AST nodes from parse pairs. It holds no state other than
// the current recursion depth.
type builder struct {
	maxDepth int
	depth    int
}

// newBuilder creates a builder. A maxDepth of zero means unlimited.
func newBuilder(maxDepth int) *builder {
	return &builder{maxDepth: maxDepth}
}

func (b *builder) buildAST(pairs []*grammar.Pair) (ast.Node, error) {
	if len(pairs) == 0 {
		return nil, stlcErrors.New(stlcErrors.KindEmptyProgram, msgInvalidProgram)
	}
	return b.build(pairs[0])
}

// build is the tag dispatcher.
func (b *builder) build(p *grammar.Pair) (ast.Node, error) {
	if p == nil {
		return nil, unrecognizedRule("<nil>")
	}

	b.depth++
	defer func() { b.depth-- }()
	if b.maxDepth > 0 && b.depth > b.maxDepth {
		return nil, stlcErrors.Newf(stlcErrors.KindLimit, "Maximum nesting depth %d exceeded", b.maxDepth)
	}

	switch p.Rule {
	case grammar.RuleProgram:
		return b.buildProgram(p)
	case grammar.RuleApplication:
		return b.buildApplication(p)
	case grammar.RuleAbstraction:
		return b.buildAbstraction(p)
	case grammar.RuleIdent:
		return b.buildIdent(p)
	case grammar.RuleArithmetic:
		return b.buildArithmetic(p)
	case grammar.RuleZeroCheck:
		return b.buildZeroCheck(p)
	case grammar.RuleIfThen:
		return b.buildIfThen(p)
	case grammar.RuleValZero:
		return &ast.Literal{Value: ast.ValueZero}, nil
	case grammar.RuleValTrue:
		return &ast.Literal{Value: ast.ValueTrue}, nil
	case grammar.RuleValFalse:
		return &ast.Literal{Value: ast.ValueFalse}, nil
	default:
		// Grammar and builder disagree about the tag set.
		return nil, unrecognizedRule(string(p.Rule))
	}
}

// buildProgram returns the program's expression directly.
func (b *builder) buildProgram(p *grammar.Pair) (ast.Node, error) {
	inner := p.Inner()
	if len(inner) == 0 {
		return nil, arityError(grammar.RuleProgram, stlcErrors.KindEmptyProgram, msgEmptyProgram)
	}
	return b.build(inner[0])
}

// buildApplication passes a single operand through unwrapped; the grammar
// models application as a non-empty operand list.
func (b *builder) buildApplication(p *grammar.Pair) (ast.Node, error) {
	inner := p.Inner()

	switch len(inner) {
	case 1:
		return b.build(inner[0])
	case 2:
		left, err := b.build(inner[0])
		if err != nil {
			return nil, err
		}
		right, err := b.build(inner[1])
		if err != nil {
			return nil, err
		}
		return &ast.Application{Left: left, Right: right}, nil
	default:
		return nil, arityError(grammar.RuleApplication, stlcErrors.KindStructuralArity, msgApplicationArity)
	}
}

// buildAbstraction expects [ident, type tag, body]. The first child is not
// checked to be an identifier; the grammar guarantees it.
func (b *builder) buildAbstraction(p *grammar.Pair) (ast.Node, error) {
	inner := p.Inner()
	if len(inner) != 3 {
		return nil, arityError(grammar.RuleAbstraction, stlcErrors.KindStructuralArity, msgAbstractionArity)
	}

	dataType, err := declaredType(inner[1])
	if err != nil {
		return nil, err
	}

	ident, err := b.build(inner[0])
	if err != nil {
		return nil, err
	}
	body, err := b.build(inner[2])
	if err != nil {
		return nil, err
	}

	return &ast.Abstraction{Ident: ident, Type: dataType, Body: body}, nil
}

// buildIdent captures the node's source text verbatim.
func (b *builder) buildIdent(p *grammar.Pair) (ast.Node, error) {
	return &ast.Identifier{Name: p.Text}, nil
}

// buildArithmetic expects [operator tag, operand].
func (b *builder) buildArithmetic(p *grammar.Pair) (ast.Node, error) {
	inner := p.Inner()
	if len(inner) != 2 {
		return nil, arityError(grammar.RuleArithmetic, stlcErrors.KindStructuralArity, msgArithmeticArity)
	}

	op, err := operator(inner[0])
	if err != nil {
		return nil, err
	}

	operand, err := b.build(inner[1])
	if err != nil {
		return nil, err
	}

	return &ast.Arithmetic{Op: op, Operand: operand}, nil
}

func (b *builder) buildZeroCheck(p *grammar.Pair) (ast.Node, error) {
	inner := p.Inner()
	if len(inner) != 1 {
		return nil, arityError(grammar.RuleZeroCheck, stlcErrors.KindStructuralArity, msgZeroCheckArity)
	}

	operand, err := b.build(inner[0])
	if err != nil {
		return nil, err
	}

	return &ast.IsZero{Operand: operand}, nil
}

// buildIfThen expects [clause, then, else].
func (b *builder) buildIfThen(p *grammar.Pair) (ast.Node, error) {
	inner := p.Inner()
	if len(inner) != 3 {
		return nil, arityError(grammar.RuleIfThen, stlcErrors.KindStructuralArity, msgIfThenArity)
	}

	arms := make([]ast.Node, 0, 3)
	for _, child := range inner {
		arm, err := b.build(child)
		if err != nil {
			return nil, err
		}
		arms = append(arms, arm)
	}

	return &ast.Condition{Clause: arms[0], Then: arms[1], Else: arms[2]}, nil
}

// declaredType maps a type tag to the declared parameter type.
func declaredType(p *grammar.Pair) (ast.Type, error) {
	if p != nil {
		switch p.Rule {
		case grammar.RuleTypeNat:
			return ast.TypeNat, nil
		case grammar.RuleTypeBool:
			return ast.TypeBool, nil
		}
	}

	rule := ruleName(p)
	return "", &stlcErrors.Error{
		Kind:       stlcErrors.KindUnknownType,
		Message:    msgIncorrectType,
		Rule:       rule,
		Suggestion: stlcErrors.SuggestRule(rule, []string{string(grammar.RuleTypeNat), string(grammar.RuleTypeBool)}),
	}
}

// operator maps an operator tag to the arithmetic operator.
func operator(p *grammar.Pair) (ast.Operator, error) {
	if p != nil {
		switch p.Rule {
		case grammar.RuleOpSucc:
			return ast.OperatorSucc, nil
		case grammar.RuleOpPred:
			return ast.OperatorPred, nil
		}
	}

	rule := ruleName(p)
	return "", &stlcErrors.Error{
		Kind:       stlcErrors.KindUnknownOperator,
		Message:    msgIncorrectOperator,
		Rule:       rule,
		Suggestion: stlcErrors.SuggestRule(rule, []string{string(grammar.RuleOpSucc), string(grammar.RuleOpPred)}),
	}
}

func unrecognizedRule(rule string) error {
	return &stlcErrors.Error{
		Kind:       stlcErrors.KindUnrecognizedRule,
		Message:    fmt.Sprintf("Not implemented: %s", rule),
		Rule:       rule,
		Suggestion: stlcErrors.SuggestRule(rule, expressionRules),
	}
}

func arityError(rule grammar.Rule, kind stlcErrors.ErrorKind, message string) error {
	return &stlcErrors.Error{
		Kind:    kind,
		Message: message,
		Rule:    string(rule),
	}
}

func ruleName(p *grammar.Pair) string {
	if p == nil {
		return "<nil>"
	}
	return string(p.Rule)
}
