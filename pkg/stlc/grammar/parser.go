package grammar

import (
	stlcErrors "lambda-hq/stlc/pkg/stlc/errors"
)

// Option configures Parse.
type Option func(*grammarParser)

// WithMaxDepth limits the nesting depth of the produced parse tree.
// Zero means unlimited.
func WithMaxDepth(depth int) Option {
	return func(p *grammarParser) {
		p.maxDepth = depth
	}
}

// Parse recognizes source and returns its parse tree as a sequence of pairs.
// A well-formed program yields exactly one pair tagged program.
//
// Grammar:
//
//	program     = expr EOF
//	expr        = abstraction | if_then | application
//	abstraction = ("\" | "λ" | "lambda") ident ":" ("Nat" | "Bool") "." expr
//	if_then     = "if" expr "then" expr "else" expr
//	application = atom { atom }
//	atom        = ident | "true" | "false" | "0" | "(" expr ")"
//	            | ("succ" | "pred") atom | "iszero" atom
//
// Applications are emitted left-nested with at most two children per pair;
// a single atom is still wrapped in an application pair.
func Parse(source string, opts ...Option) ([]*Pair, error) {
	tokens, err := newLexer(source).tokenize()
	if err != nil {
		return nil, err
	}

	p := &grammarParser{src: source, tokens: tokens}
	for _, opt := range opts {
		opt(p)
	}

	program, err := p.parseProgram()
	if err != nil {
		return nil, err
	}
	return []*Pair{program}, nil
}

type grammarParser struct {
	src      string
	tokens   []token
	pos      int
	depth    int
	maxDepth int
}

func (p *grammarParser) peek() token {
	return p.tokens[p.pos]
}

func (p *grammarParser) next() token {
	tok := p.tokens[p.pos]
	if tok.typ != tokEOF {
		p.pos++
	}
	return tok
}

// last returns the most recently consumed token.
func (p *grammarParser) last() token {
	if p.pos == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.pos-1]
}

func (p *grammarParser) expect(typ tokenType) (token, error) {
	tok := p.peek()
	if tok.typ != typ {
		return token{}, p.unexpected(tok, typ.String())
	}
	return p.next(), nil
}

func (p *grammarParser) unexpected(tok token, want string) error {
	found := tok.typ.String()
	if tok.typ == tokIdent {
		found = "identifier '" + tok.text + "'"
	}
	return stlcErrors.Newf(stlcErrors.KindSyntax,
		"line %d, column %d: expected %s, found %s", tok.span.Line, tok.span.Column, want, found)
}

// pair creates a pair covering the source from start to the last consumed token.
func (p *grammarParser) pair(rule Rule, start Span, children ...*Pair) *Pair {
	span := start
	span.End = p.last().span.End
	return &Pair{
		Rule:     rule,
		Children: children,
		Text:     p.src[span.Start:span.End],
		Span:     span,
	}
}

func (p *grammarParser) leaf(rule Rule, tok token) *Pair {
	return &Pair{Rule: rule, Text: tok.text, Span: tok.span}
}

func (p *grammarParser) enter() error {
	p.depth++
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		tok := p.peek()
		return stlcErrors.Newf(stlcErrors.KindLimit,
			"line %d, column %d: maximum nesting depth %d exceeded", tok.span.Line, tok.span.Column, p.maxDepth)
	}
	return nil
}

func (p *grammarParser) leave() {
	p.depth--
}

func (p *grammarParser) parseProgram() (*Pair, error) {
	start := p.peek().span
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokEOF); err != nil {
		return nil, err
	}
	return p.pair(RuleProgram, start, expr), nil
}

func (p *grammarParser) parseExpr() (*Pair, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	switch p.peek().typ {
	case tokLambda:
		return p.parseAbstraction()
	case tokIf:
		return p.parseIfThen()
	default:
		return p.parseApplication()
	}
}

func (p *grammarParser) parseAbstraction() (*Pair, error) {
	start := p.next().span

	identTok, err := p.expect(tokIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokColon); err != nil {
		return nil, err
	}

	var typ *Pair
	switch tok := p.peek(); tok.typ {
	case tokNat:
		typ = p.leaf(RuleTypeNat, p.next())
	case tokBool:
		typ = p.leaf(RuleTypeBool, p.next())
	default:
		return nil, p.unexpected(tok, "type 'Nat' or 'Bool'")
	}

	if _, err := p.expect(tokDot); err != nil {
		return nil, err
	}

	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return p.pair(RuleAbstraction, start, p.leaf(RuleIdent, identTok), typ, body), nil
}

func (p *grammarParser) parseIfThen() (*Pair, error) {
	start := p.next().span

	clause, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokThen); err != nil {
		return nil, err
	}
	thenArm, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokElse); err != nil {
		return nil, err
	}
	elseArm, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return p.pair(RuleIfThen, start, clause, thenArm, elseArm), nil
}

func (p *grammarParser) parseApplication() (*Pair, error) {
	start := p.peek().span

	first, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	app := p.pair(RuleApplication, start, first)

	for startsAtom(p.peek().typ) {
		arg, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		if len(app.Children) == 1 {
			app = p.pair(RuleApplication, start, first, arg)
		} else {
			app = p.pair(RuleApplication, start, app, arg)
		}
	}

	return app, nil
}

func startsAtom(typ tokenType) bool {
	switch typ {
	case tokIdent, tokTrue, tokFalse, tokZero, tokLParen, tokSucc, tokPred, tokIsZero:
		return true
	default:
		return false
	}
}

func (p *grammarParser) parseAtom() (*Pair, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	tok := p.peek()
	switch tok.typ {
	case tokIdent:
		return p.leaf(RuleIdent, p.next()), nil
	case tokTrue:
		return p.leaf(RuleValTrue, p.next()), nil
	case tokFalse:
		return p.leaf(RuleValFalse, p.next()), nil
	case tokZero:
		return p.leaf(RuleValZero, p.next()), nil
	case tokLParen:
		p.next()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return inner, nil
	case tokSucc, tokPred:
		opTok := p.next()
		op := p.leaf(RuleOpSucc, opTok)
		if opTok.typ == tokPred {
			op.Rule = RuleOpPred
		}
		operand, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return p.pair(RuleArithmetic, tok.span, op, operand), nil
	case tokIsZero:
		p.next()
		operand, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return p.pair(RuleZeroCheck, tok.span, operand), nil
	default:
		return nil, p.unexpected(tok, "expression")
	}
}
