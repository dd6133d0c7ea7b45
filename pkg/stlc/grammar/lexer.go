package grammar

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	stlcErrors "lambda-hq/stlc/pkg/stlc/errors"
)

// tokenType identifies a lexical token.
type tokenType int

const (
	tokEOF tokenType = iota
	tokIdent
	tokLambda
	tokColon
	tokDot
	tokLParen
	tokRParen
	tokIf
	tokThen
	tokElse
	tokSucc
	tokPred
	tokIsZero
	tokTrue
	tokFalse
	tokZero
	tokNat
	tokBool
)

var tokenNames = map[tokenType]string{
	tokEOF:    "end of input",
	tokIdent:  "identifier",
	tokLambda: "'λ'",
	tokColon:  "':'",
	tokDot:    "'.'",
	tokLParen: "'('",
	tokRParen: "')'",
	tokIf:     "'if'",
	tokThen:   "'then'",
	tokElse:   "'else'",
	tokSucc:   "'succ'",
	tokPred:   "'pred'",
	tokIsZero: "'iszero'",
	tokTrue:   "'true'",
	tokFalse:  "'false'",
	tokZero:   "'0'",
	tokNat:    "'Nat'",
	tokBool:   "'Bool'",
}

func (t tokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(t))
}

var keywords = map[string]tokenType{
	"lambda": tokLambda,
	"if":     tokIf,
	"then":   tokThen,
	"else":   tokElse,
	"succ":   tokSucc,
	"pred":   tokPred,
	"iszero": tokIsZero,
	"true":   tokTrue,
	"false":  tokFalse,
	"Nat":    tokNat,
	"Bool":   tokBool,
}

type token struct {
	typ  tokenType
	text string
	span Span
}

// lexer splits source text into tokens. Whitespace and '#' line comments are
// skipped.
type lexer struct {
	src    string
	pos    int
	line   int
	column int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, column: 1}
}

// tokenize returns all tokens of the source, ending with tokEOF.
func (l *lexer) tokenize() ([]token, error) {
	var tokens []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.typ == tokEOF {
			return tokens, nil
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipSpace()

	start := Span{Start: l.pos, Line: l.line, Column: l.column}
	if l.pos >= len(l.src) {
		start.End = l.pos
		return token{typ: tokEOF, span: start}, nil
	}

	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	switch {
	case r == '\\' || r == 'λ':
		l.advance()
		return l.emit(tokLambda, start), nil
	case r == ':':
		l.advance()
		return l.emit(tokColon, start), nil
	case r == '.':
		l.advance()
		return l.emit(tokDot, start), nil
	case r == '(':
		l.advance()
		return l.emit(tokLParen, start), nil
	case r == ')':
		l.advance()
		return l.emit(tokRParen, start), nil
	case unicode.IsDigit(r):
		for l.pos < len(l.src) && unicode.IsDigit(l.peekRune()) {
			l.advance()
		}
		tok := l.emit(tokZero, start)
		if tok.text != "0" {
			return token{}, stlcErrors.Newf(stlcErrors.KindSyntax,
				"line %d, column %d: numeric literal %q is not supported, use 0 with succ",
				start.Line, start.Column, tok.text)
		}
		return tok, nil
	case isIdentStart(r):
		for l.pos < len(l.src) && isIdentPart(l.peekRune()) {
			l.advance()
		}
		tok := l.emit(tokIdent, start)
		if kw, ok := keywords[tok.text]; ok {
			tok.typ = kw
		}
		return tok, nil
	default:
		return token{}, stlcErrors.Newf(stlcErrors.KindSyntax,
			"line %d, column %d: unexpected character %q", start.Line, start.Column, r)
	}
}

func (l *lexer) emit(typ tokenType, start Span) token {
	start.End = l.pos
	return token{typ: typ, text: l.src[start.Start:l.pos], span: start}
}

func (l *lexer) peekRune() rune {
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return r
}

func (l *lexer) advance() {
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		r := l.peekRune()
		switch {
		case r == '#':
			for l.pos < len(l.src) && l.peekRune() != '\n' {
				l.advance()
			}
		case unicode.IsSpace(r):
			l.advance()
		default:
			return
		}
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || (unicode.IsLetter(r) && r != 'λ')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || r == '\''
}
