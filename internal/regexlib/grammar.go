package regexlib

import (
	"errors"
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The grammar only validates structure: it catches an operator with a
// missing operand (a+, +a, a.*, ()) with a precise offset before postfix
// evaluation runs. Concatenation is already explicit here.

type unionExpr struct {
	Terms []*concatExpr `parser:"@@ ( '+' @@ )*"`
}

type concatExpr struct {
	Factors []*closureExpr `parser:"@@ ( '.' @@ )*"`
}

type closureExpr struct {
	Atom  *atomExpr `parser:"@@"`
	Stars []string  `parser:"( @'*' )*"`
}

type atomExpr struct {
	Symbol *string    `parser:"  @Symbol"`
	Group  *unionExpr `parser:"| '(' @@ ')'"`
}

const (
	typeSymbol lexer.TokenType = iota + 1
	typePunct
)

// tokenDefinition hands the already tokenized stream to participle, so the
// alphabet's longest-match rule is applied exactly once.
type tokenDefinition struct{}

func (tokenDefinition) Symbols() map[string]lexer.TokenType {
	return map[string]lexer.TokenType{
		"EOF":    lexer.EOF,
		"Symbol": typeSymbol,
		"Punct":  typePunct,
	}
}

func (tokenDefinition) Lex(string, io.Reader) (lexer.Lexer, error) {
	return nil, errors.New("regexlib grammar parses token streams only")
}

type tokenStream struct {
	toks []lexer.Token
	pos  int
	end  lexer.Position
}

func newTokenStream(toks []Token) *tokenStream {
	ts := &tokenStream{toks: make([]lexer.Token, 0, len(toks))}
	next := 0
	for _, t := range toks {
		off := t.Offset
		if off < 0 {
			off = next
		}
		typ := typePunct
		if t.Kind == TokSymbol {
			typ = typeSymbol
		}
		ts.toks = append(ts.toks, lexer.Token{
			Type:  typ,
			Value: t.Text,
			Pos:   lexer.Position{Offset: off, Line: 1, Column: off + 1},
		})
		if t.Offset >= 0 {
			next = t.Offset + len(t.Text)
		}
	}
	ts.end = lexer.Position{Offset: next, Line: 1, Column: next + 1}
	return ts
}

func (ts *tokenStream) Next() (lexer.Token, error) {
	if ts.pos >= len(ts.toks) {
		return lexer.EOFToken(ts.end), nil
	}
	t := ts.toks[ts.pos]
	ts.pos++
	return t, nil
}

var grammar = participle.MustBuild[unionExpr](participle.Lexer(tokenDefinition{}))

// checkGrammar validates an explicit-concatenation token stream.
func checkGrammar(toks []Token) error {
	lex, err := lexer.Upgrade(newTokenStream(toks))
	if err != nil {
		return err
	}
	if _, err := grammar.ParseFromLexer(lex); err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			return syntaxErr(ErrMalformedExpression, perr.Position().Offset, "%s", perr.Message())
		}
		return syntaxErr(ErrMalformedExpression, 0, "%v", err)
	}
	return nil
}
