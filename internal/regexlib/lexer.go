package regexlib

import (
	"errors"
	"fmt"
	"strings"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// scanner is a longest-match tokenizer compiled for one alphabet. Once
// compiled it is read-only, every call gets its own lexmachine.Scanner.
type scanner struct {
	lexer *lexmachine.Lexer
}

func newScanner(symbols []string) (*scanner, error) {
	l := lexmachine.NewLexer()
	l.Add([]byte(`[(]`), tokAction(TokLParen))
	l.Add([]byte(`[)]`), tokAction(TokRParen))
	l.Add([]byte(`[+]`), tokAction(TokUnion))
	l.Add([]byte(`[.]`), tokAction(TokConcat))
	l.Add([]byte(`[*]`), tokAction(TokStar))
	for _, s := range symbols {
		l.Add([]byte(literalPattern(s)), tokAction(TokSymbol))
	}
	if err := l.Compile(); err != nil {
		return nil, fmt.Errorf("compile tokenizer: %w", err)
	}
	return &scanner{lexer: l}, nil
}

// tokenize splits an already normalized expression. Anything that is not an
// operator, a parenthesis or an alphabet symbol fails with ErrUnknownSymbol.
func (s *scanner) tokenize(text string) ([]Token, error) {
	sc, err := s.lexer.Scanner([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("start tokenizer: %w", err)
	}
	var toks []Token
	for tok, err, eos := sc.Next(); !eos; tok, err, eos = sc.Next() {
		if err != nil {
			var ui *machines.UnconsumedInput
			if errors.As(err, &ui) {
				return nil, syntaxErr(ErrUnknownSymbol, ui.StartTC, "unexpected %q", firstRune(text[ui.StartTC:]))
			}
			return nil, err
		}
		toks = append(toks, tok.(Token))
	}
	return toks, nil
}

func tokAction(kind TokenKind) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return Token{
			Kind:   kind,
			Text:   string(m.Bytes),
			Offset: m.TC,
		}, nil
	}
}

// literalPattern quotes a symbol for the lexmachine regex dialect. Plain
// letters, digits and non-ASCII bytes pass through; punctuation goes into a
// one-character class.
func literalPattern(sym string) string {
	var b strings.Builder
	for i := 0; i < len(sym); i++ {
		c := sym[i]
		switch {
		case c >= 0x80, c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
			b.WriteByte(c)
		case c == ']':
			b.WriteString(`[]]`)
		case c == '\\', c == '^', c == '[':
			b.WriteString(`[\`)
			b.WriteByte(c)
			b.WriteByte(']')
		default:
			b.WriteByte('[')
			b.WriteByte(c)
			b.WriteByte(']')
		}
	}
	return b.String()
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
