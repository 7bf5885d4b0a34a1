package regexlib

import (
	"errors"
	"testing"
)

func mustAlphabet(t *testing.T, def string) *Alphabet {
	t.Helper()
	a, err := ParseAlphabet(def)
	if err != nil {
		t.Fatalf("alphabet %q: %v", def, err)
	}
	return a
}

func tokens(t *testing.T, a *Alphabet, expr string) []Token {
	t.Helper()
	toks, err := a.lex.tokenize(Normalize(expr))
	if err != nil {
		t.Fatalf("tokenize %q: %v", expr, err)
	}
	return toks
}

func TestLexerTokens(t *testing.T) {
	a := mustAlphabet(t, "a,b")
	want := []TokenKind{
		TokLParen, TokSymbol, TokUnion, TokSymbol, TokRParen,
		TokStar, TokConcat, TokSymbol,
	}
	toks := tokens(t, a, "(a+b)*.a")
	if len(toks) != len(want) {
		t.Fatalf("want %d tokens got %d: %v", len(want), len(toks), toks)
	}
	for i, typ := range want {
		if toks[i].Kind != typ {
			t.Fatalf("tok %d want %v got %v", i, typ, toks[i].Kind)
		}
		if toks[i].Offset != i {
			t.Fatalf("tok %d want offset %d got %d", i, i, toks[i].Offset)
		}
	}
}

func TestLexerLongestMatch(t *testing.T) {
	a := mustAlphabet(t, "i, f, if")
	toks := tokens(t, a, "iff*")
	want := []string{"if", "f", "*"}
	if len(toks) != len(want) {
		t.Fatalf("want %v got %v", want, toks)
	}
	for i, w := range want {
		if toks[i].Text != w {
			t.Fatalf("tok %d want %q got %q", i, w, toks[i].Text)
		}
	}
}

func TestLexerPunctuationSymbols(t *testing.T) {
	a := mustAlphabet(t, `0, 1, [x], a\b, ^, -, ?`)
	for _, expr := range []string{"0", "[x]", `a\b`, "^", "-", "?", "(0+1)*[x]?"} {
		tokens(t, a, expr)
	}
}

func TestLexerUnknownSymbol(t *testing.T) {
	a := mustAlphabet(t, "a,b")
	_, err := a.lex.tokenize("a.c")
	if !errors.Is(err, ErrUnknownSymbol) {
		t.Fatalf("want ErrUnknownSymbol got %v", err)
	}
	var se *SyntaxError
	if !errors.As(err, &se) || se.Offset != 2 {
		t.Fatalf("want offset 2 got %v", err)
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	if got := Normalize(" ( a +\tb ) *\n"); got != "(a+b)*" {
		t.Fatalf("got %q", got)
	}
}
