package regexlib

import (
	"strings"
	"unicode"
)

// reserved characters may never appear inside an alphabet symbol.
const reserved = "()+*.,"

// Alphabet is the ordered set of input symbols. Iteration order is the
// order of first appearance in the definition and drives DFA numbering.
type Alphabet struct {
	symbols []string
	index   map[string]int
	lex     *scanner
}

// ParseAlphabet splits a comma separated definition such as "a, b,,c".
// Entries are trimmed, empty entries dropped and duplicates collapsed.
func ParseAlphabet(def string) (*Alphabet, error) {
	var symbols []string
	for _, part := range strings.Split(def, ",") {
		if s := strings.TrimSpace(part); s != "" {
			symbols = append(symbols, s)
		}
	}
	return NewAlphabet(symbols...)
}

// NewAlphabet builds an alphabet from explicit symbols.
func NewAlphabet(symbols ...string) (*Alphabet, error) {
	a := &Alphabet{index: make(map[string]int, len(symbols))}
	for i, s := range symbols {
		if s == "" {
			continue
		}
		if bad := strings.IndexFunc(s, func(r rune) bool {
			return unicode.IsSpace(r) || strings.ContainsRune(reserved, r)
		}); bad >= 0 {
			return nil, syntaxErr(ErrInvalidSymbol, i, "symbol %q contains reserved character %q", s, s[bad:bad+1])
		}
		if _, dup := a.index[s]; dup {
			continue
		}
		a.index[s] = len(a.symbols)
		a.symbols = append(a.symbols, s)
	}
	if len(a.symbols) == 0 {
		return nil, ErrEmptyAlphabet
	}
	lex, err := newScanner(a.symbols)
	if err != nil {
		return nil, err
	}
	a.lex = lex
	return a, nil
}

// Symbols returns a copy of the symbols in iteration order.
func (a *Alphabet) Symbols() []string {
	return append([]string(nil), a.symbols...)
}

func (a *Alphabet) Len() int { return len(a.symbols) }

func (a *Alphabet) Contains(sym string) bool {
	_, ok := a.index[sym]
	return ok
}

// Index returns the position of sym in iteration order, or -1.
func (a *Alphabet) Index(sym string) int {
	if i, ok := a.index[sym]; ok {
		return i
	}
	return -1
}

func (a *Alphabet) String() string { return strings.Join(a.symbols, ",") }

// Split breaks an input word into alphabet symbols using the same
// longest-match rule as expression tokenizing. Whitespace is ignored.
func (a *Alphabet) Split(word string) ([]string, error) {
	toks, err := a.lex.tokenize(Normalize(word))
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(toks))
	for _, t := range toks {
		if t.Kind != TokSymbol {
			return nil, syntaxErr(ErrUnknownSymbol, t.Offset, "%q is not an alphabet symbol", t.Text)
		}
		out = append(out, t.Text)
	}
	return out, nil
}

// Normalize strips every whitespace character. Error offsets refer to the
// normalized text.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), "")
}
