package regexlib

import "strings"

type TokenKind int

const (
	TokSymbol TokenKind = iota // alphabet symbol
	TokLParen                  // (
	TokRParen                  // )
	TokUnion                   // +
	TokConcat                  // .
	TokStar                    // *
)

var kindNames = [...]string{
	TokSymbol: "Symbol",
	TokLParen: "(",
	TokRParen: ")",
	TokUnion:  "+",
	TokConcat: ".",
	TokStar:   "*",
}

func (k TokenKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "?"
}

// IsOperator reports whether the kind is one of the three regex operators.
func (k TokenKind) IsOperator() bool {
	return k == TokUnion || k == TokConcat || k == TokStar
}

// precedence follows the classic ordering * > . > +; parentheses rank 0 so
// the shunting-yard loop never pops them.
func (k TokenKind) precedence() int {
	switch k {
	case TokStar:
		return 3
	case TokConcat:
		return 2
	case TokUnion:
		return 1
	default:
		return 0
	}
}

type Token struct {
	Kind   TokenKind
	Text   string
	Offset int // byte offset in the normalized expression; -1 for inserted tokens
}

var concatToken = Token{Kind: TokConcat, Text: ".", Offset: -1}

// joinTokens renders a token stream back into expression text.
func joinTokens(toks []Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.Text)
	}
	return b.String()
}
