package regexlib

// InsertConcat makes implicit concatenation explicit: a '.' goes between two
// adjacent tokens when the left one ends an operand (symbol, ')' or '*') and
// the right one starts an operand (symbol or '(').
//
//	ab  -> a.b    a(b -> a.(b    )a -> ).a    *a -> *.a
func InsertConcat(toks []Token) []Token {
	out := make([]Token, 0, 2*len(toks))
	for i, t := range toks {
		out = append(out, t)
		if i+1 < len(toks) && endsOperand(t.Kind) && startsOperand(toks[i+1].Kind) {
			out = append(out, concatToken)
		}
	}
	return out
}

func endsOperand(k TokenKind) bool {
	return k == TokSymbol || k == TokRParen || k == TokStar
}

func startsOperand(k TokenKind) bool {
	return k == TokSymbol || k == TokLParen
}
