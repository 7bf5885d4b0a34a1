package regexlib

// checkParens rejects unbalanced parentheses before anything is parsed. An
// unclosed group is reported at its own '('.
func checkParens(toks []Token) error {
	var open []int
	for _, t := range toks {
		switch t.Kind {
		case TokLParen:
			open = append(open, t.Offset)
		case TokRParen:
			if len(open) == 0 {
				return syntaxErr(ErrMalformedExpression, t.Offset, "unmatched ')'")
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) > 0 {
		return syntaxErr(ErrMalformedExpression, open[len(open)-1], "%d unclosed '('", len(open))
	}
	return nil
}
