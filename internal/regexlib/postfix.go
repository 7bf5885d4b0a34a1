package regexlib

// ToPostfix is the shunting-yard rewrite of an explicit-concatenation token
// stream. Operators of equal precedence pop each other (left associative),
// so a.b.c becomes ab.c. and not abc..
func ToPostfix(toks []Token) ([]Token, error) {
	var (
		out   = make([]Token, 0, len(toks))
		stack []Token
	)
	for _, t := range toks {
		switch {
		case t.Kind == TokSymbol:
			out = append(out, t)
		case t.Kind == TokLParen:
			stack = append(stack, t)
		case t.Kind == TokRParen:
			for {
				if len(stack) == 0 {
					return nil, syntaxErr(ErrMalformedExpression, t.Offset, "unmatched ')'")
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.Kind == TokLParen {
					break
				}
				out = append(out, top)
			}
		case t.Kind.IsOperator():
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Kind.precedence() < t.Kind.precedence() {
					break
				}
				out = append(out, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, t)
		default:
			return nil, syntaxErr(ErrMalformedExpression, t.Offset, "unexpected token %q", t.Text)
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.Kind == TokLParen {
			return nil, syntaxErr(ErrMalformedExpression, top.Offset, "unclosed '('")
		}
		out = append(out, top)
	}
	return out, nil
}
