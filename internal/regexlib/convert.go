// Package regexlib turns a regular expression over a finite alphabet into a
// deterministic finite automaton.
//
// The pipeline is: normalize and tokenize (longest match against the
// alphabet), make concatenation explicit, check parentheses and structure,
// rewrite to postfix, build a Thompson NFA and determinize it by subset
// construction. Operators are '+' (union), '.' (concatenation, usually
// implicit) and postfix '*' (Kleene closure), grouped with parentheses.
//
// Every call builds its automata from scratch with its own id counters, so
// conversions may run concurrently.
package regexlib

import "context"

// Result carries the output of one conversion together with the
// intermediate artifacts, which are kept for diagnostics only.
type Result struct {
	Alphabet   *Alphabet
	Expression string // normalized input
	Expanded   []Token
	Postfix    []Token
	NFA        *NFA
	DFA        *DFA
}

// ExpandedString is the expression with explicit concatenation.
func (r *Result) ExpandedString() string { return joinTokens(r.Expanded) }

// PostfixString is the postfix token stream rendered as text.
func (r *Result) PostfixString() string { return joinTokens(r.Postfix) }

// Match splits input into alphabet symbols and runs the DFA on them.
func (r *Result) Match(input string) (bool, error) {
	syms, err := r.Alphabet.Split(input)
	if err != nil {
		return false, err
	}
	return r.DFA.Accepts(syms), nil
}

// Convert parses the comma separated alphabet definition and compiles
// expression over it. The alphabet is validated before the expression is
// looked at.
func Convert(alphabet, expression string) (*Result, error) {
	alpha, err := ParseAlphabet(alphabet)
	if err != nil {
		return nil, err
	}
	return Compile(alpha, expression)
}

// Limits bounds the work one compilation may do. Zero values disable a
// limit.
type Limits struct {
	MaxDFAStates int
}

// Compile runs the pipeline for an already parsed alphabet.
func Compile(alpha *Alphabet, expression string) (*Result, error) {
	return CompileContext(context.Background(), alpha, expression, Limits{})
}

// CompileContext is Compile with cancellation and limits. Subset
// construction checks ctx between worklist items.
func CompileContext(ctx context.Context, alpha *Alphabet, expression string, lim Limits) (*Result, error) {
	if alpha == nil || alpha.Len() == 0 {
		return nil, ErrEmptyAlphabet
	}
	expr := Normalize(expression)
	if expr == "" {
		return nil, ErrEmptyExpression
	}

	toks, err := alpha.lex.tokenize(expr)
	if err != nil {
		return nil, err
	}
	expanded := InsertConcat(toks)
	if err := checkParens(expanded); err != nil {
		return nil, err
	}
	if err := checkGrammar(expanded); err != nil {
		return nil, err
	}
	postfix, err := ToPostfix(expanded)
	if err != nil {
		return nil, err
	}
	nfa, err := BuildNFA(postfix)
	if err != nil {
		return nil, err
	}
	dfa, err := SubsetConstructionLimit(ctx, nfa, alpha, lim.MaxDFAStates)
	if err != nil {
		return nil, err
	}

	return &Result{
		Alphabet:   alpha,
		Expression: expr,
		Expanded:   expanded,
		Postfix:    postfix,
		NFA:        nfa,
		DFA:        dfa,
	}, nil
}

// MustConvert is like Convert but panics on error.
func MustConvert(alphabet, expression string) *Result {
	r, err := Convert(alphabet, expression)
	if err != nil {
		panic("regexlib: Convert(" + alphabet + ", " + expression + "): " + err.Error())
	}
	return r
}
