package regexlib

import (
	"errors"
	"math/rand"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertPipeline(t *testing.T) {
	r, err := Convert("a, b", " (a + b)* a ")
	require.NoError(t, err)
	assert.Equal(t, "(a+b)*a", r.Expression)
	assert.Equal(t, "(a+b)*.a", r.ExpandedString())
	assert.Equal(t, "ab+*a.", r.PostfixString())
	assert.Equal(t, []string{"a", "b"}, r.Alphabet.Symbols())
}

func TestConvertEndsInA(t *testing.T) {
	r, err := Convert("a,b", "(a+b)*.a")
	require.NoError(t, err)
	for _, in := range []string{"a", "ba", "aba", "bba", "aaa"} {
		ok, err := r.Match(in)
		require.NoError(t, err)
		assert.True(t, ok, "should accept %q", in)
	}
	for _, in := range []string{"", "b", "ab", "aab"} {
		ok, err := r.Match(in)
		require.NoError(t, err)
		assert.False(t, ok, "should reject %q", in)
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name     string
		alphabet string
		expr     string
		want     error
		kind     string
	}{
		{"unclosed group", "a,b", "(a.b", ErrMalformedExpression, "malformed-expression"},
		{"empty alphabet", "", "a", ErrEmptyAlphabet, "empty-alphabet"},
		{"empty alphabet wins", "", "", ErrEmptyAlphabet, "empty-alphabet"},
		{"empty expression", "a,b", "", ErrEmptyExpression, "empty-expression"},
		{"blank expression", "a,b", "  \t", ErrEmptyExpression, "empty-expression"},
		{"unknown symbol", "a,b", "a.c", ErrUnknownSymbol, "unknown-symbol"},
		{"dangling union", "a,b", "a+", ErrMalformedExpression, "malformed-expression"},
		{"leading star", "a,b", "*a", ErrMalformedExpression, "malformed-expression"},
		{"empty group", "a,b", "()", ErrMalformedExpression, "malformed-expression"},
		{"stray close", "a,b", "a)", ErrMalformedExpression, "malformed-expression"},
		{"reserved symbol", "a,+", "a", ErrInvalidSymbol, "invalid-symbol"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Convert(tt.alphabet, tt.expr)
			assert.Nil(t, r)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.kind, Kind(err))
			assert.True(t, IsInputError(err))
		})
	}
}

func TestConvertErrorOffset(t *testing.T) {
	_, err := Convert("a,b", "(a.b")
	var se *SyntaxError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 0, se.Offset)

	_, err = Convert("a,b", "a.b+")
	require.True(t, errors.As(err, &se))
	assert.GreaterOrEqual(t, se.Offset, 3)
}

func TestKind(t *testing.T) {
	assert.Equal(t, "", Kind(nil))
	assert.Equal(t, "internal", Kind(errors.New("boom")))
	assert.False(t, IsInputError(nil))
	assert.False(t, IsInputError(errors.New("boom")))
}

func TestCompileNilAlphabet(t *testing.T) {
	_, err := Compile(nil, "a")
	assert.ErrorIs(t, err, ErrEmptyAlphabet)
}

func TestMatchUnknownSymbol(t *testing.T) {
	r := MustConvert("a,b", "a*")
	_, err := r.Match("abc")
	assert.ErrorIs(t, err, ErrUnknownSymbol)
}

func TestMustConvertPanics(t *testing.T) {
	assert.Panics(t, func() { MustConvert("a", "b") })
}

func TestConvertMultiCharSymbols(t *testing.T) {
	r, err := Convert("if, then, else, x", "if x then x (else x)*")
	require.NoError(t, err)
	assert.Equal(t, "if.x.then.x.(else.x)*", r.ExpandedString())

	ok, err := r.Match("if x then x")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = r.Match("ifxthenxelsexelsex")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = r.Match("if x then x else")
	require.NoError(t, err)
	assert.False(t, ok)
}

// randomExpr returns the same language written in both syntaxes.
func randomExpr(rng *rand.Rand, depth int) (ours, theirs string) {
	if depth == 0 || rng.Intn(4) == 0 {
		s := string("ab"[rng.Intn(2)])
		return s, s
	}
	switch rng.Intn(3) {
	case 0:
		x, gx := randomExpr(rng, depth-1)
		y, gy := randomExpr(rng, depth-1)
		return "(" + x + "+" + y + ")", "(?:" + gx + "|" + gy + ")"
	case 1:
		x, gx := randomExpr(rng, depth-1)
		return "(" + x + ")*", "(?:" + gx + ")*"
	default:
		x, gx := randomExpr(rng, depth-1)
		y, gy := randomExpr(rng, depth-1)
		op := ""
		if rng.Intn(2) == 0 {
			op = "."
		}
		return "(" + x + ")" + op + "(" + y + ")", "(?:" + gx + ")(?:" + gy + ")"
	}
}

func words(alphabet string, maxLen int) []string {
	out := []string{""}
	frontier := []string{""}
	for n := 0; n < maxLen; n++ {
		var next []string
		for _, w := range frontier {
			for _, c := range alphabet {
				next = append(next, w+string(c))
			}
		}
		out = append(out, next...)
		frontier = next
	}
	return out
}

func TestConvertAgreesWithRegexp(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	inputs := words("ab", 6)
	for i := 0; i < 200; i++ {
		ours, theirs := randomExpr(rng, 4)
		re := regexp.MustCompile("^(?:" + theirs + ")$")
		r, err := Convert("a,b", ours)
		require.NoError(t, err, ours)
		for _, in := range inputs {
			got, err := r.Match(in)
			require.NoError(t, err)
			if got != re.MatchString(in) {
				t.Fatalf("%s on %q: dfa says %v, regexp says %v (postfix %s, %d states)",
					ours, in, got, !got, r.PostfixString(), len(r.DFA.States))
			}
		}
	}
}

func TestConvertConcurrent(t *testing.T) {
	alpha := mustAlphabet(t, "a,b")
	exprs := []string{"a*", "(a+b)*.a", "a.b", "(a.b)*+b"}
	done := make(chan string, len(exprs)*8)
	for i := 0; i < len(exprs)*8; i++ {
		expr := exprs[i%len(exprs)]
		go func() {
			r, err := Compile(alpha, expr)
			if err != nil {
				done <- err.Error()
				return
			}
			var keys []string
			for _, s := range r.DFA.States {
				keys = append(keys, s.NFA.Key())
			}
			done <- expr + "=" + strings.Join(keys, "|")
		}()
	}
	seen := map[string]string{}
	for i := 0; i < len(exprs)*8; i++ {
		res := <-done
		expr, keys, ok := strings.Cut(res, "=")
		require.True(t, ok, res)
		if prev, dup := seen[expr]; dup {
			assert.Equal(t, prev, keys, expr)
		}
		seen[expr] = keys
	}
}
