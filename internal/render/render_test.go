package render

import (
	"bytes"
	"strings"
	"testing"

	"retodfa/internal/dto"
	"retodfa/internal/regexlib"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDFADot(t *testing.T) {
	var buf bytes.Buffer
	DFADot(&buf, dto.FromResult(regexlib.MustConvert("a,b", "a.b")))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "digraph DFA {\n"))
	assert.Contains(t, out, "q2 [shape=doublecircle];")
	assert.Contains(t, out, "q0 [shape=circle];")
	assert.Contains(t, out, `q0 -> q1 [label="a"];`)
	assert.Contains(t, out, `q1 -> q2 [label="b"];`)
	assert.Contains(t, out, "_start -> q0;")
	assert.True(t, strings.HasSuffix(out, "}\n"))
}

func TestDFADotQuotesLabels(t *testing.T) {
	var buf bytes.Buffer
	DFADot(&buf, dto.FromResult(regexlib.MustConvert(`", \`, `"\`)))
	assert.Contains(t, buf.String(), `label="\""`)
	assert.Contains(t, buf.String(), `label="\\"`)
}

func TestNFADot(t *testing.T) {
	var buf bytes.Buffer
	NFADot(&buf, regexlib.MustConvert("a", "a*").NFA)
	out := buf.String()

	assert.Contains(t, out, "digraph NFA {")
	assert.Contains(t, out, "n3 [shape=doublecircle];")
	assert.Contains(t, out, `n2 -> n3 [label="ε", style=dashed];`)
	assert.Contains(t, out, `n0 -> n1 [label="a"];`)
	assert.Contains(t, out, "_start -> n2;")
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	Table(&buf, dto.FromResult(regexlib.MustConvert("a,b", "a.b")), termenv.Ascii)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	require.Len(t, lines, 8)
	assert.Equal(t, "Start State: 0", lines[0])
	assert.Equal(t, "Final States: { 2 }", lines[1])
	assert.Equal(t, "", lines[2])
	assert.Equal(t, "State | a | b", lines[3])
	assert.Equal(t, "------|---|--", lines[4])
	assert.Equal(t, " 0    | 1 | -", lines[5])
	assert.Equal(t, " 1    | - | 2", lines[6])
	assert.Equal(t, "*2    | - | -", lines[7])
}

func TestTableWideSymbols(t *testing.T) {
	var buf bytes.Buffer
	doc := &dto.Document{
		Alphabet: []string{"日", "b"},
		Finals:   []int{2},
		States: []dto.State{
			{ID: 0, Start: true, Transitions: []dto.Transition{{Symbol: "日", To: 1}}},
			{ID: 1, Transitions: []dto.Transition{{Symbol: "b", To: 2}}},
			{ID: 2, Final: true},
		},
	}
	Table(&buf, doc, termenv.Ascii)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	require.Len(t, lines, 8)
	assert.Equal(t, "State | 日 | b", lines[3])
	assert.Equal(t, "------|----|--", lines[4])
	assert.Equal(t, " 0    | 1  | -", lines[5])
	assert.Equal(t, " 1    | -  | 2", lines[6])
	assert.Equal(t, "*2    | -  | -", lines[7])
}

func TestNFAListing(t *testing.T) {
	var buf bytes.Buffer
	NFAListing(&buf, regexlib.MustConvert("a,b", "a.b").NFA)
	out := buf.String()

	assert.Contains(t, out, "Start Node: 0\nEnd Node: 3\n")
	assert.Contains(t, out, "Node 0 (Start)\n  0 --a--> 1\n")
	assert.Contains(t, out, "Node 1\n  1 --b--> 3\n")
	assert.Contains(t, out, "Node 3 (Final)\n  no outgoing edge\n")
	assert.NotContains(t, out, "Node 2")
}

func TestMarkdown(t *testing.T) {
	md := Markdown(dto.FromResult(regexlib.MustConvert("a,b", "(a+b)*.a")))

	assert.Contains(t, md, "# DFA for `(a+b)*.a`")
	assert.Contains(t, md, "- **Postfix:** `ab+*a.`")
	assert.Contains(t, md, "| State | `a` | `b` |")
	assert.Contains(t, md, "| → 0 |")
	assert.Contains(t, md, "(final)")
}

func TestMarkdownRenderer(t *testing.T) {
	render, err := NewMarkdownRenderer()
	require.NoError(t, err)
	out, err := render("# hello\n")
	require.NoError(t, err)
	assert.Contains(t, out, "hello")
}
