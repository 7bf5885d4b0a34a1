package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"retodfa/internal/dto"
	"retodfa/internal/regexlib"
)

// DFADot writes a Graphviz digraph of the DFA in doc.
func DFADot(w io.Writer, doc *dto.Document) {
	fmt.Fprintln(w, "digraph DFA {")
	fmt.Fprintln(w, "    rankdir=LR;")
	for _, s := range doc.States {
		shape := "circle"
		if s.Final {
			shape = "doublecircle"
		}
		fmt.Fprintf(w, "    q%d [shape=%s];\n", s.ID, shape)
	}
	for _, s := range doc.States {
		for _, tr := range s.Transitions {
			fmt.Fprintf(w, "    q%d -> q%d [label=%s];\n", s.ID, tr.To, quote(tr.Symbol))
		}
	}
	fmt.Fprintf(w, "    _start [shape=point]; _start -> q%d;\n", doc.Start)
	fmt.Fprintln(w, "}")
}

// NFADot writes a Graphviz digraph of a Thompson NFA. Epsilon edges are
// dashed.
func NFADot(w io.Writer, n *regexlib.NFA) {
	fmt.Fprintln(w, "digraph NFA {")
	fmt.Fprintln(w, "    rankdir=LR;")
	for _, node := range n.Nodes() {
		shape := "circle"
		if node.Final {
			shape = "doublecircle"
		}
		fmt.Fprintf(w, "    n%d [shape=%s];\n", node.ID, shape)
	}
	for _, node := range n.Nodes() {
		for _, e := range node.Edges {
			style := ""
			if e.Epsilon {
				style = ", style=dashed"
			}
			fmt.Fprintf(w, "    n%d -> n%d [label=%s%s];\n", node.ID, e.To, quote(e.Label()), style)
		}
	}
	fmt.Fprintf(w, "    _start [shape=point]; _start -> n%d;\n", n.Start)
	fmt.Fprintln(w, "}")
}

func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

// PNG pipes a DOT source through `dot -Tpng` into path.
func PNG(ctx context.Context, dot []byte, path string) error {
	cmd := exec.CommandContext(ctx, "dot", "-Tpng", "-o", path)
	cmd.Stdin = bytes.NewReader(dot)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("dot failed: %w", err)
	}
	return nil
}
