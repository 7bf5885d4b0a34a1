package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"retodfa/internal/dto"
	"retodfa/internal/regexlib"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

// Table writes the DFA transition table. Final states are prefixed with '*'
// and '-' marks a missing transition. Pass termenv.Ascii for plain text.
func Table(w io.Writer, doc *dto.Document, p termenv.Profile) {
	finals := make([]string, 0, len(doc.Finals))
	for _, f := range doc.Finals {
		finals = append(finals, strconv.Itoa(f))
	}
	fmt.Fprintf(w, "Start State: %d\n", doc.Start)
	fmt.Fprintf(w, "Final States: { %s }\n\n", strings.Join(finals, ", "))

	header := append([]string{"State"}, doc.Alphabet...)
	rows := make([][]string, 0, len(doc.States))
	for _, s := range doc.States {
		row := make([]string, len(header))
		mark := " "
		if s.Final {
			mark = "*"
		}
		row[0] = mark + strconv.Itoa(s.ID)
		for i := range doc.Alphabet {
			row[i+1] = "-"
		}
		for _, tr := range s.Transitions {
			for i, sym := range doc.Alphabet {
				if sym == tr.Symbol {
					row[i+1] = strconv.Itoa(tr.To)
				}
			}
		}
		rows = append(rows, row)
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, c := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}

	cells := func(row []string, style func(int, string) string) string {
		var b strings.Builder
		for i, c := range row {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(style(i, runewidth.FillRight(c, widths[i])))
		}
		return strings.TrimRight(b.String(), " ")
	}
	bold := func(_ int, s string) string { return p.String(s).Bold().String() }
	fmt.Fprintln(w, cells(header, bold))

	rule := make([]string, len(header))
	for i := range rule {
		rule[i] = strings.Repeat("-", widths[i])
	}
	fmt.Fprintln(w, strings.Join(rule, "-|-"))

	for i, row := range rows {
		s := doc.States[i]
		fmt.Fprintln(w, cells(row, func(col int, c string) string {
			switch {
			case col == 0 && s.Final:
				return p.String(c).Foreground(p.Color("#f472b6")).String()
			case col == 0 && s.Start:
				return p.String(c).Foreground(p.Color("#818cf8")).String()
			case strings.TrimSpace(c) == "-":
				return p.String(c).Faint().String()
			}
			return c
		}))
	}
}

// NFAListing writes every NFA node with its outgoing edges.
func NFAListing(w io.Writer, n *regexlib.NFA) {
	fmt.Fprintf(w, "Start Node: %d\n", n.Start)
	fmt.Fprintf(w, "End Node: %d\n\n", n.Final)
	for _, node := range n.Nodes() {
		fmt.Fprintf(w, "Node %d", node.ID)
		if node.Start {
			fmt.Fprint(w, " (Start)")
		}
		if node.Final {
			fmt.Fprint(w, " (Final)")
		}
		fmt.Fprintln(w)
		if len(node.Edges) == 0 {
			fmt.Fprintln(w, "  no outgoing edge")
		}
		for _, e := range node.Edges {
			fmt.Fprintf(w, "  %d --%s--> %d\n", node.ID, e.Label(), e.To)
		}
	}
}
