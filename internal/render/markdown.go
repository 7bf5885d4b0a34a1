package render

import (
	"fmt"
	"strconv"
	"strings"

	"retodfa/internal/dto"

	"github.com/charmbracelet/glamour"
)

// Markdown describes a conversion as a markdown document: the pipeline
// artifacts followed by the transition table.
func Markdown(doc *dto.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# DFA for `%s`\n\n", doc.Expression)
	fmt.Fprintf(&b, "- **Alphabet:** %s\n", codeList(doc.Alphabet))
	fmt.Fprintf(&b, "- **Expanded:** `%s`\n", doc.Expanded)
	fmt.Fprintf(&b, "- **Postfix:** `%s`\n", doc.Postfix)
	fmt.Fprintf(&b, "- **NFA states:** %d\n", doc.NFAStates)
	fmt.Fprintf(&b, "- **DFA states:** %d\n\n", len(doc.States))

	b.WriteString("| State |")
	for _, sym := range doc.Alphabet {
		fmt.Fprintf(&b, " `%s` |", sym)
	}
	b.WriteString("\n|---|")
	for range doc.Alphabet {
		b.WriteString("---|")
	}
	b.WriteString("\n")

	for _, s := range doc.States {
		label := strconv.Itoa(s.ID)
		if s.Start {
			label = "→ " + label
		}
		if s.Final {
			label = "**" + label + "** (final)"
		}
		fmt.Fprintf(&b, "| %s |", label)
		for _, sym := range doc.Alphabet {
			cell := "-"
			for _, tr := range s.Transitions {
				if tr.Symbol == sym {
					cell = strconv.Itoa(tr.To)
				}
			}
			fmt.Fprintf(&b, " %s |", cell)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func codeList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "`" + s + "`"
	}
	return strings.Join(quoted, ", ")
}

// NewMarkdownRenderer returns a function that renders markdown for the
// terminal using glamour.
func NewMarkdownRenderer() (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return nil, fmt.Errorf("markdown renderer: %w", err)
	}
	return r.Render, nil
}
