package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"retodfa/internal/dto"
	"retodfa/internal/regexlib"
	"retodfa/internal/render"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert EXPRESSION",
	Short: "Convert an expression and print the DFA",
	Long: `Convert an expression over the alphabet given with --alphabet and print the
result. Formats:

  table     transition table, final states marked with '*' (default)
  json      the full conversion document
  dot       Graphviz source of the DFA
  nfa-dot   Graphviz source of the Thompson NFA
  nfa       text listing of the Thompson NFA
  markdown  summary and table rendered for the terminal

With --png the DOT output is piped through Graphviz 'dot' and written to --out.`,
	Example: `  retodfa convert -a "a,b" "(a+b)*abb"
  retodfa convert -a "a,b" -f dot -o dfa.dot "(a+b)*a"
  retodfa convert -a "a,b" -f nfa-dot --png -o nfa.png "a*b"`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringP("alphabet", "a", "", "Comma separated alphabet symbols (required)")
	convertCmd.Flags().StringP("format", "f", "table", "Output format: table, json, dot, nfa-dot, nfa, markdown")
	convertCmd.Flags().StringP("out", "o", "-", "Output file ('-' for stdout)")
	convertCmd.Flags().Bool("png", false, "Render DOT output to PNG via 'dot -Tpng' (needs --out)")
	convertCmd.Flags().Bool("no-color", false, "Disable colour in table output")
	convertCmd.Flags().Bool("raw", false, "Print markdown source instead of rendering it")
	_ = convertCmd.MarkFlagRequired("alphabet")
}

func runConvert(cmd *cobra.Command, args []string) error {
	alphabet, _ := cmd.Flags().GetString("alphabet")
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")
	png, _ := cmd.Flags().GetBool("png")
	noColor, _ := cmd.Flags().GetBool("no-color")
	raw, _ := cmd.Flags().GetBool("raw")

	if png && (out == "-" || (format != "dot" && format != "nfa-dot")) {
		return fmt.Errorf("--png needs --format dot or nfa-dot and an --out file")
	}

	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	var buf bytes.Buffer
	switch format {
	case "nfa", "nfa-dot":
		// The NFA is not part of the cached document, so compile directly.
		res, err := regexlib.Convert(alphabet, args[0])
		if err != nil {
			return err
		}
		if format == "nfa" {
			render.NFAListing(&buf, res.NFA)
		} else {
			render.NFADot(&buf, res.NFA)
		}
	case "table", "json", "dot", "markdown":
		doc, err := e.conv.Convert(cmd.Context(), alphabet, args[0])
		if err != nil {
			return err
		}
		if err := writeDocument(&buf, doc, format, out == "-" && !noColor, raw); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	if png {
		if err := render.PNG(cmd.Context(), buf.Bytes(), out); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "PNG written to %s\n", out)
		return nil
	}

	if out == "-" {
		_, err = io.Copy(cmd.OutOrStdout(), &buf)
		return err
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("cannot write %s: %w", out, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s written to %s\n", format, out)
	return nil
}

func writeDocument(w io.Writer, doc *dto.Document, format string, color, raw bool) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "dot":
		render.DFADot(w, doc)
	case "markdown":
		md := render.Markdown(doc)
		if raw {
			_, err := io.WriteString(w, md)
			return err
		}
		r, err := render.NewMarkdownRenderer()
		if err != nil {
			return err
		}
		s, err := r(md)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, s)
		return err
	default:
		p := termenv.Ascii
		if color {
			p = termenv.ColorProfile()
		}
		render.Table(w, doc, p)
	}
	return nil
}
