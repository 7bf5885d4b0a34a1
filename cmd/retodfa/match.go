package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strconv"

	"retodfa/internal/dto"

	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match EXPRESSION [INPUT...]",
	Short: "Run inputs through the DFA of an expression",
	Long: `Convert an expression and report, for every input, whether the DFA accepts
it. Whitespace inside inputs is ignored. Without INPUT arguments the inputs are
read from stdin, one per line.`,
	Example: `  retodfa match -a "a,b" "(a+b)*a" ba ab ""
  printf 'a\nab\n' | retodfa match -a "a,b" "(a+b)*a"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().StringP("alphabet", "a", "", "Comma separated alphabet symbols (required)")
	matchCmd.Flags().Bool("json", false, "Print results as JSON")
	_ = matchCmd.MarkFlagRequired("alphabet")
}

func runMatch(cmd *cobra.Command, args []string) error {
	alphabet, _ := cmd.Flags().GetString("alphabet")
	asJSON, _ := cmd.Flags().GetBool("json")

	inputs := args[1:]
	if len(inputs) == 0 {
		sc := bufio.NewScanner(cmd.InOrStdin())
		for sc.Scan() {
			inputs = append(inputs, sc.Text())
		}
		if err := sc.Err(); err != nil {
			return fmt.Errorf("read inputs: %w", err)
		}
	}

	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	results, err := e.conv.Match(cmd.Context(), alphabet, args[0], inputs)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Results []dto.MatchResult `json:"results"`
		}{results})
	}
	for _, r := range results {
		verdict := "reject"
		switch {
		case r.Error != "":
			verdict = "error "
		case r.Accepted:
			verdict = "accept"
		}
		line := verdict + "  " + strconv.Quote(r.Input)
		if r.Error != "" {
			line += "  (" + r.Error + ")"
		}
		fmt.Fprintln(w, line)
	}
	return nil
}
