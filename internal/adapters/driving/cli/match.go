package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
)

var matchJSON bool

var matchCmd = &cobra.Command{
	Use:   "match [document] [fragment]",
	Short: "Locate a fragment in a document",
	Long: `Finds the span of the document that the fragment was taken from.
Pass "-" as the fragment to read it from stdin.`,
	Args: cobra.ExactArgs(2),
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "output the match as JSON")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	doc, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	fragment, err := readInput(cmd, args[1])
	if err != nil {
		return err
	}

	res, err := newMatcher(cmd).FindMatch(context.Background(), doc, fragment, matchOptions())
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}
	if res == nil {
		if matchJSON {
			cmd.Println("null")
		} else {
			cmd.Println("No confident match found.")
		}
		return domain.ErrNoMatch
	}

	if matchJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal match: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Method:     %s\n", res.Method)
	cmd.Printf("Span:       [%d, %d)\n", res.Start, res.End)
	cmd.Printf("Similarity: %.3f\n", res.Similarity)
	cmd.Printf("Confidence: %.3f\n", res.Confidence)
	cmd.Println()
	cmd.Println(res.FoundText)
	return nil
}
