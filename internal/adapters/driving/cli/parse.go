package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
	"github.com/custodia-labs/scenaria-core/internal/core/segments"
)

var (
	parseJSON      bool
	parseEditsOnly bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [response]",
	Short: "Split an assistant response into text and edit segments",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "output segments as JSON")
	parseCmd.Flags().BoolVar(&parseEditsOnly, "edits", false, "only list segments that propose a replacement")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	response, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	p := newParser()
	var segs []domain.ResponseSegment
	if parseEditsOnly {
		segs = p.Edits(response)
	} else {
		segs = p.Parse(response)
	}

	if parseJSON {
		if segs == nil {
			segs = []domain.ResponseSegment{}
		}
		data, err := json.MarshalIndent(segs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal segments: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(segs) == 0 {
		cmd.Println("No segments found.")
		return nil
	}

	for i, s := range segs {
		switch s.Type {
		case domain.SegmentEditing:
			cmd.Printf("[%d] edit\n", i+1)
			cmd.Printf("    previous: %s\n", segments.FirstMeaningfulLine(s.PreviousVersion))
			cmd.Printf("    new:      %s\n", segments.FirstMeaningfulLine(s.NewFragment))
		default:
			cmd.Printf("[%d] text\n", i+1)
			cmd.Println(segments.FormatAnalysis(s.Content))
		}
	}
	return nil
}
