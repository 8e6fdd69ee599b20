package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
)

var (
	applyWrite bool
	applyPatch bool
)

var applyCmd = &cobra.Command{
	Use:   "apply [document] [response]",
	Short: "Apply the edits of an assistant response to a document",
	Long: `Parses the tagged edits in the response and splices each one into the
document in order. Edits whose previous version cannot be located are
reported and skipped. The result goes to stdout unless --write is set.`,
	Args: cobra.ExactArgs(2),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().BoolVarP(&applyWrite, "write", "w", false, "rewrite the document file in place")
	applyCmd.Flags().BoolVar(&applyPatch, "patch", false, "print a unified patch instead of the document")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	if args[0] == "-" && applyWrite {
		return errors.New("--write needs a document file, not stdin")
	}

	original, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	response, err := readInput(cmd, args[1])
	if err != nil {
		return err
	}

	edits := newParser().Edits(response)
	if len(edits) == 0 {
		return errors.New("response contains no edits")
	}

	m := newMatcher(cmd)
	ctx := context.Background()
	content := original
	applied := 0
	for i, e := range edits {
		res, err := m.FindMatch(ctx, content, e.PreviousVersion, matchOptions())
		if err != nil {
			return fmt.Errorf("edit %d: %w", i+1, err)
		}
		if res == nil {
			cmd.PrintErrf("edit %d: previous version not found, skipped\n", i+1)
			continue
		}
		content = content[:res.Start] + e.NewFragment + content[res.End:]
		applied++
		cmd.PrintErrf("edit %d: applied at [%d, %d) via %s (%.2f)\n", i+1, res.Start, res.End, res.Method, res.Confidence)
	}

	if applied == 0 {
		return errors.New("no edits could be applied")
	}

	switch {
	case applyWrite:
		info, err := os.Stat(args[0])
		if err != nil {
			return err
		}
		if err := os.WriteFile(args[0], []byte(content), info.Mode().Perm()); err != nil {
			return fmt.Errorf("failed to write %s: %w", args[0], err)
		}
		cmd.Printf("Applied %d of %d edits to %s\n", applied, len(edits), args[0])
	case applyPatch:
		dmp := diffmatchpatch.New()
		cmd.Print(dmp.PatchToText(dmp.PatchMake(original, content)))
	default:
		cmd.Print(content)
	}
	return nil
}
