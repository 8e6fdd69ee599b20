// Package cli implements the scenaria-relocate command line, which runs the
// relocation engine and response parser against local files.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
	"github.com/custodia-labs/scenaria-core/internal/core/match"
	"github.com/custodia-labs/scenaria-core/internal/core/segments"
)

var version = "dev"

var (
	minSimilarity float64
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "scenaria-relocate",
	Short: "Relocate edited fragments in screenplay documents",
	Long: `scenaria-relocate finds where a previous version of a fragment sits in a
document, even after whitespace, punctuation and wording drift, and applies
tagged assistant edits to local files.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.Execute()
}

// SetVersion sets the version reported by the version command
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().Float64Var(&minSimilarity, "min-similarity", domain.DefaultMinSimilarity,
		"acceptance threshold in (0, 1]")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log strategy traces to stderr")
}

// newMatcher builds a matcher that logs to the command's error stream
func newMatcher(cmd *cobra.Command) *match.Matcher {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return match.New(match.WithLogger(logger))
}

func newParser() *segments.Parser {
	return segments.NewParser(segments.DefaultTags)
}

func matchOptions() domain.MatchOptions {
	return domain.MatchOptions{MinSimilarity: minSimilarity}
}

// readInput reads a file, or the command's stdin when path is "-"
func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
