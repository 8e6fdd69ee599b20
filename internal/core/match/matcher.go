package match

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
)

// normalizationConfidence scales the length agreement of a normalisation hit
const normalizationConfidence = 0.9

// Matcher relocates fragments in documents. It holds no per-call state and
// is safe for concurrent use.
type Matcher struct {
	logger     *slog.Logger
	strategies []strategy
}

// Option configures a Matcher
type Option func(*Matcher)

// WithLogger sets the logger used for per-strategy debug traces
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates a Matcher
func New(opts ...Option) *Matcher {
	m := &Matcher{
		logger: slog.Default(),
		strategies: []strategy{
			exactStrategy{},
			wordWindowStrategy{},
			chunkWindowStrategy{},
			sentenceStrategy{},
			normalizationStrategy{},
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var defaultMatcher = New()

// FindPreviousVersionMatch locates fragment in doc with a default Matcher.
// A nil result with a nil error means no confident location was found.
func FindPreviousVersionMatch(doc, fragment string, opts domain.MatchOptions) (*domain.MatchResult, error) {
	return defaultMatcher.FindMatch(context.Background(), doc, fragment, opts)
}

// FindMatch runs the strategies in order and returns the first refined,
// non-empty span. It returns (nil, nil) when nothing clears the threshold
// and an error wrapping domain.ErrInvalidInput for unusable input.
// Cancellation of ctx stops the running strategy and returns ctx.Err().
func (m *Matcher) FindMatch(ctx context.Context, doc, fragment string, opts domain.MatchOptions) (*domain.MatchResult, error) {
	opts = opts.WithDefaults()
	if err := validate(doc, fragment, opts); err != nil {
		return nil, err
	}

	t := newText(doc)
	for _, s := range m.strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c := s.find(ctx, t, fragment, opts.MinSimilarity)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if c == nil {
			m.logger.Debug("strategy found no candidate", "method", s.method())
			continue
		}

		if c.Method != domain.MethodExact {
			start, end := c.Start, c.End
			c.Start, c.End = refineStable(t, c.Start, c.End, fragment)
			m.logger.Debug("refined candidate",
				"method", c.Method,
				"similarity", c.Similarity,
				"raw_start", start, "raw_end", end,
				"start", c.Start, "end", c.End)
		}
		if c.IsDegenerate() {
			m.logger.Debug("discarding empty span", "method", c.Method)
			continue
		}
		return newResult(t, fragment, c), nil
	}
	return nil, nil
}

func validate(doc, fragment string, opts domain.MatchOptions) error {
	switch {
	case strings.TrimSpace(doc) == "":
		return fmt.Errorf("%w: document is empty", domain.ErrInvalidInput)
	case strings.TrimSpace(fragment) == "":
		return fmt.Errorf("%w: fragment is empty", domain.ErrInvalidInput)
	case !utf8.ValidString(doc):
		return fmt.Errorf("%w: document is not valid UTF-8", domain.ErrInvalidInput)
	case !utf8.ValidString(fragment):
		return fmt.Errorf("%w: fragment is not valid UTF-8", domain.ErrInvalidInput)
	case !(opts.MinSimilarity > 0 && opts.MinSimilarity <= 1):
		return fmt.Errorf("%w: min similarity %v outside (0, 1]", domain.ErrInvalidInput, opts.MinSimilarity)
	}
	return nil
}

func newResult(t *text, fragment string, c *domain.MatchCandidate) *domain.MatchResult {
	confidence := c.Similarity
	if c.Method == domain.MethodNormalization {
		got := float64(t.runeAt(c.End) - t.runeAt(c.Start))
		want := float64(utf8.RuneCountInString(fragment))
		confidence = normalizationConfidence * math.Min(got, want) / math.Max(got, want)
	}
	return &domain.MatchResult{
		MatchCandidate: *c,
		Confidence:     confidence,
		FoundText:      preview(t.s[c.Start:c.End]),
	}
}

func preview(s string) string {
	if utf8.RuneCountInString(s) <= domain.FoundTextPreviewRunes {
		return s
	}
	n := 0
	for i := range s {
		if n == domain.FoundTextPreviewRunes {
			return s[:i]
		}
		n++
	}
	return s
}
