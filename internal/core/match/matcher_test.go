package match

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
)

func newTestMatcher() *Matcher {
	return New(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestFindMatchExactScenario(t *testing.T) {
	doc := "## Scene 1\nJohn enters the room.\n\n## Scene 2\nMary leaves."
	frag := "John enters the room."

	res, err := newTestMatcher().FindMatch(context.Background(), doc, frag, domain.MatchOptions{})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.LessOrEqual(t, res.Start, strings.Index(doc, "John"))
	assert.GreaterOrEqual(t, res.End, strings.Index(doc, "room.")+len("room."))
	assert.Equal(t, domain.MethodExact, res.Method)
	assert.GreaterOrEqual(t, res.Confidence, 0.95)
	assert.Equal(t, frag, res.FoundText)
}

func TestFindMatchNormalizedSubstring(t *testing.T) {
	doc := "INT. HOUSE - DAY\n\nAnna  Opens the\nwindow.\nWind blows in."
	frags := []string{
		"anna opens the window.",
		"ANNA OPENS THE WINDOW.",
		"  Anna opens\tthe window.\n",
		"Wind blows in.",
	}

	m := newTestMatcher()
	for _, frag := range frags {
		t.Run(frag, func(t *testing.T) {
			res, err := m.FindMatch(context.Background(), doc, frag, domain.MatchOptions{})
			require.NoError(t, err)
			require.NotNil(t, res)
			assert.Equal(t, Normalize(frag, LevelAggressive), Normalize(doc[res.Start:res.End], LevelAggressive))
			assert.GreaterOrEqual(t, res.Confidence, 0.95)
		})
	}
}

func TestFindMatchReorderedUsesWordWindow(t *testing.T) {
	res, err := newTestMatcher().FindMatch(context.Background(), libraryDrifted, libraryOriginal, domain.MatchOptions{})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, domain.MethodWordWindow, res.Method)
	assert.GreaterOrEqual(t, res.Similarity, 0.7)
	assert.Less(t, res.Similarity, 1.0)
	assert.Equal(t, res.Similarity, res.Confidence)
	assert.Equal(t, libraryDrifted, libraryDrifted[res.Start:res.End])
}

func TestFindMatchNormalizationFallback(t *testing.T) {
	doc := "Call me at 555-12-34 tomorrow, please."
	res, err := newTestMatcher().FindMatch(context.Background(), doc, "555 1234", domain.MatchOptions{})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, domain.MethodNormalization, res.Method)
	assert.Contains(t, doc[res.Start:res.End], "555-12-34")
	assert.Greater(t, res.Confidence, 0.0)
	assert.Less(t, res.Confidence, normalizationConfidence)
}

func TestFindMatchUnrelatedReturnsNil(t *testing.T) {
	docs := []string{
		"## Scene 1\nJohn enters the room.\n\n## Scene 2\nMary leaves.",
		screenplay,
		libraryDrifted,
	}
	for _, doc := range docs {
		res, err := newTestMatcher().FindMatch(context.Background(), doc,
			"completely unrelated text not in document at all", domain.MatchOptions{})
		require.NoError(t, err)
		assert.Nil(t, res)
	}
}

func TestFindMatchInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		fragment string
		minSim   float64
	}{
		{"empty document", "", "John", 0},
		{"blank document", " \n\t", "John", 0},
		{"empty fragment", "John enters.", "", 0},
		{"blank fragment", "John enters.", "   ", 0},
		{"invalid utf8", "John \xff enters.", "John", 0},
		{"threshold above one", "John enters.", "John", 1.5},
		{"negative threshold", "John enters.", "John", -0.2},
	}

	m := newTestMatcher()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := m.FindMatch(context.Background(), tt.doc, tt.fragment, domain.MatchOptions{MinSimilarity: tt.minSim})
			assert.Nil(t, res)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "expected ErrInvalidInput, got %v", err)
		})
	}
}

func TestFindMatchHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := newTestMatcher().FindMatch(ctx, screenplay, "John enters the room.", domain.MatchOptions{})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
}

// cancellingStrategy cancels the search while it runs and still reports a hit
type cancellingStrategy struct{ cancel context.CancelFunc }

func (cancellingStrategy) method() domain.MatchMethod { return domain.MethodChunkWindow }

func (s cancellingStrategy) find(_ context.Context, doc *text, _ string, _ float64) *domain.MatchCandidate {
	s.cancel()
	return &domain.MatchCandidate{Start: 0, End: len(doc.s), Similarity: 1, Method: domain.MethodChunkWindow}
}

func TestFindMatchStopsWhenCancelledInsideStrategy(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := newTestMatcher()
	m.strategies = []strategy{cancellingStrategy{cancel: cancel}, exactStrategy{}}

	res, err := m.FindMatch(ctx, screenplay, "John enters the room.", domain.MatchOptions{})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFindMatchBoundsAreValid(t *testing.T) {
	frags := []string{
		"John enters the room. He looks around.",
		"Mary waves at him",
		"they leave together",
		"John enters the hall and looks around",
		"scene 2 they leave",
	}
	m := newTestMatcher()
	for _, frag := range frags {
		res, err := m.FindMatch(context.Background(), screenplay, frag, domain.MatchOptions{MinSimilarity: 0.5})
		require.NoError(t, err)
		if res == nil {
			continue
		}
		assert.LessOrEqual(t, 0, res.Start, frag)
		assert.Less(t, res.Start, res.End, frag)
		assert.LessOrEqual(t, res.End, len(screenplay), frag)
		assert.True(t, utf8.ValidString(screenplay[res.Start:res.End]), frag)
	}
}

func TestFindMatchFoundTextPreview(t *testing.T) {
	frag := strings.Repeat("ж", 300)
	doc := "## Scene\n" + frag + "\nEnd."

	res, err := newTestMatcher().FindMatch(context.Background(), doc, frag, domain.MatchOptions{})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, domain.FoundTextPreviewRunes, utf8.RuneCountInString(res.FoundText))
	assert.Equal(t, len(frag), res.Len())
}

func TestFindMatchConcurrentUse(t *testing.T) {
	m := newTestMatcher()
	want, err := m.FindMatch(context.Background(), libraryDrifted, libraryOriginal, domain.MatchOptions{})
	require.NoError(t, err)
	require.NotNil(t, want)

	var wg sync.WaitGroup
	results := make([]*domain.MatchResult, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = m.FindMatch(context.Background(), libraryDrifted, libraryOriginal, domain.MatchOptions{})
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestFindPreviousVersionMatch(t *testing.T) {
	res, err := FindPreviousVersionMatch(screenplay, "Mary waves at him.", domain.MatchOptions{})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "Mary waves at him.", screenplay[res.Start:res.End])
}

func TestFindPreviousVersionMatchPassesOptions(t *testing.T) {
	res, err := FindPreviousVersionMatch(screenplay, "Mary waves at him.", domain.MatchOptions{MinSimilarity: 1.5})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
