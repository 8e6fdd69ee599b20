package domain

import "testing"

func TestMatchCandidateLen(t *testing.T) {
	c := &MatchCandidate{Start: 4, End: 10}
	if c.Len() != 6 {
		t.Errorf("expected length 6, got %d", c.Len())
	}
	if c.IsDegenerate() {
		t.Error("non-empty span should not be degenerate")
	}

	empty := &MatchCandidate{Start: 7, End: 7}
	if !empty.IsDegenerate() {
		t.Error("empty span should be degenerate")
	}
}

func TestMatchOptionsWithDefaults(t *testing.T) {
	opts := MatchOptions{}.WithDefaults()
	if opts.MinSimilarity != DefaultMinSimilarity {
		t.Errorf("expected default %v, got %v", DefaultMinSimilarity, opts.MinSimilarity)
	}

	custom := MatchOptions{MinSimilarity: 0.5}.WithDefaults()
	if custom.MinSimilarity != 0.5 {
		t.Errorf("expected custom threshold to be kept, got %v", custom.MinSimilarity)
	}
}
