package domain

// MatchMethod identifies the search strategy that produced a span
type MatchMethod string

const (
	MethodExact         MatchMethod = "exact"
	MethodWordWindow    MatchMethod = "word_window"
	MethodChunkWindow   MatchMethod = "chunk_window"
	MethodSentence      MatchMethod = "sentence"
	MethodNormalization MatchMethod = "normalization"
)

// DefaultMinSimilarity is the acceptance threshold used when none is given
const DefaultMinSimilarity = 0.7

// FoundTextPreviewRunes bounds the length of MatchResult.FoundText
const FoundTextPreviewRunes = 200

// MatchCandidate is a span proposed by one search strategy.
// Start and End are byte offsets into the original document, Start <= End.
type MatchCandidate struct {
	Start      int         `json:"start"`
	End        int         `json:"end"`
	Similarity float64     `json:"similarity"`
	Method     MatchMethod `json:"method"`
}

// Len returns the span length in bytes
func (c *MatchCandidate) Len() int {
	return c.End - c.Start
}

// IsDegenerate reports whether the span is empty
func (c *MatchCandidate) IsDegenerate() bool {
	return c.Start == c.End
}

// MatchResult is the externally visible outcome of a relocation
type MatchResult struct {
	MatchCandidate
	Confidence float64 `json:"confidence"`
	FoundText  string  `json:"found_text,omitempty"`
}

// MatchOptions tunes a single relocation
type MatchOptions struct {
	MinSimilarity float64 `json:"min_similarity,omitempty" validate:"omitempty,gt=0,lte=1"`
}

// WithDefaults returns a copy with zero fields replaced by defaults
func (o MatchOptions) WithDefaults() MatchOptions {
	if o.MinSimilarity == 0 {
		o.MinSimilarity = DefaultMinSimilarity
	}
	return o
}
