package match

import (
	"context"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
)

// normalizationStrategy searches the fully normalised fragment inside the
// fully normalised document and scales the hit back by the length ratio.
// The mapping assumes stripped characters are spread evenly.
type normalizationStrategy struct{}

func (normalizationStrategy) method() domain.MatchMethod { return domain.MethodNormalization }

func (normalizationStrategy) find(_ context.Context, doc *text, fragment string, _ float64) *domain.MatchCandidate {
	normFrag := Normalize(fragment, LevelAggressive)
	if normFrag == "" {
		return nil
	}
	normDoc := Normalize(doc.s, LevelAggressive)
	i := strings.Index(normDoc, normFrag)
	if i < 0 {
		return nil
	}

	normRunes := utf8.RuneCountInString(normDoc)
	ratio := float64(doc.runes()) / float64(normRunes)
	from := utf8.RuneCountInString(normDoc[:i])
	to := from + utf8.RuneCountInString(normFrag)

	start := int(float64(from) * ratio)
	end := int(math.Ceil(float64(to) * ratio))
	return &domain.MatchCandidate{
		Start:      doc.byteAt(start),
		End:        doc.byteAt(end),
		Similarity: 1,
		Method:     domain.MethodNormalization,
	}
}
