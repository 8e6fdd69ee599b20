package match

import (
	"context"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
)

const (
	minDocSentenceRunes      = 20
	minFragmentSentenceRunes = 10
)

// sentenceStrategy slides a run of consecutive document sentences, as many
// as the fragment has, and compares the joined text with the fragment.
type sentenceStrategy struct{}

func (sentenceStrategy) method() domain.MatchMethod { return domain.MethodSentence }

func (sentenceStrategy) find(ctx context.Context, doc *text, fragment string, minSim float64) *domain.MatchCandidate {
	fragSentences := splitSentences(fragment, minFragmentSentenceRunes)
	docSentences := splitSentences(doc.s, minDocSentenceRunes)
	k := len(fragSentences)
	if k == 0 || len(docSentences) < k {
		return nil
	}
	scorer := newContentScorer(joinSentences(fragSentences))

	best, bestIdx := -1.0, -1
	for i := 0; i+k <= len(docSentences); i++ {
		if ctx.Err() != nil {
			return nil
		}
		if score := scorer.score(joinSentences(docSentences[i:i+k]), best, minSim); score > best {
			best, bestIdx = score, i
		}
	}
	if bestIdx < 0 || best < minSim {
		return nil
	}
	return &domain.MatchCandidate{
		Start:      docSentences[bestIdx].start,
		End:        docSentences[bestIdx+k-1].end,
		Similarity: best,
		Method:     domain.MethodSentence,
	}
}
