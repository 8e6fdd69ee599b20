package match

import (
	"context"
	"strings"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
)

// strategy proposes a span of doc resembling fragment, or nil. Scanning
// strategies stop early with nil once ctx is done.
type strategy interface {
	method() domain.MatchMethod
	find(ctx context.Context, doc *text, fragment string, minSim float64) *domain.MatchCandidate
}

// exactStrategy finds verbatim occurrences, first as given, then trimmed,
// then ignoring case and whitespace differences. Its spans are final.
type exactStrategy struct{}

func (exactStrategy) method() domain.MatchMethod { return domain.MethodExact }

func (exactStrategy) find(_ context.Context, doc *text, fragment string, _ float64) *domain.MatchCandidate {
	if i := strings.Index(doc.s, fragment); i >= 0 {
		return exactCandidate(i, i+len(fragment))
	}

	trimmed := strings.TrimSpace(fragment)
	if trimmed == "" {
		return nil
	}
	if trimmed != fragment {
		if i := strings.Index(doc.s, trimmed); i >= 0 {
			return exactCandidate(i, i+len(trimmed))
		}
	}

	folded := fold(doc.s)
	needle := fold(trimmed).s
	i := strings.Index(folded.s, needle)
	if i < 0 {
		return nil
	}
	start, end, ok := folded.originalSpan(i, i+len(needle))
	if !ok {
		return nil
	}
	return exactCandidate(start, end)
}

func exactCandidate(start, end int) *domain.MatchCandidate {
	return &domain.MatchCandidate{
		Start:      start,
		End:        end,
		Similarity: 1,
		Method:     domain.MethodExact,
	}
}
