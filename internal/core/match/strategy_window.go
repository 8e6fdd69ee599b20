package match

import (
	"context"
	"unicode/utf8"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
)

const (
	minFragmentWords = 3
	minWordWindow    = 500
	minChunkWindow   = 200
	chunkScale       = 0.8
	chunkOverlap     = 0.2
)

// wordWindowStrategy slides a wide character window over the document,
// keeps the window sharing the most words with the fragment, then searches
// inside it for the best token span.
type wordWindowStrategy struct{}

func (wordWindowStrategy) method() domain.MatchMethod { return domain.MethodWordWindow }

func (wordWindowStrategy) find(ctx context.Context, doc *text, fragment string, minSim float64) *domain.MatchCandidate {
	fragWords := Words(fragment)
	if len(fragWords) < minFragmentWords {
		return nil
	}
	fragRunes := utf8.RuneCountInString(fragment)
	window := max(fragRunes, minWordWindow)
	step := max(1, window/10)
	n := doc.runes()

	best, bestPos := 0.0, -1
	for pos := 0; pos < n; pos += step {
		if ctx.Err() != nil {
			return nil
		}
		end := min(pos+window, n)
		score := WordOverlap(fragWords, Words(doc.slice(pos, end)))
		if score > best {
			best, bestPos = score, pos
		}
		if end == n {
			break
		}
	}
	if bestPos < 0 || best < minSim {
		return nil
	}

	from := doc.byteAt(bestPos - fragRunes)
	to := doc.byteAt(bestPos + window + fragRunes)
	tokens := tokenize(doc.s[from:to])
	for i := range tokens {
		tokens[i].start += from
		tokens[i].end += from
	}

	c := bestTokenSpan(tokens, fragWords)
	if c == nil || c.Similarity < minSim {
		return nil
	}
	c.Method = domain.MethodWordWindow
	return c
}

// bestTokenSpan scores every run of n-δ, n and n+δ tokens against the
// fragment words with WordSetSimilarity and returns the best one.
func bestTokenSpan(tokens []token, fragWords []string) *domain.MatchCandidate {
	n := len(fragWords)
	delta := max(1, n/10)
	fragSet := wordSet(fragWords)

	var best *domain.MatchCandidate
	for _, length := range []int{n, n - delta, n + delta} {
		if length < 1 || length > len(tokens) {
			continue
		}
		s := newSpanScorer(fragWords, fragSet, tokens, length)
		for i := 0; ; i++ {
			score := s.score(i)
			if best == nil || score > best.Similarity {
				best = &domain.MatchCandidate{
					Start:      tokens[i].start,
					End:        tokens[i+length-1].end,
					Similarity: score,
				}
			}
			if i+length == len(tokens) {
				break
			}
			s.slide(i)
		}
	}
	return best
}

// spanScorer keeps word counts for a fixed-length run of tokens so the set
// part of WordSetSimilarity updates in constant time per step.
type spanScorer struct {
	frag     []string
	fragSet  map[string]struct{}
	tokens   []token
	length   int
	counts   map[string]int
	distinct int
	shared   int
}

func newSpanScorer(frag []string, fragSet map[string]struct{}, tokens []token, length int) *spanScorer {
	s := &spanScorer{
		frag:    frag,
		fragSet: fragSet,
		tokens:  tokens,
		length:  length,
		counts:  make(map[string]int, length),
	}
	for _, t := range tokens[:length] {
		s.add(t.word)
	}
	return s
}

func (s *spanScorer) add(w string) {
	s.counts[w]++
	if s.counts[w] == 1 {
		s.distinct++
		if _, ok := s.fragSet[w]; ok {
			s.shared++
		}
	}
}

func (s *spanScorer) remove(w string) {
	s.counts[w]--
	if s.counts[w] == 0 {
		delete(s.counts, w)
		s.distinct--
		if _, ok := s.fragSet[w]; ok {
			s.shared--
		}
	}
}

// slide moves the run starting at i one token to the right
func (s *spanScorer) slide(i int) {
	s.remove(s.tokens[i].word)
	s.add(s.tokens[i+s.length].word)
}

// score evaluates the run starting at i
func (s *spanScorer) score(i int) float64 {
	union := len(s.fragSet) + s.distinct - s.shared
	jaccard := float64(s.shared) / float64(union)

	same := 0
	for k := 0; k < min(len(s.frag), s.length); k++ {
		if s.frag[k] == s.tokens[i+k].word {
			same++
		}
	}
	order := float64(same) / float64(max(len(s.frag), s.length))
	return jaccardWeight*jaccard + orderWeight*order
}

// chunkWindowStrategy compares overlapping fixed-size chunks with the
// fragment by content similarity.
type chunkWindowStrategy struct{}

func (chunkWindowStrategy) method() domain.MatchMethod { return domain.MethodChunkWindow }

func (chunkWindowStrategy) find(ctx context.Context, doc *text, fragment string, minSim float64) *domain.MatchCandidate {
	fragRunes := utf8.RuneCountInString(fragment)
	window := max(minChunkWindow, int(chunkScale*float64(fragRunes)))
	step := max(1, int(float64(window)*(1-chunkOverlap)))
	n := doc.runes()
	scorer := newContentScorer(fragment)

	best, bestPos, bestEnd := -1.0, -1, 0
	for pos := 0; pos < n; pos += step {
		if ctx.Err() != nil {
			return nil
		}
		end := min(pos+window, n)
		if score := scorer.score(doc.slice(pos, end), best, minSim); score > best {
			best, bestPos, bestEnd = score, pos, end
		}
		if end == n {
			break
		}
	}
	if bestPos < 0 || best < minSim {
		return nil
	}
	return &domain.MatchCandidate{
		Start:      doc.byteAt(bestPos),
		End:        doc.byteAt(bestEnd),
		Similarity: best,
		Method:     domain.MethodChunkWindow,
	}
}
