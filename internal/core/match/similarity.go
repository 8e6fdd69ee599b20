package match

// Weights of the two components of WordSetSimilarity
const (
	jaccardWeight = 0.7
	orderWeight   = 0.3
)

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func intersectionSize(a, b map[string]struct{}) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	n := 0
	for w := range a {
		if _, ok := b[w]; ok {
			n++
		}
	}
	return n
}

// orderRatio is the share of positions holding the same word, over the
// longer sequence.
func orderRatio(a, b []string) float64 {
	longer := max(len(a), len(b))
	if longer == 0 {
		return 0
	}
	same := 0
	for i := 0; i < min(len(a), len(b)); i++ {
		if a[i] == b[i] {
			same++
		}
	}
	return float64(same) / float64(longer)
}

// WordSetSimilarity combines the Jaccard index of the two word sets with the
// positional agreement of the sequences. Returns 0 if either side is empty.
func WordSetSimilarity(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA, setB := wordSet(a), wordSet(b)
	inter := intersectionSize(setA, setB)
	union := len(setA) + len(setB) - inter
	jaccard := float64(inter) / float64(union)
	return jaccardWeight*jaccard + orderWeight*orderRatio(a, b)
}

// WordOverlap is the intersection of the word sets over the smaller set.
// A side that contains every word of the other scores 1.
func WordOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA, setB := wordSet(a), wordSet(b)
	return float64(intersectionSize(setA, setB)) / float64(min(len(setA), len(setB)))
}

// CharOverlap matches each rune of a with the first unused equal rune of b
// and returns matches over the longer length in runes.
func CharOverlap(a, b string) float64 {
	return charOverlapRunes([]rune(a), []rune(b))
}

// charOverlapRunes counts greedy one-to-one matches. Greedy first-unused
// matching pairs min(countA, countB) occurrences of every rune, so a count
// table gives the same result.
func charOverlapRunes(a, b []rune) float64 {
	longer := max(len(a), len(b))
	if longer == 0 {
		return 0
	}
	avail := make(map[rune]int, len(b))
	for _, r := range b {
		avail[r]++
	}
	matches := 0
	for _, r := range a {
		if avail[r] > 0 {
			avail[r]--
			matches++
		}
	}
	return float64(matches) / float64(longer)
}

// LCSRatio is the longest common subsequence length over the longer input,
// both measured in runes.
func LCSRatio(a, b string) float64 {
	return lcsRatioRunes([]rune(a), []rune(b))
}

func lcsRatioRunes(a, b []rune) float64 {
	longer := max(len(a), len(b))
	if longer == 0 {
		return 0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) > len(a) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return float64(prev[len(b)]) / float64(longer)
}

// ContentSimilarity compares the word-level forms of a and b by LCS ratio
func ContentSimilarity(a, b string) float64 {
	return lcsRatioRunes([]rune(Normalize(a, LevelWord)), []rune(Normalize(b, LevelWord)))
}

// contentScorer scores many candidates against one fixed fragment, skipping
// the LCS when the rune overlap bound cannot beat the current best.
type contentScorer struct {
	fragment []rune
}

func newContentScorer(fragment string) *contentScorer {
	return &contentScorer{fragment: []rune(Normalize(fragment, LevelWord))}
}

// score returns the content similarity of candidate, or -1 when it is known
// to fall below minSim or not to exceed best.
func (c *contentScorer) score(candidate string, best, minSim float64) float64 {
	r := []rune(Normalize(candidate, LevelWord))
	bound := charOverlapRunes(r, c.fragment)
	if bound < minSim || bound <= best {
		return -1
	}
	return lcsRatioRunes(r, c.fragment)
}
