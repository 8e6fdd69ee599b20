package match

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// text indexes a string by rune so heuristics can count in runes while
// reporting byte offsets.
type text struct {
	s    string
	offs []int // byte offset of each rune, plus len(s)
}

func newText(s string) *text {
	offs := make([]int, 0, utf8.RuneCountInString(s)+1)
	for i := range s {
		offs = append(offs, i)
	}
	offs = append(offs, len(s))
	return &text{s: s, offs: offs}
}

// runes returns the rune count
func (t *text) runes() int {
	return len(t.offs) - 1
}

// byteAt converts a rune index to a byte offset, clamping out-of-range values
func (t *text) byteAt(r int) int {
	if r <= 0 {
		return 0
	}
	if r >= len(t.offs) {
		return len(t.s)
	}
	return t.offs[r]
}

// runeAt converts a byte offset to a rune index. Offsets inside a rune
// resolve to the following rune.
func (t *text) runeAt(b int) int {
	if b <= 0 {
		return 0
	}
	if b >= len(t.s) {
		return t.runes()
	}
	return sort.SearchInts(t.offs, b)
}

// snap moves a byte offset forward to the nearest rune boundary
func (t *text) snap(b int) int {
	return t.byteAt(t.runeAt(b))
}

// slice returns the runes in [from, to)
func (t *text) slice(from, to int) string {
	return t.s[t.byteAt(from):t.byteAt(to)]
}

// lineStart returns the byte offset of the line containing b
func (t *text) lineStart(b int) int {
	return strings.LastIndexByte(t.s[:b], '\n') + 1
}

// line returns the line starting at b without its newline
func (t *text) line(b int) string {
	rest := t.s[b:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		return rest[:i]
	}
	return rest
}

// isLineStart reports whether b begins a line
func (t *text) isLineStart(b int) bool {
	return b == 0 || (b > 0 && b <= len(t.s) && t.s[b-1] == '\n')
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// sentence is a trimmed sentence with its byte span in the source
type sentence struct {
	text       string
	start, end int
}

// splitSentences cuts s after every run of terminators. Text after the last
// terminator forms a final sentence. Sentences shorter than minRunes after
// trimming are dropped.
func splitSentences(s string, minRunes int) []sentence {
	var out []sentence
	emit := func(from, to int) {
		for from < to {
			r, size := utf8.DecodeRuneInString(s[from:])
			if !unicode.IsSpace(r) {
				break
			}
			from += size
		}
		for to > from {
			r, size := utf8.DecodeLastRuneInString(s[:to])
			if !unicode.IsSpace(r) {
				break
			}
			to -= size
		}
		if from >= to || utf8.RuneCountInString(s[from:to]) < minRunes {
			return
		}
		out = append(out, sentence{text: s[from:to], start: from, end: to})
	}

	begin := 0
	inTerminators := false
	for i, r := range s {
		if isTerminator(r) {
			inTerminators = true
			continue
		}
		if inTerminators {
			emit(begin, i)
			begin = i
			inTerminators = false
		}
	}
	emit(begin, len(s))
	return out
}

func joinSentences(ss []sentence) string {
	parts := make([]string, len(ss))
	for i, s := range ss {
		parts[i] = s.text
	}
	return strings.Join(parts, " ")
}
