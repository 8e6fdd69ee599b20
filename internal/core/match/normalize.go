package match

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Level selects how much of the input survives normalisation
type Level int

const (
	// LevelWord keeps words separated by single spaces
	LevelWord Level = iota
	// LevelChar keeps only word characters
	LevelChar
	// LevelAggressive is LevelChar under the name used by the last-resort strategy
	LevelAggressive
)

// String returns the level name
func (l Level) String() string {
	switch l {
	case LevelWord:
		return "word"
	case LevelChar:
		return "char"
	case LevelAggressive:
		return "aggressive"
	default:
		return "unknown"
	}
}

// isWordRune reports whether r is a Latin or Cyrillic letter, an ASCII digit
// or an underscore. Nonspacing marks count so decomposed letters stay whole.
func isWordRune(r rune) bool {
	switch {
	case r == '_':
		return true
	case r >= '0' && r <= '9':
		return true
	case unicode.Is(unicode.Mn, r):
		return true
	case unicode.IsLetter(r):
		return unicode.Is(unicode.Latin, r) || unicode.Is(unicode.Cyrillic, r)
	}
	return false
}

// Normalize returns a comparable form of text. It never fails and maps the
// empty string to the empty string.
func Normalize(text string, level Level) string {
	if text == "" {
		return ""
	}
	s := strings.ToLower(norm.NFC.String(text))

	var b strings.Builder
	b.Grow(len(s))

	if level == LevelWord {
		gap := false
		for _, r := range s {
			if !isWordRune(r) {
				gap = true
				continue
			}
			if gap && b.Len() > 0 {
				b.WriteByte(' ')
			}
			gap = false
			b.WriteRune(r)
		}
		return b.String()
	}

	for _, r := range s {
		if isWordRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Words splits the word-level form of text into words
func Words(text string) []string {
	n := Normalize(text, LevelWord)
	if n == "" {
		return nil
	}
	return strings.Split(n, " ")
}

// token is a word-level token with its byte span in the original text
type token struct {
	word       string
	start, end int
}

// tokenize splits text into word tokens, keeping byte offsets into text.
// Token boundaries agree with Words for NFC input.
func tokenize(text string) []token {
	var tokens []token
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		tokens = append(tokens, token{
			word:  strings.ToLower(norm.NFC.String(text[start:end])),
			start: start,
			end:   end,
		})
		start = -1
	}
	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(text))
	return tokens
}

// foldedText is a lowercased, whitespace-collapsed copy of a string that
// remembers where each of its runes came from.
type foldedText struct {
	s      string
	starts []int // byte offset in s of each folded rune
	orig   []span
}

type span struct{ start, end int }

// fold lowercases s rune by rune, turns runs of whitespace into one space and
// drops leading and trailing whitespace.
func fold(s string) *foldedText {
	f := &foldedText{}
	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := -1
	for i, r := range s {
		_, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsSpace(r) {
			if pendingSpace < 0 {
				pendingSpace = i
			}
			continue
		}
		if pendingSpace >= 0 && b.Len() > 0 {
			f.starts = append(f.starts, b.Len())
			f.orig = append(f.orig, span{pendingSpace, i})
			b.WriteByte(' ')
		}
		pendingSpace = -1
		f.starts = append(f.starts, b.Len())
		f.orig = append(f.orig, span{i, i + size})
		b.WriteRune(unicode.ToLower(r))
	}
	f.s = b.String()
	return f
}

// originalSpan maps a byte range of the folded string back to the source.
// from must start a folded rune and to must end one.
func (f *foldedText) originalSpan(from, to int) (int, int, bool) {
	first := sort.SearchInts(f.starts, from)
	last := sort.SearchInts(f.starts, to) - 1
	if first >= len(f.starts) || f.starts[first] != from || last < first {
		return 0, 0, false
	}
	return f.orig[first].start, f.orig[last].end, true
}
