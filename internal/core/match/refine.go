package match

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	startLookBehind = 300
	sectionReach    = 200
	nameReach       = 100
	endLookAhead    = 500
	terminatorReach = 100
	maxGrowth       = 2.5
	refinePad       = 50
	refinePasses    = 4
)

var (
	headerLine    = regexp.MustCompile(`^#{1,6}\s`)
	sectionHeader = regexp.MustCompile(`^##\s`)
	nameHeading   = regexp.MustCompile(`^###\s+[A-ZА-ЯЁ][A-ZА-ЯЁ\s.\-]*$`)
)

func lineMatches(re *regexp.Regexp, line string) bool {
	return re.MatchString(strings.TrimRight(line, "\r"))
}

// Refine aligns an approximate span of doc with surrounding structure.
// The start moves back to a nearby section header or character heading, the
// end moves forward to the next header or sentence end. When that grows the
// span past 2.5 times the fragment length, the refinement is discarded and
// the input is padded to the fragment length plus 50 runes on each side,
// never past the refined bounds. A span already that wide is kept. The pass
// repeats until the span stops moving, so a refined span refines to itself.
// An input with start >= end is returned unchanged.
func Refine(doc string, start, end int, fragment string) (int, int) {
	return refineStable(newText(doc), start, end, fragment)
}

// refineStable applies refineSpan until it reaches a fixed point or
// refinePasses runs out.
func refineStable(t *text, start, end int, fragment string) (int, int) {
	s, e := start, end
	for range refinePasses {
		ns, ne := refineSpan(t, s, e, fragment)
		if ns == s && ne == e {
			break
		}
		s, e = ns, ne
	}
	return s, e
}

func refineSpan(t *text, start, end int, fragment string) (int, int) {
	s0, e0 := t.snap(start), t.snap(end)
	if s0 >= e0 {
		return start, end
	}

	s, e := refineStart(t, s0), refineEnd(t, e0)

	fragRunes := utf8.RuneCountInString(fragment)
	if float64(t.runeAt(e)-t.runeAt(s)) > maxGrowth*float64(fragRunes) {
		s, e = padSpan(t, s0, e0, s, e, fragRunes)
	}

	if s < 0 || e > len(t.s) || s >= e {
		return start, end
	}
	return s, e
}

// padSpan grows [start, end) to fragRunes plus refinePad runes on each side,
// staying inside [lo, hi]. Growth blocked on one side goes to the other.
// A span already that wide is returned unchanged.
func padSpan(t *text, start, end, lo, hi, fragRunes int) (int, int) {
	rs, re := t.runeAt(start), t.runeAt(end)
	need := fragRunes + 2*refinePad - (re - rs)
	if need <= 0 {
		return start, end
	}

	rlo, rhi := t.runeAt(lo), t.runeAt(hi)
	ns := max(rlo, rs-need/2)
	ne := min(rhi, re+need-(rs-ns))
	ns = max(rlo, ns-(need-(rs-ns)-(ne-re)))
	return t.byteAt(ns), t.byteAt(ne)
}

// refineStart returns the line start of the nearest section header within
// reach, else of the nearest character heading within reach, else start.
func refineStart(t *text, start int) int {
	if t.isLineStart(start) && lineMatches(headerLine, t.line(start)) {
		return start
	}

	sr := t.runeAt(start)
	floor := t.byteAt(sr - startLookBehind)
	section, name := -1, -1
	for p := t.lineStart(start); p >= floor; p = t.lineStart(p - 1) {
		dist := sr - t.runeAt(p)
		line := t.line(p)
		if section < 0 && dist <= sectionReach && lineMatches(sectionHeader, line) {
			section = p
		}
		if name < 0 && dist <= nameReach && lineMatches(nameHeading, line) {
			name = p
		}
		if p == 0 {
			break
		}
	}

	switch {
	case section >= 0:
		return section
	case name >= 0:
		return name
	default:
		return start
	}
}

// refineEnd returns the end of the text before the next header within
// reach, else the position after a nearby sentence end, else end.
func refineEnd(t *text, end int) int {
	n := len(t.s)
	if end >= n {
		return end
	}
	if t.isLineStart(end) && lineMatches(headerLine, t.line(end)) {
		return end
	}
	if r, _ := utf8.DecodeLastRuneInString(t.s[:end]); end > 0 && isTerminator(r) {
		return end
	}

	er := t.runeAt(end)
	limit := t.byteAt(er + endLookAhead)
	for p := end; p <= limit && p < n; {
		if t.isLineStart(p) && lineMatches(headerLine, t.line(p)) {
			return trimSpaceBack(t.s, end, p)
		}
		i := strings.IndexByte(t.s[p:], '\n')
		if i < 0 {
			break
		}
		p += i + 1
	}

	reach := t.byteAt(er + terminatorReach)
	for i, r := range t.s[end:reach] {
		if !isTerminator(r) {
			continue
		}
		after := end + i + utf8.RuneLen(r)
		if after == n || t.s[after] == '\n' {
			return after
		}
	}
	return end
}

// trimSpaceBack moves p back over whitespace, never below floor
func trimSpaceBack(s string, floor, p int) int {
	for p > floor {
		r, size := utf8.DecodeLastRuneInString(s[:p])
		if !unicode.IsSpace(r) {
			break
		}
		p -= size
	}
	return p
}
