// Package segments splits tagged assistant responses into prose and
// proposed edits.
package segments

import (
	"strings"
	"unicode"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
)

// Tags lists the accepted names of each tag, without angle brackets
type Tags struct {
	Editing         []string
	PreviousVersion []string
	NewFragment     []string
}

// DefaultTags accepts the English tag names and their Russian equivalents
var DefaultTags = Tags{
	Editing:         []string{"editing", "редактирование"},
	PreviousVersion: []string{"previous_version", "предыдущая_версия"},
	NewFragment:     []string{"new_fragment", "новый_фрагмент"},
}

// Parser splits responses using a fixed tag set
type Parser struct {
	tags Tags
}

// NewParser creates a parser. Empty tag lists fall back to DefaultTags.
func NewParser(tags Tags) *Parser {
	if len(tags.Editing) == 0 {
		tags.Editing = DefaultTags.Editing
	}
	if len(tags.PreviousVersion) == 0 {
		tags.PreviousVersion = DefaultTags.PreviousVersion
	}
	if len(tags.NewFragment) == 0 {
		tags.NewFragment = DefaultTags.NewFragment
	}
	return &Parser{tags: tags}
}

var defaultParser = NewParser(DefaultTags)

// Parse splits response with DefaultTags
func Parse(response string) []domain.ResponseSegment {
	return defaultParser.Parse(response)
}

// Parse returns the text and editing segments of response in order.
// Whitespace-only text between blocks is dropped. An editing block without
// a closing tag is kept as text.
func (p *Parser) Parse(response string) []domain.ResponseSegment {
	var out []domain.ResponseSegment
	addText := func(s string) {
		if strings.TrimSpace(s) != "" {
			out = append(out, domain.ResponseSegment{Type: domain.SegmentText, Content: s})
		}
	}

	rest := response
	for rest != "" {
		open, name := findOpening(rest, p.tags.Editing)
		if open < 0 {
			break
		}
		bodyStart := open + len(openTag(name))
		closeAt := strings.Index(rest[bodyStart:], closeTag(name))
		if closeAt < 0 {
			break
		}
		addText(rest[:open])

		body := rest[bodyStart : bodyStart+closeAt]
		out = append(out, domain.ResponseSegment{
			Type:            domain.SegmentEditing,
			Content:         body,
			PreviousVersion: strings.TrimSpace(inner(body, p.tags.PreviousVersion)),
			NewFragment:     strings.Trim(inner(body, p.tags.NewFragment), "\r\n"),
		})
		rest = rest[bodyStart+closeAt+len(closeTag(name)):]
	}
	addText(rest)
	return out
}

// Edits returns only the segments that propose a replacement
func (p *Parser) Edits(response string) []domain.ResponseSegment {
	var edits []domain.ResponseSegment
	for _, s := range p.Parse(response) {
		if s.IsEdit() {
			edits = append(edits, s)
		}
	}
	return edits
}

func openTag(name string) string  { return "<" + name + ">" }
func closeTag(name string) string { return "</" + name + ">" }

// findOpening returns the earliest opening tag among names
func findOpening(s string, names []string) (int, string) {
	at, found := -1, ""
	for _, name := range names {
		if i := strings.Index(s, openTag(name)); i >= 0 && (at < 0 || i < at) {
			at, found = i, name
		}
	}
	return at, found
}

// inner returns the content of the first complete element named by names
func inner(s string, names []string) string {
	open, name := findOpening(s, names)
	if open < 0 {
		return ""
	}
	start := open + len(openTag(name))
	end := strings.Index(s[start:], closeTag(name))
	if end < 0 {
		return s[start:]
	}
	return s[start : start+end]
}

// FirstMeaningfulLine returns the first line of text carrying at least three
// letters or digits, with list and heading markers removed. The editor
// scrolls to this line after an edit is applied.
func FirstMeaningfulLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimLeft(line, "#*->• "))
		if countAlnum(line) >= 3 {
			return line
		}
	}
	return ""
}

func countAlnum(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

var analysisReplacer = strings.NewReplacer(
	"<разбор_сценария>", "**Разбор сценария:**\n",
	"<предложения>", "**Предложения:**\n",
	"<объяснение>", "**Объяснение:**\n",
	"<поддержка>", "**Поддержка:**\n",
	"</разбор_сценария>", "\n",
	"</предложения>", "\n",
	"</объяснение>", "\n",
	"</поддержка>", "\n",
)

// FormatAnalysis turns the analysis tags of a response into bold markdown
// headings so the text renders as plain markdown.
func FormatAnalysis(text string) string {
	return analysisReplacer.Replace(text)
}
