package domain

// SegmentType discriminates parsed response segments
type SegmentType string

const (
	SegmentText    SegmentType = "text"
	SegmentEditing SegmentType = "editing"
)

// ResponseSegment is one piece of a tagged assistant response
type ResponseSegment struct {
	Type            SegmentType `json:"type"`
	Content         string      `json:"content,omitempty"`
	PreviousVersion string      `json:"previous_version,omitempty"`
	NewFragment     string      `json:"new_fragment,omitempty"`
}

// IsEdit reports whether the segment proposes a replacement
func (s *ResponseSegment) IsEdit() bool {
	return s.Type == SegmentEditing && s.PreviousVersion != ""
}

// ParseResponseRequest carries a raw assistant response
type ParseResponseRequest struct {
	Response string `json:"response" validate:"required"`
}

// LocateEditRequest asks where a previous-version fragment sits in the live document
type LocateEditRequest struct {
	PreviousVersion string       `json:"previous_version" validate:"required"`
	Options         MatchOptions `json:"options"`
}

// LocateAllRequest locates several fragments against the same document
type LocateAllRequest struct {
	Fragments []string     `json:"fragments" validate:"required,min=1,dive,required"`
	Options   MatchOptions `json:"options"`
}

// ApplyEditRequest replaces a located fragment with new content
type ApplyEditRequest struct {
	PreviousVersion string       `json:"previous_version" validate:"required"`
	NewFragment     string       `json:"new_fragment"`
	Options         MatchOptions `json:"options"`
}

// ApplyEditResult reports the outcome of an apply.
// Applied is false when the fragment could not be located; nothing is saved then.
type ApplyEditResult struct {
	Applied   bool         `json:"applied"`
	Match     *MatchResult `json:"match,omitempty"`
	Document  *Document    `json:"document,omitempty"`
	MessageID string       `json:"message_id,omitempty"`
	Patch     string       `json:"patch,omitempty"`
	ScrollTo  string       `json:"scroll_to,omitempty"`
}
