package domain

import "time"

// DocumentKind is the editor type of a document
type DocumentKind string

const (
	KindText  DocumentKind = "text"
	KindSheet DocumentKind = "sheet"
	KindExcel DocumentKind = "excel"
)

// IsValid checks the kind is a known value
func (k DocumentKind) IsValid() bool {
	switch k {
	case KindText, KindSheet, KindExcel:
		return true
	}
	return false
}

// MimeType returns the content type stored for this kind
func (k DocumentKind) MimeType() string {
	switch k {
	case KindSheet, KindExcel:
		return "text/csv"
	default:
		return "text/markdown"
	}
}

// Document is one version of a document.
// Versions share an ID and are ordered by CreatedAt.
type Document struct {
	ID        string       `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	Title     string       `json:"title"`
	Kind      DocumentKind `json:"kind"`
	Content   string       `json:"content"`
	UserID    string       `json:"user_id"`
}

// ChatDocument is the latest document referenced by a chat
type ChatDocument struct {
	ChatID    string    `json:"chat_id"`
	MessageID string    `json:"message_id"`
	Document  *Document `json:"document"`
}

// SaveVersionRequest stores new content for a document
type SaveVersionRequest struct {
	Title   string       `json:"title" validate:"required,max=300"`
	Kind    DocumentKind `json:"kind" validate:"required,oneof=text sheet excel"`
	Content string       `json:"content"`

	// ChatID, when set, records an assistant message announcing the update
	ChatID      string `json:"chat_id,omitempty" validate:"omitempty,max=64"`
	Description string `json:"description,omitempty" validate:"max=500"`
}

// Announcement texts for assistant messages recording a new version
const (
	DefaultUpdateDescription = "Ручное обновление сценария"
	DocumentUpdatedText      = "Учебный материал обновлен."
)

// DeleteVersionsRequest removes versions newer than a timestamp
type DeleteVersionsRequest struct {
	After time.Time `json:"after" validate:"required"`
}
