package domain

import (
	"encoding/json"
	"time"
)

// Visibility controls who can read a chat
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// IsValid checks the visibility is a known value
func (v Visibility) IsValid() bool {
	return v == VisibilityPrivate || v == VisibilityPublic
}

// Chat is a conversation owned by one user
type Chat struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Title      string     `json:"title"`
	Visibility Visibility `json:"visibility"`
	CreatedAt  time.Time  `json:"created_at"`
}

// CanRead checks whether a user may read the chat
func (c *Chat) CanRead(auth *AuthContext) bool {
	if c.Visibility == VisibilityPublic {
		return true
	}
	return auth != nil && auth.OwnsResource(c.UserID)
}

// MessageRole is the author of a message
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
	MessageRoleSystem    MessageRole = "system"
)

// PartType discriminates message parts
type PartType string

const (
	PartText           PartType = "text"
	PartToolInvocation PartType = "tool-invocation"
)

// Document tool names recognised in tool invocations
const (
	ToolCreateDocument = "createDocument"
	ToolUpdateDocument = "updateDocument"
)

// ToolInvocation records a tool call made by the assistant
type ToolInvocation struct {
	ToolName   string          `json:"toolName"`
	ToolCallID string          `json:"toolCallId"`
	State      string          `json:"state"`
	Args       json.RawMessage `json:"args,omitempty"`
	Result     *DocumentRef    `json:"result,omitempty"`
}

// TouchesDocument reports whether the invocation created or updated a document
func (t *ToolInvocation) TouchesDocument() bool {
	if t == nil || t.Result == nil || t.Result.ID == "" {
		return false
	}
	return t.ToolName == ToolCreateDocument || t.ToolName == ToolUpdateDocument
}

// DocumentRef is the document identity carried by a tool result
type DocumentRef struct {
	ID          string       `json:"id"`
	Title       string       `json:"title,omitempty"`
	Kind        DocumentKind `json:"kind,omitempty"`
	Content     string       `json:"content,omitempty"`
	JustUpdated bool         `json:"justUpdated,omitempty"`
}

// MessagePart is one element of a message body
type MessagePart struct {
	Type           PartType        `json:"type"`
	Text           string          `json:"text,omitempty"`
	ToolInvocation *ToolInvocation `json:"toolInvocation,omitempty"`
}

// Message is one turn in a chat
type Message struct {
	ID          string          `json:"id"`
	ChatID      string          `json:"chat_id"`
	Role        MessageRole     `json:"role" validate:"required,oneof=user assistant system"`
	Parts       []MessagePart   `json:"parts"`
	Attachments json.RawMessage `json:"attachments,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// DocumentRefs returns the documents touched by this message, in part order
func (m *Message) DocumentRefs() []*DocumentRef {
	var refs []*DocumentRef
	for _, p := range m.Parts {
		if p.Type == PartToolInvocation && p.ToolInvocation.TouchesDocument() {
			refs = append(refs, p.ToolInvocation.Result)
		}
	}
	return refs
}

// Text concatenates the text parts of the message
func (m *Message) Text() string {
	var out string
	for _, p := range m.Parts {
		if p.Type == PartText {
			out += p.Text
		}
	}
	return out
}

// CreateChatRequest represents a new chat
type CreateChatRequest struct {
	ID         string     `json:"id,omitempty" validate:"omitempty,max=64"`
	Title      string     `json:"title" validate:"max=200"`
	Visibility Visibility `json:"visibility,omitempty" validate:"omitempty,oneof=private public"`
}

// UpdateVisibilityRequest changes chat visibility
type UpdateVisibilityRequest struct {
	Visibility Visibility `json:"visibility" validate:"required,oneof=private public"`
}

// UpdateTitleRequest renames a chat
type UpdateTitleRequest struct {
	Title string `json:"title" validate:"required,max=200"`
}

// SaveMessagesRequest appends messages to a chat
type SaveMessagesRequest struct {
	Messages []*Message `json:"messages" validate:"required,min=1,dive,required"`
}
