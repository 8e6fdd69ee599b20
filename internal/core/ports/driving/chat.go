package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
)

// ChatService manages chats and their messages.
// Every operation takes the caller's auth context; reads of public chats
// are allowed for anyone, writes only for the owner or an admin.
type ChatService interface {
	// Create creates a chat owned by the caller
	Create(ctx context.Context, auth *domain.AuthContext, req domain.CreateChatRequest) (*domain.Chat, error)

	// Ensure returns the chat, creating it for the caller if it does not exist
	Ensure(ctx context.Context, auth *domain.AuthContext, id string, title string) (*domain.Chat, error)

	// Get retrieves a chat the caller can read
	Get(ctx context.Context, auth *domain.AuthContext, id string) (*domain.Chat, error)

	// List retrieves the caller's chats, newest first
	List(ctx context.Context, auth *domain.AuthContext, limit, offset int) ([]*domain.Chat, error)

	// Delete deletes a chat and its messages
	Delete(ctx context.Context, auth *domain.AuthContext, id string) error

	// UpdateVisibility makes a chat public or private
	UpdateVisibility(ctx context.Context, auth *domain.AuthContext, id string, visibility domain.Visibility) error

	// UpdateTitle renames a chat
	UpdateTitle(ctx context.Context, auth *domain.AuthContext, id string, title string) error

	// SaveMessages appends messages to a chat
	SaveMessages(ctx context.Context, auth *domain.AuthContext, chatID string, messages []*domain.Message) error

	// ListMessages retrieves a chat's messages, oldest first
	ListMessages(ctx context.Context, auth *domain.AuthContext, chatID string) ([]*domain.Message, error)

	// DeleteMessagesAfter deletes messages created at or after the timestamp
	DeleteMessagesAfter(ctx context.Context, auth *domain.AuthContext, chatID string, at time.Time) (int, error)

	// HasDocuments reports whether any message of the chat created or updated a document
	HasDocuments(ctx context.Context, auth *domain.AuthContext, chatID string) (bool, error)

	// LatestDocument returns the newest version of the document most recently
	// created or updated in the chat
	LatestDocument(ctx context.Context, auth *domain.AuthContext, chatID string) (*domain.ChatDocument, error)
}
