package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
)

// ChatStore handles chat persistence (PostgreSQL)
type ChatStore interface {
	// Save creates a chat
	Save(ctx context.Context, chat *domain.Chat) error

	// Get retrieves a chat by ID
	Get(ctx context.Context, id string) (*domain.Chat, error)

	// ListByUser retrieves a user's chats, newest first
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Chat, error)

	// UpdateVisibility changes who can read a chat
	UpdateVisibility(ctx context.Context, id string, visibility domain.Visibility) error

	// UpdateTitle renames a chat
	UpdateTitle(ctx context.Context, id string, title string) error

	// Delete deletes a chat together with its messages
	Delete(ctx context.Context, id string) error
}

// MessageStore handles chat message persistence (PostgreSQL)
type MessageStore interface {
	// SaveBatch stores messages in one transaction
	SaveBatch(ctx context.Context, messages []*domain.Message) error

	// Get retrieves a message by ID
	Get(ctx context.Context, id string) (*domain.Message, error)

	// ListByChat retrieves a chat's messages, oldest first
	ListByChat(ctx context.Context, chatID string) ([]*domain.Message, error)

	// DeleteAfter deletes messages of a chat created at or after the timestamp
	// and returns how many were removed
	DeleteAfter(ctx context.Context, chatID string, at time.Time) (int, error)
}
