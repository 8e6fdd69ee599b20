package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
)

// DocumentService manages versioned documents
type DocumentService interface {
	// Versions retrieves all versions of a document, oldest first
	Versions(ctx context.Context, auth *domain.AuthContext, id string) ([]*domain.Document, error)

	// Latest retrieves the newest version of a document
	Latest(ctx context.Context, auth *domain.AuthContext, id string) (*domain.Document, error)

	// SaveVersion normalises and stores new content as the newest version.
	// When req.ChatID is set, an assistant message announcing the update is
	// appended to that chat and its ID returned.
	SaveVersion(ctx context.Context, auth *domain.AuthContext, id string, req domain.SaveVersionRequest) (*domain.Document, string, error)

	// DeleteVersionsAfter removes versions created after the timestamp
	DeleteVersionsAfter(ctx context.Context, auth *domain.AuthContext, id string, after time.Time) (int, error)
}
