package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
)

// DocumentStore handles versioned document persistence (PostgreSQL).
// Every save adds a row; versions of one document share its ID.
type DocumentStore interface {
	// SaveVersion stores a new version. CreatedAt must be set by the caller.
	SaveVersion(ctx context.Context, doc *domain.Document) error

	// ListVersions retrieves all versions of a document, oldest first
	ListVersions(ctx context.Context, id string) ([]*domain.Document, error)

	// Latest retrieves the newest version of a document
	Latest(ctx context.Context, id string) (*domain.Document, error)

	// DeleteVersionsAfter deletes versions created strictly after the timestamp
	// and returns how many were removed
	DeleteVersionsAfter(ctx context.Context, id string, after time.Time) (int, error)

	// DeleteByUser deletes every version of every document owned by a user
	DeleteByUser(ctx context.Context, userID string) error
}
