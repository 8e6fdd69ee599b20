package driving

import (
	"context"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
)

// EditService turns tagged assistant responses into document edits
type EditService interface {
	// Parse splits an assistant response into text and editing segments
	Parse(ctx context.Context, req domain.ParseResponseRequest) ([]domain.ResponseSegment, error)

	// Locate finds the previous version inside the chat's latest document.
	// A nil result with a nil error means no confident match.
	Locate(ctx context.Context, auth *domain.AuthContext, chatID string, req domain.LocateEditRequest) (*domain.MatchResult, error)

	// LocateAll locates several fragments against the chat's latest document
	// concurrently. Results are in request order; unmatched entries are nil.
	LocateAll(ctx context.Context, auth *domain.AuthContext, chatID string, req domain.LocateAllRequest) ([]*domain.MatchResult, error)

	// Apply replaces the located previous version with the new fragment and
	// saves the result as a new document version. When nothing matches it
	// returns Applied=false and leaves the document untouched.
	Apply(ctx context.Context, auth *domain.AuthContext, chatID string, req domain.ApplyEditRequest) (*domain.ApplyEditResult, error)
}
