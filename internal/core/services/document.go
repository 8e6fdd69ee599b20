package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
	"github.com/custodia-labs/scenaria-core/internal/core/ports/driven"
	"github.com/custodia-labs/scenaria-core/internal/core/ports/driving"
)

// Ensure documentService implements DocumentService
var _ driving.DocumentService = (*documentService)(nil)

// documentService implements the DocumentService interface
type documentService struct {
	documentStore driven.DocumentStore
	normalisers   driven.NormaliserRegistry
	chats         driving.ChatService
}

// NewDocumentService creates a new DocumentService.
// normalisers may be nil, in which case content is stored as given.
func NewDocumentService(
	documentStore driven.DocumentStore,
	normalisers driven.NormaliserRegistry,
	chats driving.ChatService,
) driving.DocumentService {
	return &documentService{
		documentStore: documentStore,
		normalisers:   normalisers,
		chats:         chats,
	}
}

// Versions retrieves all versions of a document, oldest first
func (s *documentService) Versions(ctx context.Context, auth *domain.AuthContext, id string) ([]*domain.Document, error) {
	if auth == nil {
		return nil, domain.ErrUnauthorized
	}
	versions, err := s.documentStore.ListVersions(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.OwnsResource(versions[0].UserID) {
		return nil, domain.ErrForbidden
	}
	return versions, nil
}

// Latest retrieves the newest version of a document
func (s *documentService) Latest(ctx context.Context, auth *domain.AuthContext, id string) (*domain.Document, error) {
	if auth == nil {
		return nil, domain.ErrUnauthorized
	}
	doc, err := s.documentStore.Latest(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.OwnsResource(doc.UserID) {
		return nil, domain.ErrForbidden
	}
	return doc, nil
}

// SaveVersion normalises and stores new content as the newest version
func (s *documentService) SaveVersion(ctx context.Context, auth *domain.AuthContext, id string, req domain.SaveVersionRequest) (*domain.Document, string, error) {
	if auth == nil {
		return nil, "", domain.ErrUnauthorized
	}
	if id == "" {
		return nil, "", domain.ErrInvalidInput
	}
	if err := validateRequest(req); err != nil {
		return nil, "", err
	}

	owner := auth.UserID
	previous, err := s.documentStore.Latest(ctx, id)
	switch {
	case err == nil:
		if !auth.OwnsResource(previous.UserID) {
			return nil, "", domain.ErrForbidden
		}
		owner = previous.UserID
	case errors.Is(err, domain.ErrNotFound):
		previous = nil
	default:
		return nil, "", err
	}

	// Versions are keyed by (id, created_at) at microsecond precision
	createdAt := time.Now().UTC().Truncate(time.Microsecond)
	if previous != nil && !createdAt.After(previous.CreatedAt) {
		createdAt = previous.CreatedAt.Add(time.Microsecond)
	}

	doc := &domain.Document{
		ID:        id,
		CreatedAt: createdAt,
		Title:     strings.TrimSpace(req.Title),
		Kind:      req.Kind,
		Content:   s.normalise(req.Content, req.Kind),
		UserID:    owner,
	}
	if err := s.documentStore.SaveVersion(ctx, doc); err != nil {
		return nil, "", err
	}

	if req.ChatID == "" {
		return doc, "", nil
	}

	messageID, err := s.announce(ctx, auth, req.ChatID, doc, req.Description)
	if err != nil {
		return doc, "", fmt.Errorf("document saved, recording update message: %w", err)
	}
	return doc, messageID, nil
}

// DeleteVersionsAfter removes versions created after the timestamp
func (s *documentService) DeleteVersionsAfter(ctx context.Context, auth *domain.AuthContext, id string, after time.Time) (int, error) {
	if after.IsZero() {
		return 0, domain.ErrInvalidInput
	}
	if _, err := s.Latest(ctx, auth, id); err != nil {
		return 0, err
	}
	return s.documentStore.DeleteVersionsAfter(ctx, id, after)
}

func (s *documentService) normalise(content string, kind domain.DocumentKind) string {
	if s.normalisers == nil {
		return content
	}
	mimeType := kind.MimeType()
	if n := s.normalisers.Get(mimeType); n != nil {
		return n.Normalise(content, mimeType)
	}
	return content
}

// announce appends an assistant message carrying an updateDocument tool
// result for doc, creating the chat when needed.
func (s *documentService) announce(ctx context.Context, auth *domain.AuthContext, chatID string, doc *domain.Document, description string) (string, error) {
	if _, err := s.chats.Ensure(ctx, auth, chatID, doc.Title); err != nil {
		return "", err
	}

	if description == "" {
		description = domain.DefaultUpdateDescription
	}
	args, err := json.Marshal(map[string]string{"id": doc.ID, "description": description})
	if err != nil {
		return "", err
	}

	msg := &domain.Message{
		ID:   generateID(),
		Role: domain.MessageRoleAssistant,
		Parts: []domain.MessagePart{
			{
				Type: domain.PartToolInvocation,
				ToolInvocation: &domain.ToolInvocation{
					ToolName:   domain.ToolUpdateDocument,
					ToolCallID: "toolu_" + generateID(),
					State:      "result",
					Args:       args,
					Result: &domain.DocumentRef{
						ID:          doc.ID,
						Title:       doc.Title,
						Kind:        doc.Kind,
						Content:     doc.Content,
						JustUpdated: true,
					},
				},
			},
			{Type: domain.PartText, Text: domain.DocumentUpdatedText},
		},
		CreatedAt: doc.CreatedAt,
	}

	if err := s.chats.SaveMessages(ctx, auth, chatID, []*domain.Message{msg}); err != nil {
		return "", err
	}
	return msg.ID, nil
}
