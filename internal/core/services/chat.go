package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
	"github.com/custodia-labs/scenaria-core/internal/core/ports/driven"
	"github.com/custodia-labs/scenaria-core/internal/core/ports/driving"
)

// Ensure chatService implements ChatService
var _ driving.ChatService = (*chatService)(nil)

// DefaultChatTitle names chats created without a title
const DefaultChatTitle = "Новый чат"

// chatService implements the ChatService interface
type chatService struct {
	chatStore     driven.ChatStore
	messageStore  driven.MessageStore
	documentStore driven.DocumentStore
}

// NewChatService creates a new ChatService
func NewChatService(
	chatStore driven.ChatStore,
	messageStore driven.MessageStore,
	documentStore driven.DocumentStore,
) driving.ChatService {
	return &chatService{
		chatStore:     chatStore,
		messageStore:  messageStore,
		documentStore: documentStore,
	}
}

// Create creates a chat owned by the caller
func (s *chatService) Create(ctx context.Context, auth *domain.AuthContext, req domain.CreateChatRequest) (*domain.Chat, error) {
	if auth == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	id := req.ID
	if id == "" {
		id = generateID()
	} else if _, err := s.chatStore.Get(ctx, id); err == nil {
		return nil, domain.ErrAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = DefaultChatTitle
	}
	visibility := req.Visibility
	if visibility == "" {
		visibility = domain.VisibilityPrivate
	}

	chat := &domain.Chat{
		ID:         id,
		UserID:     auth.UserID,
		Title:      title,
		Visibility: visibility,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.chatStore.Save(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

// Ensure returns the chat, creating it for the caller if it does not exist
func (s *chatService) Ensure(ctx context.Context, auth *domain.AuthContext, id string, title string) (*domain.Chat, error) {
	if auth == nil {
		return nil, domain.ErrUnauthorized
	}
	if id == "" {
		return nil, domain.ErrInvalidInput
	}

	chat, err := s.chatStore.Get(ctx, id)
	switch {
	case err == nil:
		if !auth.OwnsResource(chat.UserID) {
			return nil, domain.ErrForbidden
		}
		return chat, nil
	case errors.Is(err, domain.ErrNotFound):
		return s.Create(ctx, auth, domain.CreateChatRequest{ID: id, Title: title})
	default:
		return nil, err
	}
}

// Get retrieves a chat the caller can read
func (s *chatService) Get(ctx context.Context, auth *domain.AuthContext, id string) (*domain.Chat, error) {
	chat, err := s.chatStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !chat.CanRead(auth) {
		return nil, domain.ErrForbidden
	}
	return chat, nil
}

// List retrieves the caller's chats, newest first
func (s *chatService) List(ctx context.Context, auth *domain.AuthContext, limit, offset int) ([]*domain.Chat, error) {
	if auth == nil {
		return nil, domain.ErrUnauthorized
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.chatStore.ListByUser(ctx, auth.UserID, limit, offset)
}

// Delete deletes a chat and its messages
func (s *chatService) Delete(ctx context.Context, auth *domain.AuthContext, id string) error {
	if _, err := s.owned(ctx, auth, id); err != nil {
		return err
	}
	return s.chatStore.Delete(ctx, id)
}

// UpdateVisibility makes a chat public or private
func (s *chatService) UpdateVisibility(ctx context.Context, auth *domain.AuthContext, id string, visibility domain.Visibility) error {
	if !visibility.IsValid() {
		return domain.ErrInvalidInput
	}
	if _, err := s.owned(ctx, auth, id); err != nil {
		return err
	}
	return s.chatStore.UpdateVisibility(ctx, id, visibility)
}

// UpdateTitle renames a chat
func (s *chatService) UpdateTitle(ctx context.Context, auth *domain.AuthContext, id string, title string) error {
	if err := validateRequest(domain.UpdateTitleRequest{Title: strings.TrimSpace(title)}); err != nil {
		return err
	}
	if _, err := s.owned(ctx, auth, id); err != nil {
		return err
	}
	return s.chatStore.UpdateTitle(ctx, id, strings.TrimSpace(title))
}

// SaveMessages appends messages to a chat. Missing IDs and timestamps are filled in.
func (s *chatService) SaveMessages(ctx context.Context, auth *domain.AuthContext, chatID string, messages []*domain.Message) error {
	if err := validateRequest(domain.SaveMessagesRequest{Messages: messages}); err != nil {
		return err
	}
	if _, err := s.owned(ctx, auth, chatID); err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, m := range messages {
		m.ChatID = chatID
		if m.ID == "" {
			m.ID = generateID()
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = now
		}
	}
	return s.messageStore.SaveBatch(ctx, messages)
}

// ListMessages retrieves a chat's messages, oldest first
func (s *chatService) ListMessages(ctx context.Context, auth *domain.AuthContext, chatID string) ([]*domain.Message, error) {
	if _, err := s.Get(ctx, auth, chatID); err != nil {
		return nil, err
	}
	return s.messageStore.ListByChat(ctx, chatID)
}

// DeleteMessagesAfter deletes messages created at or after the timestamp
func (s *chatService) DeleteMessagesAfter(ctx context.Context, auth *domain.AuthContext, chatID string, at time.Time) (int, error) {
	if at.IsZero() {
		return 0, domain.ErrInvalidInput
	}
	if _, err := s.owned(ctx, auth, chatID); err != nil {
		return 0, err
	}
	return s.messageStore.DeleteAfter(ctx, chatID, at)
}

// HasDocuments reports whether any message of the chat created or updated a document
func (s *chatService) HasDocuments(ctx context.Context, auth *domain.AuthContext, chatID string) (bool, error) {
	messages, err := s.ListMessages(ctx, auth, chatID)
	if err != nil {
		return false, err
	}
	for _, m := range messages {
		if len(m.DocumentRefs()) > 0 {
			return true, nil
		}
	}
	return false, nil
}

// LatestDocument returns the newest version of the document most recently
// created or updated in the chat. Messages are ordered oldest first, so the
// last reference wins; equal timestamps keep the later message.
func (s *chatService) LatestDocument(ctx context.Context, auth *domain.AuthContext, chatID string) (*domain.ChatDocument, error) {
	messages, err := s.ListMessages(ctx, auth, chatID)
	if err != nil {
		return nil, err
	}

	var (
		ref       *domain.DocumentRef
		messageID string
		latest    time.Time
	)
	for _, m := range messages {
		for _, r := range m.DocumentRefs() {
			if ref == nil || !m.CreatedAt.Before(latest) {
				ref, messageID, latest = r, m.ID, m.CreatedAt
			}
		}
	}
	if ref == nil {
		return nil, domain.ErrNotFound
	}

	doc, err := s.documentStore.Latest(ctx, ref.ID)
	if err != nil {
		return nil, err
	}

	return &domain.ChatDocument{
		ChatID:    chatID,
		MessageID: messageID,
		Document:  doc,
	}, nil
}

// owned loads a chat the caller may modify
func (s *chatService) owned(ctx context.Context, auth *domain.AuthContext, id string) (*domain.Chat, error) {
	if auth == nil {
		return nil, domain.ErrUnauthorized
	}
	chat, err := s.chatStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.OwnsResource(chat.UserID) {
		return nil, domain.ErrForbidden
	}
	return chat, nil
}
