package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
	"github.com/custodia-labs/scenaria-core/internal/core/ports/driven"
)

var (
	_ driven.ChatStore    = (*MockChatStore)(nil)
	_ driven.MessageStore = (*MockMessageStore)(nil)
)

// MockChatStore is a mock implementation of ChatStore for testing.
// Deleting a chat also drops its messages from the linked MockMessageStore.
type MockChatStore struct {
	mu       sync.RWMutex
	chats    map[string]*domain.Chat
	messages *MockMessageStore
}

// NewMockChatStore creates a new MockChatStore. messages may be nil.
func NewMockChatStore(messages *MockMessageStore) *MockChatStore {
	return &MockChatStore{
		chats:    make(map[string]*domain.Chat),
		messages: messages,
	}
}

func (m *MockChatStore) Save(ctx context.Context, chat *domain.Chat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.chats[chat.ID]; ok {
		return domain.ErrAlreadyExists
	}
	m.chats[chat.ID] = chat
	return nil
}

func (m *MockChatStore) Get(ctx context.Context, id string) (*domain.Chat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	chat, ok := m.chats[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return chat, nil
}

func (m *MockChatStore) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Chat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Chat
	for _, chat := range m.chats {
		if chat.UserID == userID {
			result = append(result, chat)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if offset >= len(result) {
		return []*domain.Chat{}, nil
	}
	result = result[offset:]
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (m *MockChatStore) UpdateVisibility(ctx context.Context, id string, visibility domain.Visibility) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	chat, ok := m.chats[id]
	if !ok {
		return domain.ErrNotFound
	}
	chat.Visibility = visibility
	return nil
}

func (m *MockChatStore) UpdateTitle(ctx context.Context, id string, title string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	chat, ok := m.chats[id]
	if !ok {
		return domain.ErrNotFound
	}
	chat.Title = title
	return nil
}

func (m *MockChatStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.chats[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.chats, id)
	if m.messages != nil {
		m.messages.dropChat(id)
	}
	return nil
}

// MockMessageStore is a mock implementation of MessageStore for testing
type MockMessageStore struct {
	mu     sync.RWMutex
	byID   map[string]*domain.Message
	byChat map[string][]*domain.Message
}

// NewMockMessageStore creates a new MockMessageStore
func NewMockMessageStore() *MockMessageStore {
	return &MockMessageStore{
		byID:   make(map[string]*domain.Message),
		byChat: make(map[string][]*domain.Message),
	}
}

func (m *MockMessageStore) SaveBatch(ctx context.Context, messages []*domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range messages {
		if _, ok := m.byID[msg.ID]; ok {
			return domain.ErrAlreadyExists
		}
	}
	for _, msg := range messages {
		m.byID[msg.ID] = msg
		ms := append(m.byChat[msg.ChatID], msg)
		sort.SliceStable(ms, func(i, j int) bool { return ms[i].CreatedAt.Before(ms[j].CreatedAt) })
		m.byChat[msg.ChatID] = ms
	}
	return nil
}

func (m *MockMessageStore) Get(ctx context.Context, id string) (*domain.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	msg, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return msg, nil
}

func (m *MockMessageStore) ListByChat(ctx context.Context, chatID string) ([]*domain.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Message, len(m.byChat[chatID]))
	copy(out, m.byChat[chatID])
	return out, nil
}

func (m *MockMessageStore) DeleteAfter(ctx context.Context, chatID string, at time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*domain.Message
	removed := 0
	for _, msg := range m.byChat[chatID] {
		if msg.CreatedAt.Before(at) {
			kept = append(kept, msg)
			continue
		}
		delete(m.byID, msg.ID)
		removed++
	}
	m.byChat[chatID] = kept
	return removed, nil
}

func (m *MockMessageStore) dropChat(chatID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.byChat[chatID] {
		delete(m.byID, msg.ID)
	}
	delete(m.byChat, chatID)
}

// Count returns the number of messages stored for a chat
func (m *MockMessageStore) Count(chatID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byChat[chatID])
}
