package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
	"github.com/custodia-labs/scenaria-core/internal/core/ports/driven"
)

var _ driven.DocumentStore = (*MockDocumentStore)(nil)

// MockDocumentStore is a mock implementation of DocumentStore for testing
type MockDocumentStore struct {
	mu       sync.RWMutex
	versions map[string][]*domain.Document // sorted by CreatedAt

	// SaveVersionFn overrides SaveVersion when set
	SaveVersionFn func(doc *domain.Document) error
}

// NewMockDocumentStore creates a new MockDocumentStore
func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{
		versions: make(map[string][]*domain.Document),
	}
}

func (m *MockDocumentStore) SaveVersion(ctx context.Context, doc *domain.Document) error {
	if m.SaveVersionFn != nil {
		return m.SaveVersionFn(doc)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.versions[doc.ID] {
		if v.CreatedAt.Equal(doc.CreatedAt) {
			return domain.ErrAlreadyExists
		}
	}
	copied := *doc
	vs := append(m.versions[doc.ID], &copied)
	sort.SliceStable(vs, func(i, j int) bool { return vs[i].CreatedAt.Before(vs[j].CreatedAt) })
	m.versions[doc.ID] = vs
	return nil
}

func (m *MockDocumentStore) ListVersions(ctx context.Context, id string) ([]*domain.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vs := m.versions[id]
	if len(vs) == 0 {
		return nil, domain.ErrNotFound
	}
	out := make([]*domain.Document, len(vs))
	copy(out, vs)
	return out, nil
}

func (m *MockDocumentStore) Latest(ctx context.Context, id string) (*domain.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vs := m.versions[id]
	if len(vs) == 0 {
		return nil, domain.ErrNotFound
	}
	return vs[len(vs)-1], nil
}

func (m *MockDocumentStore) DeleteVersionsAfter(ctx context.Context, id string, after time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*domain.Document
	for _, v := range m.versions[id] {
		if !v.CreatedAt.After(after) {
			kept = append(kept, v)
		}
	}
	removed := len(m.versions[id]) - len(kept)
	m.versions[id] = kept
	return removed, nil
}

func (m *MockDocumentStore) DeleteByUser(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, vs := range m.versions {
		if len(vs) > 0 && vs[0].UserID == userID {
			delete(m.versions, id)
		}
	}
	return nil
}

// VersionCount returns the number of stored versions of a document
func (m *MockDocumentStore) VersionCount(id string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.versions[id])
}
