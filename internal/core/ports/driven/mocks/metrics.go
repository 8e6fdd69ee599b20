package mocks

import (
	"sync"
	"time"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
	"github.com/custodia-labs/scenaria-core/internal/core/ports/driven"
)

var _ driven.EditMetrics = (*MockEditMetrics)(nil)

// MockEditMetrics records observations in memory
type MockEditMetrics struct {
	mu      sync.Mutex
	Locates []domain.MatchMethod
	Applies []string
}

// NewMockEditMetrics creates a new MockEditMetrics
func NewMockEditMetrics() *MockEditMetrics {
	return &MockEditMetrics{}
}

func (m *MockEditMetrics) ObserveLocate(method domain.MatchMethod, confidence float64, elapsed time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Locates = append(m.Locates, method)
}

func (m *MockEditMetrics) ObserveApply(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Applies = append(m.Applies, outcome)
}

// ApplyOutcomes returns a copy of the recorded apply outcomes
func (m *MockEditMetrics) ApplyOutcomes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Applies))
	copy(out, m.Applies)
	return out
}
