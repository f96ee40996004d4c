package stats

import (
	"sync"

	"github.com/mauv0809/padel-stats/internal/match"
)

var _ LeaderboardStore = (*MockStore)(nil)

// MockStore is a mock implementation of the LeaderboardStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	RecordResultFunc func(m *match.Match) (bool, error)
	LeaderboardFunc  func() ([]PlayerRecord, error)
	PlayerByNameFunc func(name string) (*PlayerRecord, error)

	// Call records
	RecordResultCalls []*match.Match
	PlayerByNameCalls []string
	ClearCalled       bool
}

func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) RecordResult(mt *match.Match) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordResultCalls = append(m.RecordResultCalls, mt)
	if m.RecordResultFunc != nil {
		return m.RecordResultFunc(mt)
	}
	return true, nil
}

func (m *MockStore) Leaderboard() ([]PlayerRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LeaderboardFunc != nil {
		return m.LeaderboardFunc()
	}
	return []PlayerRecord{}, nil
}

func (m *MockStore) PlayerByName(name string) (*PlayerRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlayerByNameCalls = append(m.PlayerByNameCalls, name)
	if m.PlayerByNameFunc != nil {
		return m.PlayerByNameFunc(name)
	}
	return nil, ErrPlayerNotFound
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalled = true
}

// RecordedMatchIDs returns the ids passed to RecordResult in order.
func (m *MockStore) RecordedMatchIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, len(m.RecordResultCalls))
	for i, mt := range m.RecordResultCalls {
		ids[i] = mt.ID
	}
	return ids
}
