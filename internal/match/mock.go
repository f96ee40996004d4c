package match

import (
	"sync"

	"github.com/mauv0809/padel-stats/internal/scoring"
)

// MockStore is a mock implementation of the MatchStore interface for testing.
// It is safe for concurrent use. Without hooks it behaves as an in-memory store.
type MockStore struct {
	mu      sync.Mutex
	matches map[string]*Match

	// Spies for method calls
	CreateMatchFunc     func(m *Match) error
	GetMatchFunc        func(matchID string) (*Match, error)
	GetCurrentMatchFunc func() (*Match, error)
	GetAllMatchesFunc   func() ([]*Match, error)
	AppendEventFunc     func(event Event, score scoring.Score, winner *scoring.Team) error
	UpdateScoreFunc     func(matchID string, score scoring.Score) error
	ClearFunc           func()
	ClearMatchFunc      func(matchID string)

	// Call records
	CreateMatchCalls []*Match
	AppendEventCalls []struct {
		Event  Event
		Score  scoring.Score
		Winner *scoring.Team
	}
	UpdateScoreCalls []struct {
		MatchID string
		Score   scoring.Score
	}
	ClearMatchCalls []string
	ClearCalled     bool
}

func NewMock() *MockStore {
	return &MockStore{matches: make(map[string]*Match)}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateMatchCalls = nil
	m.AppendEventCalls = nil
	m.UpdateScoreCalls = nil
	m.ClearMatchCalls = nil
	m.ClearCalled = false
}

func (m *MockStore) CreateMatch(match *Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateMatchCalls = append(m.CreateMatchCalls, match)
	if m.CreateMatchFunc != nil {
		return m.CreateMatchFunc(match)
	}
	m.matches[match.ID] = cloneMatch(match)
	return nil
}

func (m *MockStore) GetMatch(matchID string) (*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(matchID)
	}
	stored, ok := m.matches[matchID]
	if !ok {
		return nil, ErrMatchNotFound
	}
	return cloneMatch(stored), nil
}

func (m *MockStore) GetCurrentMatch() (*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetCurrentMatchFunc != nil {
		return m.GetCurrentMatchFunc()
	}
	for _, stored := range m.matches {
		if !stored.IsCompleted {
			return cloneMatch(stored), nil
		}
	}
	return nil, ErrMatchNotFound
}

func (m *MockStore) GetAllMatches() ([]*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllMatchesFunc != nil {
		return m.GetAllMatchesFunc()
	}
	all := make([]*Match, 0, len(m.matches))
	for _, stored := range m.matches {
		all = append(all, cloneMatch(stored))
	}
	return all, nil
}

func (m *MockStore) AppendEvent(event Event, score scoring.Score, winner *scoring.Team) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AppendEventCalls = append(m.AppendEventCalls, struct {
		Event  Event
		Score  scoring.Score
		Winner *scoring.Team
	}{event, score, winner})
	if m.AppendEventFunc != nil {
		return m.AppendEventFunc(event, score, winner)
	}
	stored, ok := m.matches[event.MatchID]
	if !ok || stored.IsCompleted {
		return ErrMatchNotFound
	}
	stored.Events = append(stored.Events, event)
	stored.Score = score
	if winner != nil {
		w := *winner
		stored.Winner = &w
		stored.IsCompleted = true
	}
	return nil
}

func (m *MockStore) UpdateScore(matchID string, score scoring.Score) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateScoreCalls = append(m.UpdateScoreCalls, struct {
		MatchID string
		Score   scoring.Score
	}{matchID, score})
	if m.UpdateScoreFunc != nil {
		return m.UpdateScoreFunc(matchID, score)
	}
	stored, ok := m.matches[matchID]
	if !ok {
		return ErrMatchNotFound
	}
	stored.Score = score
	return nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalled = true
	if m.ClearFunc != nil {
		m.ClearFunc()
		return
	}
	m.matches = make(map[string]*Match)
}

func (m *MockStore) ClearMatch(matchID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearMatchCalls = append(m.ClearMatchCalls, matchID)
	if m.ClearMatchFunc != nil {
		m.ClearMatchFunc(matchID)
		return
	}
	delete(m.matches, matchID)
}

func cloneMatch(src *Match) *Match {
	c := *src
	c.Events = append([]Event(nil), src.Events...)
	if src.Winner != nil {
		w := *src.Winner
		c.Winner = &w
	}
	return &c
}
