package notifier

import (
	"context"
	"sync"

	"github.com/mauv0809/padel-stats/internal/match"
	"github.com/mauv0809/padel-stats/internal/stats"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for send functions
	SendMatchStartedFunc       func(m *match.Match, dryRun bool) error
	SendResultNotificationFunc func(m *match.Match, dryRun bool) error

	// Call records
	SendMatchStartedCalls       []*match.Match
	SendResultNotificationCalls []struct {
		Match  *match.Match
		DryRun bool
	}
	SendLeaderboardCalls [][]stats.PlayerRecord

	// Spies for format functions
	FormatLeaderboardResponseFunc    func(records []stats.PlayerRecord) (any, error)
	FormatPlayerStatsResponseFunc    func(record *stats.PlayerRecord, query string) (any, error)
	FormatPlayerNotFoundResponseFunc func(query string) (any, error)
	FormatScoreResponseFunc          func(m *match.Match) (any, error)
	FormatNoMatchResponseFunc        func() (any, error)

	// Call records for format functions
	LastLeaderboardResponse    any
	LastPlayerStatsResponse    any
	LastPlayerNotFoundResponse any
	LastScoreResponse          any
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchStartedCalls = nil
	m.SendResultNotificationCalls = nil
	m.SendLeaderboardCalls = nil
	m.LastLeaderboardResponse = nil
	m.LastPlayerStatsResponse = nil
	m.LastPlayerNotFoundResponse = nil
	m.LastScoreResponse = nil
}

func (m *Mock) SendMatchStarted(_ context.Context, mt *match.Match, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchStartedCalls = append(m.SendMatchStartedCalls, mt)
	if m.SendMatchStartedFunc != nil {
		return m.SendMatchStartedFunc(mt, dryRun)
	}
	return nil
}

func (m *Mock) SendResultNotification(_ context.Context, mt *match.Match, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = append(m.SendResultNotificationCalls, struct {
		Match  *match.Match
		DryRun bool
	}{mt, dryRun})
	if m.SendResultNotificationFunc != nil {
		return m.SendResultNotificationFunc(mt, dryRun)
	}
	return nil
}

func (m *Mock) SendLeaderboard(_ context.Context, records []stats.PlayerRecord, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, records)
	return nil
}

func (m *Mock) FormatLeaderboardResponse(records []stats.PlayerRecord) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatLeaderboardResponseFunc != nil {
		resp, err := m.FormatLeaderboardResponseFunc(records)
		m.LastLeaderboardResponse = resp
		return resp, err
	}
	return "formatted_leaderboard", nil
}

func (m *Mock) FormatPlayerStatsResponse(record *stats.PlayerRecord, query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatPlayerStatsResponseFunc != nil {
		resp, err := m.FormatPlayerStatsResponseFunc(record, query)
		m.LastPlayerStatsResponse = resp
		return resp, err
	}
	return "formatted_player_stats", nil
}

func (m *Mock) FormatPlayerNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatPlayerNotFoundResponseFunc != nil {
		resp, err := m.FormatPlayerNotFoundResponseFunc(query)
		m.LastPlayerNotFoundResponse = resp
		return resp, err
	}
	return "formatted_player_not_found", nil
}

func (m *Mock) FormatScoreResponse(mt *match.Match) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatScoreResponseFunc != nil {
		resp, err := m.FormatScoreResponseFunc(mt)
		m.LastScoreResponse = resp
		return resp, err
	}
	return "formatted_score", nil
}

func (m *Mock) FormatNoMatchResponse() (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatNoMatchResponseFunc != nil {
		return m.FormatNoMatchResponseFunc()
	}
	return "formatted_no_match", nil
}

// ResultNotifications returns the ids of matches a result was sent for.
func (m *Mock) ResultNotifications() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, len(m.SendResultNotificationCalls))
	for i, c := range m.SendResultNotificationCalls {
		ids[i] = c.Match.ID
	}
	return ids
}
