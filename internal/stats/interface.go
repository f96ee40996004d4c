package stats

import "github.com/mauv0809/padel-stats/internal/match"

// LeaderboardStore aggregates completed matches per player name.
type LeaderboardStore interface {
	// RecordResult adds a completed match to the leaderboard. Recording the
	// same match twice is a no-op and reports false.
	RecordResult(m *match.Match) (bool, error)
	Leaderboard() ([]PlayerRecord, error)
	// PlayerByName does a case-insensitive, fuzzy lookup.
	PlayerByName(name string) (*PlayerRecord, error)
	Clear()
}
