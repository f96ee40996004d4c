package match

import "github.com/mauv0809/padel-stats/internal/scoring"

// MatchStore defines the interface for persisting tracked matches and their
// event logs.
type MatchStore interface {
	CreateMatch(m *Match) error
	GetMatch(matchID string) (*Match, error)
	// GetCurrentMatch returns the unfinished match, or ErrMatchNotFound.
	GetCurrentMatch() (*Match, error)
	GetAllMatches() ([]*Match, error)
	// AppendEvent stores the event and the score it produced in one transaction.
	// A non-nil winner marks the match completed.
	AppendEvent(event Event, score scoring.Score, winner *scoring.Team) error
	UpdateScore(matchID string, score scoring.Score) error
	Clear()
	ClearMatch(matchID string)
}
