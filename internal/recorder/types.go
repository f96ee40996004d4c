package recorder

import (
	"errors"
	"sync"
	"time"

	"github.com/mauv0809/padel-stats/internal/live"
	"github.com/mauv0809/padel-stats/internal/match"
	"github.com/mauv0809/padel-stats/internal/metrics"
	"github.com/mauv0809/padel-stats/internal/notifier"
	"github.com/mauv0809/padel-stats/internal/pubsub"
	"github.com/mauv0809/padel-stats/internal/scoring"
	"github.com/mauv0809/padel-stats/internal/stats"
)

var (
	ErrMatchCompleted   = errors.New("match is already completed")
	ErrUnfinishedMatch  = errors.New("an unfinished match already exists")
	ErrMissingPlayers   = errors.New("all four players need a name")
	ErrDuplicatePlayers = errors.New("player names must be unique")
	ErrScoreMismatch    = errors.New("stored score does not match the event log")
	ErrInvalidSetup     = errors.New("invalid match setup")
)

// Recorder turns rallies into persisted score changes and fans the results
// out to the broker, Slack, the leaderboard and live clients.
type Recorder struct {
	store       match.MatchStore
	leaderboard stats.LeaderboardStore
	notifier    notifier.Notifier
	metrics     metrics.Metrics
	counters    metrics.MetricsStore
	pubsub      pubsub.PubSubClient
	live        live.Broadcaster

	now   func() time.Time
	newID func() string
	// leaderboardViaBroker leaves leaderboard updates to the match-completed
	// push subscription.
	leaderboardViaBroker bool

	createMu sync.Mutex
	locks    *keyedMutex
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

// WithIDGenerator replaces the uuid generator used for match and event ids.
func WithIDGenerator(newID func() string) Option {
	return func(r *Recorder) { r.newID = newID }
}

// WithLeaderboardViaBroker makes completed matches reach the leaderboard
// through the broker instead of being recorded inline.
func WithLeaderboardViaBroker() Option {
	return func(r *Recorder) { r.leaderboardViaBroker = true }
}

// Setup describes a new match. Team one is Team1, team two is Team2.
type Setup struct {
	Team1          [2]string              `json:"team1"`
	Team2          [2]string              `json:"team2"`
	Date           time.Time              `json:"date,omitempty"`
	Location       string                 `json:"location,omitempty"`
	Round          string                 `json:"round,omitempty"`
	ScoringSystem  scoring.ScoringSystem  `json:"scoringSystem,omitempty"`
	ThirdSetFormat scoring.ThirdSetFormat `json:"thirdSetFormat,omitempty"`
	StatisticsType match.StatisticsType   `json:"statisticsType,omitempty"`
}

// PointInput is one rally as reported by the scorer.
type PointInput struct {
	PlayerID          string                  `json:"playerId"`
	EventType         match.EventType         `json:"eventType"`
	ShotType          match.ShotType          `json:"shotType"`
	ShotSpecification match.ShotSpecification `json:"shotSpecification,omitempty"`
	Description       string                  `json:"description,omitempty"`
}
