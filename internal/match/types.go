package match

import (
	"database/sql"
	"sync"
	"time"

	"github.com/mauv0809/padel-stats/internal/scoring"
)

const (
	DefaultLocation = "Unknown Location"
	DefaultRound    = "Friendly Match"
)

// store handles all database operations for tracked matches.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Player is one of the four people on court.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Team is a doubles pair.
type Team struct {
	ID      string    `json:"id"`
	Players [2]Player `json:"players"`
}

// EventType classifies how a rally ended.
type EventType string

const (
	EventWinner        EventType = "winner"
	EventUnforcedError EventType = "unforced_error"
	EventForcedError   EventType = "forced_error"
)

// ShotType is the kind of shot that ended a rally.
type ShotType string

const (
	ShotSmash        ShotType = "smash"
	ShotVolley       ShotType = "volley"
	ShotGroundstroke ShotType = "groundstroke"
	ShotLob          ShotType = "lob"
	ShotReturn       ShotType = "return"
	ShotBajada       ShotType = "bajada"
	ShotOther        ShotType = "other"
)

// ShotSpecification refines a shot type when advanced statistics are tracked.
type ShotSpecification string

const (
	SpecVibora   ShotSpecification = "vibora"
	SpecSmash    ShotSpecification = "smash"
	SpecForehand ShotSpecification = "forehand"
	SpecBackhand ShotSpecification = "backhand"
)

// StatisticsType selects how much detail is captured per rally.
type StatisticsType string

const (
	StatisticsBasic    StatisticsType = "basic"
	StatisticsAdvanced StatisticsType = "advanced"
)

// Event is the immutable record of one rally. Events are appended once and
// never updated.
type Event struct {
	ID                string            `json:"id"`
	MatchID           string            `json:"matchId"`
	Seq               int               `json:"seq"`
	PlayerID          string            `json:"playerId"`
	EventType         EventType         `json:"eventType"`
	ShotType          ShotType          `json:"shotType"`
	ShotSpecification ShotSpecification `json:"shotSpecification,omitempty"`
	Description       string            `json:"description,omitempty"`
	Timestamp         time.Time         `json:"timestamp"`
	WinningTeam       scoring.Team      `json:"winningTeam"`
	ScoreAfter        scoring.Score     `json:"scoreAfter"`
}

// Match is the unit of persistence: configuration, line-up, score and the
// event log of a single tracked match.
type Match struct {
	ID             string                 `json:"id"`
	Date           time.Time              `json:"date"`
	Location       string                 `json:"location"`
	Round          string                 `json:"round"`
	Teams          [2]Team                `json:"teams"`
	Score          scoring.Score          `json:"score"`
	ScoringSystem  scoring.ScoringSystem  `json:"scoringSystem"`
	ThirdSetFormat scoring.ThirdSetFormat `json:"thirdSetFormat"`
	StatisticsType StatisticsType         `json:"statisticsType"`
	IsCompleted    bool                   `json:"isCompleted"`
	Winner         *scoring.Team          `json:"winner,omitempty"`
	Events         []Event                `json:"events"`
}
