package stats

import (
	"database/sql"
	"sync"

	"github.com/mauv0809/padel-stats/internal/match"
	"github.com/mauv0809/padel-stats/internal/scoring"
)

// NotCompleted is reported as the winner of a match still in progress.
const NotCompleted = "Match not completed"

// store handles the cross-match leaderboard.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// PlayerStats counts how one player ended rallies in a single match.
// TeamPointsWon is the number of rallies won by the player's team.
type PlayerStats struct {
	PlayerID        string                          `json:"playerId" yaml:"player_id"`
	PlayerName      string                          `json:"playerName" yaml:"player_name"`
	Team            scoring.Team                    `json:"team" yaml:"team"`
	TeamPointsWon   int                             `json:"teamPointsWon" yaml:"team_points_won"`
	Winners         int                             `json:"winners" yaml:"winners"`
	UnforcedErrors  int                             `json:"unforcedErrors" yaml:"unforced_errors"`
	ForcedErrors    int                             `json:"forcedErrors" yaml:"forced_errors"`
	ByShotType      map[match.ShotType]int          `json:"byShotType" yaml:"by_shot_type"`
	BySpecification map[match.ShotSpecification]int `json:"bySpecification,omitempty" yaml:"by_specification,omitempty"`
}

// Total is the number of rallies the player ended.
func (p PlayerStats) Total() int {
	return p.Winners + p.UnforcedErrors + p.ForcedErrors
}

// Summary is the match level overview.
type Summary struct {
	TotalPoints           int         `json:"totalPoints" yaml:"total_points"`
	Winners               int         `json:"winners" yaml:"winners"`
	UnforcedErrors        int         `json:"unforcedErrors" yaml:"unforced_errors"`
	ForcedErrors          int         `json:"forcedErrors" yaml:"forced_errors"`
	EventsWithDescription int         `json:"eventsWithDescription" yaml:"events_with_description"`
	PointsWon             [2]int      `json:"pointsWon" yaml:"points_won"`
	GamesWon              [2]int      `json:"gamesWon" yaml:"games_won"`
	Sets                  []SetResult `json:"sets" yaml:"sets"`
	Winner                string      `json:"winner" yaml:"winner"`
}

// SetResult is the final games of one completed set. A super tiebreak is
// reported as a 1-0 set with its points in Tiebreak.
type SetResult struct {
	Games         [2]int  `json:"games" yaml:"games"`
	Tiebreak      *[2]int `json:"tiebreak,omitempty" yaml:"tiebreak,omitempty"`
	SuperTiebreak bool    `json:"superTiebreak,omitempty" yaml:"super_tiebreak,omitempty"`
}

// Winner returns the team that took the set.
func (s SetResult) Winner() scoring.Team {
	if s.Games[1] > s.Games[0] {
		return scoring.TeamTwo
	}
	return scoring.TeamOne
}

// PlayerRecord represents a player's lifetime results for the leaderboard.
type PlayerRecord struct {
	PlayerName    string  `json:"player_name"`
	MatchesPlayed int     `json:"matches_played"`
	MatchesWon    int     `json:"matches_won"`
	MatchesLost   int     `json:"matches_lost"`
	SetsWon       int     `json:"sets_won"`
	SetsLost      int     `json:"sets_lost"`
	GamesWon      int     `json:"games_won"`
	GamesLost     int     `json:"games_lost"`
	PointsWon     int     `json:"points_won"`
	WinPercentage float64 `json:"win_percentage"`
}
