package playtomic

import (
	"errors"
	"time"
)

// ErrIncompleteLineUp is returned when a booking does not hold two full pairs.
var ErrIncompleteLineUp = errors.New("booking does not have two teams of two players")

// SearchMatchesParams defines the parameters for searching for matches.
type SearchMatchesParams struct {
	SportID       string
	HasPlayers    bool
	Sort          string
	TenantIDs     []string
	FromStartDate string
}

// MatchSummary contains the essential details of a match from a search result.
type MatchSummary struct {
	MatchID string  `json:"match_id"`
	OwnerID *string `json:"owner_id,omitempty"`
}

// GameStatus defines the status of a game.
type GameStatus string

const (
	GameStatusPending    GameStatus = "PENDING"
	GameStatusPlayed     GameStatus = "PLAYED"
	GameStatusUnknown    GameStatus = "UNKNOWN"
	GameStatusCanceled   GameStatus = "CANCELED"
	GameStatusWaitingFor GameStatus = "WAITING_FOR"
	GameStatusExpired    GameStatus = "EXPIRED"
	GameStatusInProgress GameStatus = "IN_PROGRESS"
)

// Booking is a court booking with the line-up needed to start tracking a match.
type Booking struct {
	MatchID      string
	Start        time.Time
	ResourceName string
	Tenant       Tenant
	GameStatus   GameStatus
	Teams        []Team
}

// LineUp returns both pairs in booking order.
func (b Booking) LineUp() ([2][2]Player, error) {
	var lineUp [2][2]Player
	if len(b.Teams) != 2 {
		return lineUp, ErrIncompleteLineUp
	}
	for i, team := range b.Teams {
		if len(team.Players) != 2 {
			return lineUp, ErrIncompleteLineUp
		}
		for j, p := range team.Players {
			if p.Name == "" {
				return lineUp, ErrIncompleteLineUp
			}
			lineUp[i][j] = p
		}
	}
	return lineUp, nil
}

// Location describes where the booking is played.
func (b Booking) Location() string {
	switch {
	case b.Tenant.Name != "" && b.ResourceName != "":
		return b.Tenant.Name + ", " + b.ResourceName
	case b.Tenant.Name != "":
		return b.Tenant.Name
	default:
		return b.ResourceName
	}
}

// Team represents a team in a match.
type Team struct {
	ID      string
	Players []Player
}

// Player represents a player in a match.
type Player struct {
	UserID string
	Name   string
	Level  float64
}

// Tenant represents a Playtomic tenant (club).
type Tenant struct {
	ID   string
	Name string
}

// playtomicMatchResponse defines the structure for the JSON response from the Playtomic API for a single match.
type playtomicMatchResponse struct {
	StartDate    string                  `json:"start_date"`
	GameStatus   string                  `json:"game_status"`
	Teams        []playtomicTeamResponse `json:"teams"`
	ResourceName string                  `json:"resource_name"`
	Tenant       playtomicTenant         `json:"tenant"`
}

// playtomicTenant defines the structure for the tenant information in the response.
type playtomicTenant struct {
	ID   string `json:"tenant_id"`
	Name string `json:"tenant_name"`
}

// playtomicTeamResponse defines the structure for a team within the match response.
type playtomicTeamResponse struct {
	TeamID  string                    `json:"team_id"`
	Players []playtomicPlayerResponse `json:"players"`
}

// playtomicPlayerResponse defines the structure for a player within a team.
type playtomicPlayerResponse struct {
	UserID     string   `json:"user_id"`
	Name       string   `json:"name"`
	LevelValue *float64 `json:"level_value"`
}
