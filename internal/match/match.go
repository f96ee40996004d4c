package match

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mauv0809/padel-stats/internal/scoring"
)

var (
	ErrMatchNotFound = errors.New("match not found")
	ErrUnknownPlayer = errors.New("player is not part of the match")
	ErrInvalidEvent  = errors.New("invalid event")
)

func (t EventType) Valid() bool {
	switch t {
	case EventWinner, EventUnforcedError, EventForcedError:
		return true
	}
	return false
}

// Label is the human readable form used in reports, e.g. "unforced error".
func (t EventType) Label() string {
	return strings.ReplaceAll(string(t), "_", " ")
}

func (s ShotType) Valid() bool {
	switch s {
	case ShotSmash, ShotVolley, ShotGroundstroke, ShotLob, ShotReturn, ShotBajada, ShotOther:
		return true
	}
	return false
}

func (s ShotSpecification) Valid() bool {
	switch s {
	case SpecVibora, SpecSmash, SpecForehand, SpecBackhand:
		return true
	}
	return false
}

func (s StatisticsType) Valid() bool {
	return s == StatisticsBasic || s == StatisticsAdvanced
}

// Players returns all four players, team one first.
func (m *Match) Players() []Player {
	return []Player{m.Teams[0].Players[0], m.Teams[0].Players[1], m.Teams[1].Players[0], m.Teams[1].Players[1]}
}

// Player looks up a player by id.
func (m *Match) Player(playerID string) (Player, bool) {
	for _, p := range m.Players() {
		if p.ID == playerID {
			return p, true
		}
	}
	return Player{}, false
}

// TeamOf returns the team index the player plays for.
func (m *Match) TeamOf(playerID string) (scoring.Team, bool) {
	for i, team := range m.Teams {
		for _, p := range team.Players {
			if p.ID == playerID {
				return scoring.Team(i), true
			}
		}
	}
	return 0, false
}

// TeamName is the display name of a team: the players' first names joined by "/".
func (m *Match) TeamName(team scoring.Team) string {
	names := make([]string, 0, 2)
	for _, p := range m.Teams[team].Players {
		names = append(names, firstName(p.Name))
	}
	return strings.Join(names, "/")
}

// Title is "<team 1> vs <team 2>".
func (m *Match) Title() string {
	return fmt.Sprintf("%s vs %s", m.TeamName(scoring.TeamOne), m.TeamName(scoring.TeamTwo))
}

func firstName(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return name
}

// RallyWinner resolves which team won a rally from the player who ended it and
// how. A winner scores for the player's team, an error (forced or unforced)
// gives the point to the opponents.
func (m *Match) RallyWinner(playerID string, eventType EventType) (scoring.Team, error) {
	team, ok := m.TeamOf(playerID)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownPlayer, playerID)
	}
	switch eventType {
	case EventWinner:
		return team, nil
	case EventUnforcedError, EventForcedError:
		return team.Opponent(), nil
	default:
		return 0, fmt.Errorf("%w: unknown event type %q", ErrInvalidEvent, eventType)
	}
}

// ValidateEvent checks the classification of a rally against the match's
// statistics type.
func (m *Match) ValidateEvent(e Event) error {
	if !e.EventType.Valid() {
		return fmt.Errorf("%w: unknown event type %q", ErrInvalidEvent, e.EventType)
	}
	if !e.ShotType.Valid() {
		return fmt.Errorf("%w: unknown shot type %q", ErrInvalidEvent, e.ShotType)
	}
	if e.ShotSpecification != "" && !e.ShotSpecification.Valid() {
		return fmt.Errorf("%w: unknown shot specification %q", ErrInvalidEvent, e.ShotSpecification)
	}
	if m.StatisticsType == StatisticsAdvanced && e.ShotSpecification == "" {
		return fmt.Errorf("%w: advanced statistics need a shot specification", ErrInvalidEvent)
	}
	if _, ok := m.TeamOf(e.PlayerID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, e.PlayerID)
	}
	return nil
}

// Winners returns the rally winner of every event in order, for replay.
func (m *Match) Winners() []scoring.Team {
	winners := make([]scoring.Team, len(m.Events))
	for i, e := range m.Events {
		winners[i] = e.WinningTeam
	}
	return winners
}
