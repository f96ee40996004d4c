// Package stats derives per-player and per-match statistics from a match's
// event log and keeps the cross-match leaderboard.
package stats

import (
	"strings"

	"github.com/mauv0809/padel-stats/internal/match"
	"github.com/mauv0809/padel-stats/internal/scoring"
)

// ForPlayer counts the rallies a player ended in the match.
func ForPlayer(m *match.Match, playerID string) PlayerStats {
	ps := PlayerStats{
		PlayerID:        playerID,
		ByShotType:      make(map[match.ShotType]int),
		BySpecification: make(map[match.ShotSpecification]int),
	}
	if p, ok := m.Player(playerID); ok {
		ps.PlayerName = p.Name
	}
	team, known := m.TeamOf(playerID)
	if known {
		ps.Team = team
	}
	for _, e := range m.Events {
		if known && e.WinningTeam == team {
			ps.TeamPointsWon++
		}
		if e.PlayerID != playerID {
			continue
		}
		switch e.EventType {
		case match.EventWinner:
			ps.Winners++
		case match.EventUnforcedError:
			ps.UnforcedErrors++
		case match.EventForcedError:
			ps.ForcedErrors++
		}
		ps.ByShotType[e.ShotType]++
		if e.ShotSpecification != "" {
			ps.BySpecification[e.ShotSpecification]++
		}
	}
	return ps
}

// ForAllPlayers returns the statistics of all four players, team one first.
func ForAllPlayers(m *match.Match) []PlayerStats {
	players := m.Players()
	out := make([]PlayerStats, 0, len(players))
	for _, p := range players {
		out = append(out, ForPlayer(m, p.ID))
	}
	return out
}

// Summarize builds the match overview.
func Summarize(m *match.Match) Summary {
	s := Summary{
		TotalPoints: len(m.Events),
		Winner:      NotCompleted,
	}
	for _, e := range m.Events {
		switch e.EventType {
		case match.EventWinner:
			s.Winners++
		case match.EventUnforcedError:
			s.UnforcedErrors++
		case match.EventForcedError:
			s.ForcedErrors++
		}
		if strings.TrimSpace(e.Description) != "" {
			s.EventsWithDescription++
		}
		s.PointsWon[e.WinningTeam]++
	}
	s.Sets, s.GamesWon = SetHistory(m)
	if m.IsCompleted && m.Winner != nil {
		s.Winner = m.TeamName(*m.Winner)
	}
	return s
}

// SetHistory reconstructs the completed sets and the games each team won from
// the event log. The rally that closes a game is always won by the team that
// takes the game, so comparing consecutive scores is enough.
func SetHistory(m *match.Match) ([]SetResult, [2]int) {
	sets := []SetResult{}
	var games [2]int
	prev := scoring.InitialScore()
	for _, e := range m.Events {
		next := e.ScoreAfter
		w := e.WinningTeam
		switch {
		case next.Sets != prev.Sets:
			games[w]++
			sets = append(sets, closedSet(prev, w))
		case next.Games != prev.Games:
			games[w]++
		}
		prev = next
	}
	return sets, games
}

func closedSet(before scoring.Score, winner scoring.Team) SetResult {
	if tb, ok := before.Tiebreak(); ok {
		points := tb.Points
		points[winner]++
		if tb.Final {
			var g [2]int
			g[winner] = 1
			return SetResult{Games: g, Tiebreak: &points, SuperTiebreak: true}
		}
		g := before.Games
		g[winner]++
		return SetResult{Games: g, Tiebreak: &points}
	}
	g := before.Games
	g[winner]++
	return SetResult{Games: g}
}
