package stats_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/mauv0809/padel-stats/internal/match"
	"github.com/mauv0809/padel-stats/internal/scoring"
	"github.com/mauv0809/padel-stats/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatch(id string) *match.Match {
	return &match.Match{
		ID:       id,
		Date:     time.UnixMilli(1700000000000),
		Location: match.DefaultLocation,
		Round:    match.DefaultRound,
		Teams: [2]match.Team{
			{ID: "t1", Players: [2]match.Player{{ID: "p1", Name: "Ana Ruiz"}, {ID: "p2", Name: "Bea Gil"}}},
			{ID: "t2", Players: [2]match.Player{{ID: "p3", Name: "Carla Sanz"}, {ID: "p4", Name: "Dora Vidal"}}},
		},
		Score:          scoring.InitialScore(),
		ScoringSystem:  scoring.NoAd,
		ThirdSetFormat: scoring.SuperTiebreak,
		StatisticsType: match.StatisticsBasic,
		Events:         []match.Event{},
	}
}

// play appends one event per rally. Team one wins its rallies with smashes by
// p1, team two wins its rallies from unforced errors by p2.
func play(m *match.Match, winners ...scoring.Team) {
	for _, w := range winners {
		e := match.Event{
			ID:        fmt.Sprintf("%s-%d", m.ID, len(m.Events)+1),
			MatchID:   m.ID,
			Seq:       len(m.Events) + 1,
			Timestamp: time.UnixMilli(1700000000000 + int64(len(m.Events))),
		}
		if w == scoring.TeamOne {
			e.PlayerID, e.EventType, e.ShotType = "p1", match.EventWinner, match.ShotSmash
		} else {
			e.PlayerID, e.EventType, e.ShotType = "p2", match.EventUnforcedError, match.ShotVolley
			e.Description = "into the net"
		}
		e.WinningTeam = w
		m.Score = scoring.Advance(m.Score, w, m.ScoringSystem, m.ThirdSetFormat)
		e.ScoreAfter = m.Score
		m.Events = append(m.Events, e)
	}
	if winner, ok := scoring.Winner(m.Score); ok {
		m.IsCompleted = true
		m.Winner = &winner
	}
}

func repeat(t scoring.Team, n int) []scoring.Team {
	out := make([]scoring.Team, n)
	for i := range out {
		out[i] = t
	}
	return out
}

// threeSetter is 7-6(0) 0-6 [10-0] for team one.
func threeSetter(id string) *match.Match {
	m := newMatch(id)
	for i := 0; i < 6; i++ {
		play(m, repeat(scoring.TeamOne, 4)...)
		play(m, repeat(scoring.TeamTwo, 4)...)
	}
	play(m, repeat(scoring.TeamOne, 7)...)
	play(m, repeat(scoring.TeamTwo, 24)...)
	play(m, repeat(scoring.TeamOne, 10)...)
	return m
}

func TestForPlayer(t *testing.T) {
	m := newMatch("m1")
	play(m, scoring.TeamOne, scoring.TeamTwo, scoring.TeamTwo)
	m.Events = append(m.Events, match.Event{PlayerID: "p1", EventType: match.EventForcedError, ShotType: match.ShotLob, ShotSpecification: match.SpecBackhand, WinningTeam: scoring.TeamTwo})

	p1 := stats.ForPlayer(m, "p1")
	assert.Equal(t, "Ana Ruiz", p1.PlayerName)
	assert.Equal(t, scoring.TeamOne, p1.Team)
	assert.Equal(t, 1, p1.Winners)
	assert.Equal(t, 1, p1.ForcedErrors)
	assert.Equal(t, 0, p1.UnforcedErrors)
	assert.Equal(t, 2, p1.Total())
	assert.Equal(t, 1, p1.TeamPointsWon)
	assert.Equal(t, map[match.ShotType]int{match.ShotSmash: 1, match.ShotLob: 1}, p1.ByShotType)
	assert.Equal(t, map[match.ShotSpecification]int{match.SpecBackhand: 1}, p1.BySpecification)

	p2 := stats.ForPlayer(m, "p2")
	assert.Equal(t, 2, p2.UnforcedErrors)
	assert.Equal(t, 2, p2.ByShotType[match.ShotVolley])

	p4 := stats.ForPlayer(m, "p4")
	assert.Equal(t, scoring.TeamTwo, p4.Team)
	assert.Zero(t, p4.Total())
	assert.Equal(t, 3, p4.TeamPointsWon, "partners share the team's points")

	unknown := stats.ForPlayer(m, "p9")
	assert.Zero(t, unknown.TeamPointsWon)

	summary := stats.Summarize(m)
	assert.Equal(t, summary.PointsWon[scoring.TeamOne], p1.TeamPointsWon)
	assert.Equal(t, summary.PointsWon[scoring.TeamTwo], p4.TeamPointsWon)

	all := stats.ForAllPlayers(m)
	require.Len(t, all, 4)
	assert.Equal(t, "p3", all[2].PlayerID)
}

func TestSummarize(t *testing.T) {
	t.Run("in progress", func(t *testing.T) {
		m := newMatch("m1")
		play(m, scoring.TeamOne, scoring.TeamTwo, scoring.TeamOne)

		s := stats.Summarize(m)
		assert.Equal(t, 3, s.TotalPoints)
		assert.Equal(t, 2, s.Winners)
		assert.Equal(t, 1, s.UnforcedErrors)
		assert.Equal(t, 0, s.ForcedErrors)
		assert.Equal(t, 1, s.EventsWithDescription)
		assert.Equal(t, [2]int{2, 1}, s.PointsWon)
		assert.Equal(t, stats.NotCompleted, s.Winner)
		assert.Empty(t, s.Sets)
	})

	t.Run("blank descriptions are not counted", func(t *testing.T) {
		m := newMatch("m1")
		play(m, scoring.TeamTwo)
		m.Events[0].Description = "   "
		assert.Equal(t, 0, stats.Summarize(m).EventsWithDescription)
	})

	t.Run("completed three setter", func(t *testing.T) {
		m := threeSetter("m1")
		require.True(t, m.IsCompleted)

		s := stats.Summarize(m)
		assert.Equal(t, 89, s.TotalPoints)
		assert.Equal(t, [2]int{41, 48}, s.PointsWon)
		assert.Equal(t, [2]int{8, 12}, s.GamesWon)
		assert.Equal(t, "Ana/Bea", s.Winner)

		require.Len(t, s.Sets, 3)
		assert.Equal(t, [2]int{7, 6}, s.Sets[0].Games)
		require.NotNil(t, s.Sets[0].Tiebreak)
		assert.Equal(t, [2]int{7, 0}, *s.Sets[0].Tiebreak)
		assert.False(t, s.Sets[0].SuperTiebreak)

		assert.Equal(t, [2]int{0, 6}, s.Sets[1].Games)
		assert.Nil(t, s.Sets[1].Tiebreak)
		assert.Equal(t, scoring.TeamTwo, s.Sets[1].Winner())

		assert.True(t, s.Sets[2].SuperTiebreak)
		assert.Equal(t, [2]int{1, 0}, s.Sets[2].Games)
		assert.Equal(t, [2]int{10, 0}, *s.Sets[2].Tiebreak)
	})
}
