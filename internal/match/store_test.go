package match_test

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/mauv0809/padel-stats/internal/database"
	"github.com/mauv0809/padel-stats/internal/match"
	"github.com/mauv0809/padel-stats/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (match.MatchStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	return match.New(db), db, dbTeardown
}

func newMatch(id string, date time.Time) *match.Match {
	return &match.Match{
		ID:       id,
		Date:     date,
		Location: "Club Padel Norte",
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

func pointEvent(matchID string, seq int, playerID string, winner scoring.Team, after scoring.Score) match.Event {
	return match.Event{
		ID:          fmt.Sprintf("%s-e%d", matchID, seq),
		MatchID:     matchID,
		Seq:         seq,
		PlayerID:    playerID,
		EventType:   match.EventWinner,
		ShotType:    match.ShotSmash,
		Description: "down the line",
		Timestamp:   time.UnixMilli(1700000000000 + int64(seq)),
		WinningTeam: winner,
		ScoreAfter:  after,
	}
}

func TestCreateAndGetMatch(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	date := time.UnixMilli(1700000000000)
	require.NoError(t, store.CreateMatch(newMatch("m1", date)))

	got, err := store.GetMatch("m1")
	require.NoError(t, err)
	assert.Equal(t, "m1", got.ID)
	assert.Equal(t, date.UnixMilli(), got.Date.UnixMilli())
	assert.Equal(t, "Club Padel Norte", got.Location)
	assert.Equal(t, "Carla Sanz", got.Teams[1].Players[0].Name)
	assert.Equal(t, scoring.InitialScore(), got.Score)
	assert.Equal(t, scoring.NoAd, got.ScoringSystem)
	assert.Equal(t, scoring.SuperTiebreak, got.ThirdSetFormat)
	assert.False(t, got.IsCompleted)
	assert.Nil(t, got.Winner)
	assert.Empty(t, got.Events)
}

func TestGetMatch_NotFound(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.GetMatch("missing")
	assert.ErrorIs(t, err, match.ErrMatchNotFound)
}

func TestGetCurrentMatch(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.GetCurrentMatch()
	assert.ErrorIs(t, err, match.ErrMatchNotFound)

	require.NoError(t, store.CreateMatch(newMatch("m1", time.UnixMilli(1000))))
	current, err := store.GetCurrentMatch()
	require.NoError(t, err)
	assert.Equal(t, "m1", current.ID)

	_, err = db.Exec("UPDATE matches SET is_completed = 1 WHERE id = 'm1'")
	require.NoError(t, err)
	_, err = store.GetCurrentMatch()
	assert.ErrorIs(t, err, match.ErrMatchNotFound)
}

func TestGetAllMatches_NewestFirst(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.CreateMatch(newMatch("old", time.UnixMilli(1000))))
	require.NoError(t, store.CreateMatch(newMatch("new", time.UnixMilli(2000))))

	all, err := store.GetAllMatches()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "new", all[0].ID)
	assert.Equal(t, "old", all[1].ID)
}

func TestAppendEvent(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.CreateMatch(newMatch("m1", time.UnixMilli(1000))))

	s1 := scoring.Advance(scoring.InitialScore(), scoring.TeamOne, scoring.NoAd, scoring.SuperTiebreak)
	s2 := scoring.Advance(s1, scoring.TeamTwo, scoring.NoAd, scoring.SuperTiebreak)
	require.NoError(t, store.AppendEvent(pointEvent("m1", 1, "p1", scoring.TeamOne, s1), s1, nil))
	require.NoError(t, store.AppendEvent(pointEvent("m1", 2, "p3", scoring.TeamTwo, s2), s2, nil))

	got, err := store.GetMatch("m1")
	require.NoError(t, err)
	assert.Equal(t, s2, got.Score)
	require.Len(t, got.Events, 2)
	assert.Equal(t, 1, got.Events[0].Seq)
	assert.Equal(t, "p1", got.Events[0].PlayerID)
	assert.Equal(t, s1, got.Events[0].ScoreAfter)
	assert.Equal(t, scoring.TeamTwo, got.Events[1].WinningTeam)
	assert.Equal(t, int64(1700000000002), got.Events[1].Timestamp.UnixMilli())
	assert.Equal(t, []scoring.Team{scoring.TeamOne, scoring.TeamTwo}, got.Winners())
}

func TestAppendEvent_DuplicateSeqRollsBack(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.CreateMatch(newMatch("m1", time.UnixMilli(1000))))
	s1 := scoring.Advance(scoring.InitialScore(), scoring.TeamOne, scoring.NoAd, scoring.SuperTiebreak)
	require.NoError(t, store.AppendEvent(pointEvent("m1", 1, "p1", scoring.TeamOne, s1), s1, nil))

	s2 := scoring.Advance(s1, scoring.TeamOne, scoring.NoAd, scoring.SuperTiebreak)
	dup := pointEvent("m1", 1, "p1", scoring.TeamOne, s2)
	dup.ID = "other"
	assert.Error(t, store.AppendEvent(dup, s2, nil))

	got, err := store.GetMatch("m1")
	require.NoError(t, err)
	assert.Equal(t, s1, got.Score, "score must not change when the event insert fails")
	assert.Len(t, got.Events, 1)
}

func TestAppendEvent_CompletesMatch(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.CreateMatch(newMatch("m1", time.UnixMilli(1000))))

	final := scoring.Score{Sets: [2]int{0, 2}, Phase: scoring.RegularPlay{}}
	winner := scoring.TeamTwo
	require.NoError(t, store.AppendEvent(pointEvent("m1", 1, "p3", scoring.TeamTwo, final), final, &winner))

	got, err := store.GetMatch("m1")
	require.NoError(t, err)
	assert.True(t, got.IsCompleted)
	require.NotNil(t, got.Winner)
	assert.Equal(t, scoring.TeamTwo, *got.Winner)

	// A completed match accepts no further events.
	err = store.AppendEvent(pointEvent("m1", 2, "p3", scoring.TeamTwo, final), final, &winner)
	assert.ErrorIs(t, err, match.ErrMatchNotFound)
}

func TestScoreRoundTripInEveryPhase(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.CreateMatch(newMatch("m1", time.UnixMilli(1000))))

	scores := map[string]scoring.Score{
		"advantage":      {Sets: [2]int{1, 0}, Games: [2]int{2, 3}, Phase: scoring.RegularPlay{Points: [2]scoring.Point{scoring.Advantage, scoring.Forty}}},
		"tiebreak":       {Games: [2]int{6, 6}, Phase: scoring.Tiebreak{Points: [2]int{5, 4}}},
		"super tiebreak": {Sets: [2]int{1, 1}, Phase: scoring.Tiebreak{Points: [2]int{9, 8}, Final: true}, CurrentServer: "p2"},
	}
	for name, s := range scores {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.UpdateScore("m1", s))
			got, err := store.GetMatch("m1")
			require.NoError(t, err)
			assert.Equal(t, s, got.Score)
		})
	}
}

func TestUpdateScore_NotFound(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	err := store.UpdateScore("missing", scoring.InitialScore())
	assert.ErrorIs(t, err, match.ErrMatchNotFound)
}

func TestClear(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.CreateMatch(newMatch("m1", time.UnixMilli(1000))))
	require.NoError(t, store.CreateMatch(newMatch("m2", time.UnixMilli(2000))))
	s1 := scoring.Advance(scoring.InitialScore(), scoring.TeamOne, scoring.NoAd, scoring.SuperTiebreak)
	require.NoError(t, store.AppendEvent(pointEvent("m1", 1, "p1", scoring.TeamOne, s1), s1, nil))

	store.ClearMatch("m1")
	_, err := store.GetMatch("m1")
	assert.ErrorIs(t, err, match.ErrMatchNotFound)
	_, err = store.GetMatch("m2")
	assert.NoError(t, err)

	store.Clear()
	all, err := store.GetAllMatches()
	require.NoError(t, err)
	assert.Empty(t, all)
}
