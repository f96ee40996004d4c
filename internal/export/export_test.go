package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/mauv0809/padel-stats/internal/match"
	"github.com/mauv0809/padel-stats/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testMatch() *match.Match {
	m := &match.Match{
		ID:       "m1",
		Date:     time.Date(2024, 5, 17, 18, 0, 0, 0, time.UTC),
		Location: "Club Padel Norte",
		Round:    "Semi Final",
		Teams: [2]match.Team{
			{ID: "t1", Players: [2]match.Player{{ID: "p1", Name: "Ana Ruiz"}, {ID: "p2", Name: "Bea Gil"}}},
			{ID: "t2", Players: [2]match.Player{{ID: "p3", Name: "Carla Sanz"}, {ID: "p4", Name: "Dora Vidal"}}},
		},
		Score:          scoring.InitialScore(),
		ScoringSystem:  scoring.Ad,
		ThirdSetFormat: scoring.RegularThirdSet,
		StatisticsType: match.StatisticsAdvanced,
	}
	ts := time.Date(2024, 5, 17, 18, 5, 30, 0, time.UTC)
	add := func(playerID string, et match.EventType, st match.ShotType, spec match.ShotSpecification, desc string) {
		winner, err := m.RallyWinner(playerID, et)
		if err != nil {
			winner = scoring.TeamOne
		}
		m.Score = scoring.Advance(m.Score, winner, m.ScoringSystem, m.ThirdSetFormat)
		m.Events = append(m.Events, match.Event{
			ID: "e", MatchID: m.ID, Seq: len(m.Events) + 1, PlayerID: playerID,
			EventType: et, ShotType: st, ShotSpecification: spec, Description: desc,
			Timestamp: ts.Add(time.Duration(len(m.Events)) * time.Minute), WinningTeam: winner, ScoreAfter: m.Score,
		})
	}
	add("p1", match.EventWinner, match.ShotSmash, match.SpecVibora, "x3, out of the court")
	add("p3", match.EventUnforcedError, match.ShotBajada, match.SpecForehand, "")
	add("p9", match.EventWinner, match.ShotLob, match.SpecBackhand, "")
	return m
}

func TestWriteCSV(t *testing.T) {
	m := testMatch()
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, m))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, Headers, records[0])

	assert.Equal(t, []string{
		"1715969130000", "2024-05-17", "18:05:30", "Ana Ruiz", "Ana/Bea", "winner", "smash", "vibora",
		"x3, out of the court", "0-0", "0-0", "15-0",
	}, records[1])

	assert.Equal(t, "unforced error", records[2][5])
	assert.Equal(t, "Carla/Dora", records[2][4])
	assert.Equal(t, "30-0", records[2][11])

	assert.Equal(t, "Unknown", records[3][3])
	assert.Equal(t, "", records[3][4])
}

func TestWriteCSV_NoEvents(t *testing.T) {
	m := testMatch()
	m.Events = nil
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, m))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestScoreColumns(t *testing.T) {
	sets, games, points := ScoreColumns(scoring.Score{Sets: [2]int{1, 0}, Games: [2]int{6, 6}, Phase: scoring.Tiebreak{Points: [2]int{3, 5}}})
	assert.Equal(t, "1-0", sets)
	assert.Equal(t, "6-6", games)
	assert.Equal(t, "3-5", points)

	_, _, points = ScoreColumns(scoring.Score{Phase: scoring.RegularPlay{Points: [2]scoring.Point{scoring.Forty, scoring.Advantage}}})
	assert.Equal(t, "40-Ad", points)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "paddle_match_2024-05-17_Ana-Bea_vs_Carla-Dora.csv", Filename(testMatch()))
}

func TestWriteYAML(t *testing.T) {
	m := testMatch()
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, m))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))

	meta := decoded["Match"].(map[string]any)
	assert.Equal(t, "Ana/Bea vs Carla/Dora", meta["title"])
	assert.Equal(t, "Semi Final", meta["round"])
	assert.Equal(t, "ad", meta["scoring system"])
	assert.Equal(t, false, meta["completed"])

	score := decoded["Score"].(map[string]any)
	assert.Equal(t, "0-0", score["sets"])
	assert.Equal(t, "40-0", score["points"])

	summary := decoded["Summary"].(map[string]any)
	assert.Equal(t, 3, summary["total_points"])
	assert.Equal(t, "Match not completed", summary["winner"])

	assert.Len(t, decoded["Players"], 4)
	assert.Len(t, decoded["Teams"], 2)
}
