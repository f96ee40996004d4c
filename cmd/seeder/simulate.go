package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/mauv0809/padel-stats/internal/match"
	"github.com/mauv0809/padel-stats/internal/recorder"
	"github.com/mauv0809/padel-stats/internal/scoring"
)

// maxRallies bounds a simulated match. An advantage match can in theory go on
// forever.
const maxRallies = 2000

var (
	playerPool = []string{
		"Ana Ruiz", "Bea Gil", "Carla Sanz", "Dora Vidal",
		"Elena Moreno", "Fabio Costa", "Gonzalo Prieto", "Hugo Lozano",
	}
	shotTypes = []match.ShotType{
		match.ShotSmash, match.ShotVolley, match.ShotGroundstroke,
		match.ShotLob, match.ShotReturn, match.ShotBajada, match.ShotOther,
	}
	eventTypes = []match.EventType{
		match.EventWinner, match.EventWinner,
		match.EventUnforcedError, match.EventForcedError,
	}
	locations = []string{"Club Padel Norte, Court 1", "Club Padel Norte, Court 2", "Indoor Arena, Court 4"}
)

type simulator struct {
	rec *recorder.Recorder
	rng *rand.Rand
}

func newSimulator(rec *recorder.Recorder, rng *rand.Rand) *simulator {
	return &simulator{rec: rec, rng: rng}
}

// play starts a match between four random players and plays it to the end.
func (s *simulator) play(ctx context.Context, date time.Time) (*match.Match, error) {
	names := make([]string, len(playerPool))
	copy(names, playerPool)
	s.rng.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })

	setup := recorder.Setup{
		Team1:          [2]string{names[0], names[1]},
		Team2:          [2]string{names[2], names[3]},
		Date:           date,
		Location:       locations[s.rng.Intn(len(locations))],
		Round:          "Simulated Match",
		ScoringSystem:  scoring.NoAd,
		ThirdSetFormat: scoring.SuperTiebreak,
	}
	if s.rng.Intn(3) == 0 {
		setup.ScoringSystem = scoring.Ad
	}
	if s.rng.Intn(3) == 0 {
		setup.ThirdSetFormat = scoring.RegularThirdSet
	}
	m, err := s.rec.CreateMatch(ctx, setup, false)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return s.finish(ctx, m.ID)
}

// finish records random rallies until the match is completed.
func (s *simulator) finish(ctx context.Context, matchID string) (*match.Match, error) {
	players := []string{"p1", "p2", "p3", "p4"}
	for i := 0; i < maxRallies; i++ {
		in := recorder.PointInput{
			PlayerID:  players[s.rng.Intn(len(players))],
			EventType: eventTypes[s.rng.Intn(len(eventTypes))],
			ShotType:  shotTypes[s.rng.Intn(len(shotTypes))],
		}
		m, err := s.rec.RecordPoint(ctx, matchID, in, false)
		if err != nil {
			return nil, fmt.Errorf("failed to record rally %d: %w", i+1, err)
		}
		if m.IsCompleted {
			return m, nil
		}
	}
	return nil, fmt.Errorf("match %s not completed after %d rallies", matchID, maxRallies)
}
