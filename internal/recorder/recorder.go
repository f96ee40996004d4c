// Package recorder applies rallies to tracked matches.
package recorder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/padel-stats/internal/live"
	"github.com/mauv0809/padel-stats/internal/match"
	"github.com/mauv0809/padel-stats/internal/metrics"
	"github.com/mauv0809/padel-stats/internal/notifier"
	"github.com/mauv0809/padel-stats/internal/playtomic"
	"github.com/mauv0809/padel-stats/internal/pubsub"
	"github.com/mauv0809/padel-stats/internal/scoring"
	"github.com/mauv0809/padel-stats/internal/stats"
)

const publishTimeout = 10 * time.Second

// New creates a new Recorder.
func New(
	store match.MatchStore,
	leaderboard stats.LeaderboardStore,
	notifier notifier.Notifier,
	metrics metrics.Metrics,
	counters metrics.MetricsStore,
	pubsub pubsub.PubSubClient,
	broadcaster live.Broadcaster,
	opts ...Option,
) *Recorder {
	r := &Recorder{
		store:       store,
		leaderboard: leaderboard,
		notifier:    notifier,
		metrics:     metrics,
		counters:    counters,
		pubsub:      pubsub,
		live:        broadcaster,
		now:         time.Now,
		newID:       func() string { return uuid.NewString() },
		locks:       newKeyedMutex(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateMatch validates the line-up and starts a new match. Only one match may
// be unfinished at a time.
func (r *Recorder) CreateMatch(ctx context.Context, setup Setup, dryRun bool) (*match.Match, error) {
	if err := setup.Validate(); err != nil {
		return nil, err
	}
	names, err := validatePlayers(setup)
	if err != nil {
		return nil, err
	}

	r.createMu.Lock()
	defer r.createMu.Unlock()

	current, err := r.store.GetCurrentMatch()
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: %s", ErrUnfinishedMatch, current.ID)
	case !errors.Is(err, match.ErrMatchNotFound):
		return nil, fmt.Errorf("failed to look up current match: %w", err)
	}

	m := r.newMatch(setup, names)
	if dryRun {
		log.Info("[Dry Run] Would create match", "matchID", m.ID, "title", m.Title())
		return m, nil
	}
	if err := r.store.CreateMatch(m); err != nil {
		return nil, err
	}

	r.metrics.IncMatchesStarted()
	r.counters.Increment(metrics.KeyMatchesStarted)
	r.publish(ctx, pubsub.EventMatchStarted, pubsub.MatchStartedMessage{
		MatchID:        m.ID,
		Title:          m.Title(),
		Location:       m.Location,
		Round:          m.Round,
		ScoringSystem:  m.ScoringSystem,
		ThirdSetFormat: m.ThirdSetFormat,
		StartedAt:      m.Date,
	})
	if err := r.notifier.SendMatchStarted(ctx, m, false); err != nil {
		log.Error("Failed to send match started notification", "error", err, "matchID", m.ID)
	}
	r.live.Publish(live.SnapshotOf(live.SnapshotStarted, m, r.now()))
	return m, nil
}

func validatePlayers(setup Setup) ([4]string, error) {
	names := [4]string{
		strings.TrimSpace(setup.Team1[0]),
		strings.TrimSpace(setup.Team1[1]),
		strings.TrimSpace(setup.Team2[0]),
		strings.TrimSpace(setup.Team2[1]),
	}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" {
			return names, ErrMissingPlayers
		}
		key := strings.ToLower(name)
		if seen[key] {
			return names, fmt.Errorf("%w: %s", ErrDuplicatePlayers, name)
		}
		seen[key] = true
	}
	return names, nil
}

func (r *Recorder) newMatch(setup Setup, names [4]string) *match.Match {
	m := &match.Match{
		ID:       r.newID(),
		Date:     setup.Date,
		Location: strings.TrimSpace(setup.Location),
		Round:    strings.TrimSpace(setup.Round),
		Teams: [2]match.Team{
			{ID: "t1", Players: [2]match.Player{{ID: "p1", Name: names[0]}, {ID: "p2", Name: names[1]}}},
			{ID: "t2", Players: [2]match.Player{{ID: "p3", Name: names[2]}, {ID: "p4", Name: names[3]}}},
		},
		Score:          scoring.InitialScore(),
		ScoringSystem:  setup.ScoringSystem,
		ThirdSetFormat: setup.ThirdSetFormat,
		StatisticsType: setup.StatisticsType,
		Events:         []match.Event{},
	}
	if m.Date.IsZero() {
		m.Date = r.now()
	}
	if m.Location == "" {
		m.Location = match.DefaultLocation
	}
	if m.Round == "" {
		m.Round = match.DefaultRound
	}
	if m.ScoringSystem == "" {
		m.ScoringSystem = scoring.NoAd
	}
	if m.ThirdSetFormat == "" {
		m.ThirdSetFormat = scoring.RegularThirdSet
	}
	if m.StatisticsType == "" {
		m.StatisticsType = match.StatisticsBasic
	}
	return m
}

// Validate checks the optional configuration of a setup.
func (s Setup) Validate() error {
	if s.ScoringSystem != "" && !s.ScoringSystem.Valid() {
		return fmt.Errorf("%w: unknown scoring system %q", ErrInvalidSetup, s.ScoringSystem)
	}
	if s.ThirdSetFormat != "" && !s.ThirdSetFormat.Valid() {
		return fmt.Errorf("%w: unknown third set format %q", ErrInvalidSetup, s.ThirdSetFormat)
	}
	if s.StatisticsType != "" && !s.StatisticsType.Valid() {
		return fmt.Errorf("%w: unknown statistics type %q", ErrInvalidSetup, s.StatisticsType)
	}
	return nil
}

// SetupFromBooking takes the line-up, start time and venue of a Playtomic
// booking. The first team of the booking becomes team one.
func SetupFromBooking(b playtomic.Booking) (Setup, error) {
	lineUp, err := b.LineUp()
	if err != nil {
		return Setup{}, err
	}
	return Setup{
		Team1:    [2]string{lineUp[0][0].Name, lineUp[0][1].Name},
		Team2:    [2]string{lineUp[1][0].Name, lineUp[1][1].Name},
		Date:     b.Start,
		Location: b.Location(),
	}, nil
}

// RecordPoint applies one rally to the match. Calls for the same match are
// serialised.
func (r *Recorder) RecordPoint(ctx context.Context, matchID string, in PointInput, dryRun bool) (*match.Match, error) {
	startTime := time.Now()
	defer func() {
		r.metrics.ObserveProcessingDuration(float64(time.Since(startTime).Milliseconds()))
	}()

	unlock := r.locks.Lock(matchID)
	defer unlock()

	m, err := r.store.GetMatch(matchID)
	if err != nil {
		return nil, err
	}
	if m.IsCompleted {
		return nil, fmt.Errorf("%w: %s", ErrMatchCompleted, matchID)
	}

	event := match.Event{
		PlayerID:          in.PlayerID,
		EventType:         in.EventType,
		ShotType:          in.ShotType,
		ShotSpecification: in.ShotSpecification,
		Description:       strings.TrimSpace(in.Description),
	}
	if err := m.ValidateEvent(event); err != nil {
		return nil, err
	}
	team, err := m.RallyWinner(event.PlayerID, event.EventType)
	if err != nil {
		return nil, err
	}

	before := m.Score
	after := scoring.Advance(before, team, m.ScoringSystem, m.ThirdSetFormat)

	event.ID = r.newID()
	event.MatchID = m.ID
	event.Seq = len(m.Events) + 1
	event.Timestamp = r.now()
	event.WinningTeam = team
	event.ScoreAfter = after

	var winner *scoring.Team
	if w, ok := scoring.Winner(after); ok {
		winner = &w
	}
	m.Events = append(m.Events, event)
	m.Score = after
	if winner != nil {
		m.IsCompleted = true
		m.Winner = winner
	}

	if dryRun {
		log.Info("[Dry Run] Would record point", "matchID", m.ID, "seq", event.Seq, "score", after.String())
		return m, nil
	}

	if err := r.store.AppendEvent(event, after, winner); err != nil {
		return nil, fmt.Errorf("failed to record point: %w", err)
	}
	log.Debug("Recorded point", "matchID", m.ID, "seq", event.Seq, "team", team, "score", after.String())

	r.metrics.IncPointsRecorded()
	r.counters.Increment(metrics.KeyPointsRecorded)
	if !before.InTiebreak() && after.InTiebreak() {
		r.metrics.IncTiebreaksStarted()
		log.Info("Tiebreak started", "matchID", m.ID, "score", after.String())
	}

	r.publish(ctx, pubsub.EventPointScored, pubsub.PointScoredMessage{
		MatchID:     m.ID,
		Seq:         event.Seq,
		PlayerID:    event.PlayerID,
		EventType:   string(event.EventType),
		WinningTeam: team,
		Score:       after,
	})

	snapshotType := live.SnapshotPoint
	if m.IsCompleted {
		snapshotType = live.SnapshotCompleted
		r.complete(ctx, m)
	}
	r.live.Publish(live.SnapshotOf(snapshotType, m, event.Timestamp))
	return m, nil
}

func (r *Recorder) complete(ctx context.Context, m *match.Match) {
	log.Info("Match completed", "matchID", m.ID, "winner", m.TeamName(*m.Winner), "points", len(m.Events))
	r.metrics.IncMatchesCompleted()
	r.counters.Increment(metrics.KeyMatchesCompleted)

	r.publish(ctx, pubsub.EventMatchCompleted, pubsub.MatchCompletedMessage{
		MatchID:    m.ID,
		Winner:     *m.Winner,
		FinalScore: m.Score,
		Points:     len(m.Events),
	})

	if err := r.notifier.SendResultNotification(ctx, m, false); err != nil {
		log.Error("Failed to send result notification", "error", err, "matchID", m.ID)
	} else {
		r.counters.Increment(metrics.KeySlackSent)
	}

	if r.leaderboardViaBroker {
		log.Debug("Leaderboard update left to the broker", "matchID", m.ID)
		return
	}
	if _, err := r.leaderboard.RecordResult(m); err != nil {
		log.Error("Failed to update leaderboard", "error", err, "matchID", m.ID)
	}
}

// RecordResult adds a completed match to the leaderboard. Recording the same
// match twice is a no-op.
func (r *Recorder) RecordResult(ctx context.Context, matchID string) (bool, error) {
	m, err := r.store.GetMatch(matchID)
	if err != nil {
		return false, err
	}
	recorded, err := r.leaderboard.RecordResult(m)
	if err != nil {
		return false, err
	}
	if !recorded {
		log.Info("Match already on the leaderboard", "matchID", matchID)
	}
	return recorded, nil
}

// SetServer records who serves next. It does not change the score.
func (r *Recorder) SetServer(ctx context.Context, matchID, playerID string, dryRun bool) (*match.Match, error) {
	unlock := r.locks.Lock(matchID)
	defer unlock()

	m, err := r.store.GetMatch(matchID)
	if err != nil {
		return nil, err
	}
	if m.IsCompleted {
		return nil, fmt.Errorf("%w: %s", ErrMatchCompleted, matchID)
	}
	if _, ok := m.Player(playerID); !ok {
		return nil, fmt.Errorf("%w: %s", match.ErrUnknownPlayer, playerID)
	}
	m.Score = m.Score.WithServer(playerID)
	if dryRun {
		log.Info("[Dry Run] Would set server", "matchID", matchID, "playerID", playerID)
		return m, nil
	}
	if err := r.store.UpdateScore(matchID, m.Score); err != nil {
		return nil, err
	}
	r.live.Publish(live.SnapshotOf(live.SnapshotServer, m, r.now()))
	return m, nil
}

// Replay recomputes the score from the event log. It returns the recomputed
// score and ErrScoreMismatch when it differs from what is stored, either after
// any single event or at the end.
func (r *Recorder) Replay(ctx context.Context, matchID string) (scoring.Score, error) {
	m, err := r.store.GetMatch(matchID)
	if err != nil {
		return scoring.Score{}, err
	}
	return replay(m)
}

func replay(m *match.Match) (score scoring.Score, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrScoreMismatch, rec)
		}
	}()

	score = scoring.InitialScore()
	for _, e := range m.Events {
		score = scoring.Advance(score, e.WinningTeam, m.ScoringSystem, m.ThirdSetFormat)
		if !sameScore(score, e.ScoreAfter) {
			return score, fmt.Errorf("%w: event %d gives %s, log has %s", ErrScoreMismatch, e.Seq, score, e.ScoreAfter)
		}
	}
	score.CurrentServer = m.Score.CurrentServer
	if !sameScore(score, m.Score) {
		return score, fmt.Errorf("%w: replay gives %s, stored %s", ErrScoreMismatch, score, m.Score)
	}
	_, won := scoring.Winner(score)
	if won != m.IsCompleted {
		return score, fmt.Errorf("%w: completion flag is %t", ErrScoreMismatch, m.IsCompleted)
	}
	return score, nil
}

// sameScore compares scores ignoring the server.
func sameScore(a, b scoring.Score) bool {
	if a.Sets != b.Sets || a.Games != b.Games {
		return false
	}
	pa, okA := a.Points()
	pb, okB := b.Points()
	if okA != okB || pa != pb {
		return false
	}
	ta, _ := a.Tiebreak()
	tb, _ := b.Tiebreak()
	return ta == tb
}

func (r *Recorder) publish(ctx context.Context, topic pubsub.EventType, data any) {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := r.pubsub.SendMessage(ctx, topic, data); err != nil {
		r.metrics.IncBrokerPublishFailed()
		log.Error("Failed to publish message", "error", err, "topic", topic)
	}
}
