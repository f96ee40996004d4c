package match

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-stats/internal/scoring"
)

// New creates a new MatchStore.
func New(db *sql.DB) MatchStore {
	return &store{
		db: db,
	}
}

const matchColumns = `id, date, location, round, teams_json, score_json, scoring_system, third_set_format, statistics_type, is_completed, winner`

// CreateMatch inserts a new match. Its event log must be empty.
func (s *store) CreateMatch(m *Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	teamsJSON, err := json.Marshal(m.Teams)
	if err != nil {
		return err
	}
	scoreJSON, err := json.Marshal(m.Score)
	if err != nil {
		return err
	}

	now := time.Now().Unix()
	_, err = s.db.Exec(`
		INSERT INTO matches (`+matchColumns+`, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.Date.UnixMilli(), m.Location, m.Round, string(teamsJSON), string(scoreJSON),
		m.ScoringSystem, m.ThirdSetFormat, m.StatisticsType, m.IsCompleted, winnerValue(m.Winner), now, now)
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}
	log.Info("Created match", "matchID", m.ID, "location", m.Location, "round", m.Round)
	return nil
}

// GetMatch retrieves a match together with its ordered event log.
func (s *store) GetMatch(matchID string) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT `+matchColumns+` FROM matches WHERE id = ?`, matchID)
	m, err := s.scanMatch(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	m.Events, err = s.loadEvents(matchID)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// GetCurrentMatch retrieves the most recent unfinished match.
func (s *store) GetCurrentMatch() (*Match, error) {
	s.mu.RLock()
	var matchID string
	err := s.db.QueryRow(`SELECT id FROM matches WHERE is_completed = 0 ORDER BY date DESC LIMIT 1`).Scan(&matchID)
	s.mu.RUnlock()
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return s.GetMatch(matchID)
}

// GetAllMatches retrieves all matches, newest first. Event logs are not loaded.
func (s *store) GetAllMatches() ([]*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT ` + matchColumns + ` FROM matches ORDER BY date DESC`)
	if err != nil {
		log.Error("Failed to query all matches", "error", err)
		return nil, err
	}
	defer rows.Close()

	matches := []*Match{}
	for rows.Next() {
		m, err := s.scanMatch(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// AppendEvent appends a rally to the log and stores the resulting score.
func (s *store) AppendEvent(event Event, score scoring.Score, winner *scoring.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	scoreJSON, err := json.Marshal(score)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO match_events (id, match_id, seq, player_id, event_type, shot_type, shot_specification, description, timestamp, winning_team, score_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, event.ID, event.MatchID, event.Seq, event.PlayerID, event.EventType, event.ShotType, event.ShotSpecification,
		event.Description, event.Timestamp.UnixMilli(), int(event.WinningTeam), string(scoreJSON))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to append event: %w", err)
	}

	res, err := tx.Exec(`
		UPDATE matches SET score_json = ?, is_completed = ?, winner = ?, updated_at = ?
		WHERE id = ? AND is_completed = 0
	`, string(scoreJSON), winner != nil, winnerValue(winner), time.Now().Unix(), event.MatchID)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to update score: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		tx.Rollback()
		return fmt.Errorf("%w: no open match %s", ErrMatchNotFound, event.MatchID)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Debug("Appended match event", "matchID", event.MatchID, "seq", event.Seq, "score", score.String())
	return nil
}

// UpdateScore replaces the stored score without touching the event log. Used
// for informational changes such as the current server.
func (s *store) UpdateScore(matchID string, score scoring.Score) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	scoreJSON, err := json.Marshal(score)
	if err != nil {
		return err
	}
	res, err := s.db.Exec("UPDATE matches SET score_json = ?, updated_at = ? WHERE id = ?", string(scoreJSON), time.Now().Unix(), matchID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}
	return nil
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return
	}

	_, err = tx.Exec("DELETE FROM match_events")
	if err != nil {
		log.Error("Failed to clear match_events table", "error", err)
		tx.Rollback()
		return
	}

	_, err = tx.Exec("DELETE FROM matches")
	if err != nil {
		log.Error("Failed to clear matches table", "error", err)
		tx.Rollback()
		return
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing store", "error", err)
	}
}

func (s *store) ClearMatch(matchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing match", "error", err, "matchID", matchID)
		return
	}
	if _, err := tx.Exec("DELETE FROM match_events WHERE match_id = ?", matchID); err != nil {
		log.Error("Failed to clear match events", "error", err, "matchID", matchID)
		tx.Rollback()
		return
	}
	if _, err := tx.Exec("DELETE FROM matches WHERE id = ?", matchID); err != nil {
		log.Error("Failed to clear match", "error", err, "matchID", matchID)
		tx.Rollback()
		return
	}
	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing match", "error", err, "matchID", matchID)
	}
}

// scanMatch is a helper function to scan a single match row.
func (s *store) scanMatch(scanner interface{ Scan(...any) error }) (*Match, error) {
	var (
		m                    Match
		dateMillis           int64
		teamsJSON, scoreJSON string
		winner               sql.NullInt64
	)
	err := scanner.Scan(
		&m.ID, &dateMillis, &m.Location, &m.Round, &teamsJSON, &scoreJSON,
		&m.ScoringSystem, &m.ThirdSetFormat, &m.StatisticsType, &m.IsCompleted, &winner,
	)
	if err != nil {
		return nil, err
	}
	m.Date = time.UnixMilli(dateMillis)
	if err := json.Unmarshal([]byte(teamsJSON), &m.Teams); err != nil {
		return nil, fmt.Errorf("failed to unmarshal teams_json for match %s: %w", m.ID, err)
	}
	if err := json.Unmarshal([]byte(scoreJSON), &m.Score); err != nil {
		return nil, fmt.Errorf("failed to unmarshal score_json for match %s: %w", m.ID, err)
	}
	if winner.Valid {
		w := scoring.Team(winner.Int64)
		m.Winner = &w
	}
	m.Events = []Event{}
	return &m, nil
}

func (s *store) loadEvents(matchID string) ([]Event, error) {
	rows, err := s.db.Query(`
		SELECT id, match_id, seq, player_id, event_type, shot_type, shot_specification, description, timestamp, winning_team, score_json
		FROM match_events WHERE match_id = ? ORDER BY seq
	`, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		var (
			e           Event
			tsMillis    int64
			winningTeam int
			scoreJSON   string
		)
		if err := rows.Scan(&e.ID, &e.MatchID, &e.Seq, &e.PlayerID, &e.EventType, &e.ShotType, &e.ShotSpecification,
			&e.Description, &tsMillis, &winningTeam, &scoreJSON); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		e.Timestamp = time.UnixMilli(tsMillis)
		e.WinningTeam = scoring.Team(winningTeam)
		if err := json.Unmarshal([]byte(scoreJSON), &e.ScoreAfter); err != nil {
			return nil, fmt.Errorf("failed to unmarshal score for event %s: %w", e.ID, err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func winnerValue(w *scoring.Team) any {
	if w == nil {
		return nil
	}
	return int(*w)
}
