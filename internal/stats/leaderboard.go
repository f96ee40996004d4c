package stats

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-stats/internal/match"
)

var (
	ErrPlayerNotFound   = errors.New("player not found")
	ErrMatchNotComplete = errors.New("match is not completed")
)

// New creates a new LeaderboardStore.
func New(db *sql.DB) LeaderboardStore {
	return &store{
		db: db,
	}
}

// RecordResult aggregates a completed match into player_stats. The match id is
// remembered so duplicate deliveries from the broker are ignored.
func (s *store) RecordResult(m *match.Match) (bool, error) {
	if !m.IsCompleted || m.Winner == nil {
		return false, fmt.Errorf("%w: %s", ErrMatchNotComplete, m.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction for stats update: %w", err)
	}

	res, err := tx.Exec(`INSERT INTO recorded_results (match_id, recorded_at) VALUES (?, ?) ON CONFLICT(match_id) DO NOTHING`, m.ID, time.Now().Unix())
	if err != nil {
		tx.Rollback()
		return false, fmt.Errorf("failed to mark result as recorded: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		tx.Rollback()
		log.Info("Result already recorded, skipping", "matchID", m.ID)
		return false, nil
	}

	summary := Summarize(m)
	winner := *m.Winner
	now := time.Now().Unix()
	for i, team := range m.Teams {
		won := i == int(winner)
		opp := 1 - i
		var matchesWon, matchesLost int
		if won {
			matchesWon = 1
		} else {
			matchesLost = 1
		}
		for _, player := range team.Players {
			_, err := tx.Exec(`
				INSERT INTO player_stats (player_name, matches_played, matches_won, matches_lost, sets_won, sets_lost, games_won, games_lost, points_won, updated_at)
				VALUES (?, 1, ?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(player_name) DO UPDATE SET
					matches_played = matches_played + 1,
					matches_won = matches_won + excluded.matches_won,
					matches_lost = matches_lost + excluded.matches_lost,
					sets_won = sets_won + excluded.sets_won,
					sets_lost = sets_lost + excluded.sets_lost,
					games_won = games_won + excluded.games_won,
					games_lost = games_lost + excluded.games_lost,
					points_won = points_won + excluded.points_won,
					updated_at = excluded.updated_at;
			`, player.Name, matchesWon, matchesLost, m.Score.Sets[i], m.Score.Sets[opp],
				summary.GamesWon[i], summary.GamesWon[opp], summary.PointsWon[i], now)
			if err != nil {
				tx.Rollback()
				log.Error("Failed to execute player_stats statement", "error", err, "player", player.Name)
				return false, fmt.Errorf("failed to update stats for %s: %w", player.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit player_stats transaction: %w", err)
	}
	log.Info("Updated player stats", "matchID", m.ID, "winner", m.TeamName(winner))
	return true, nil
}

const recordColumns = `player_name, matches_played, matches_won, matches_lost, sets_won, sets_lost, games_won, games_lost, points_won`

func (s *store) Leaderboard() ([]PlayerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT ` + recordColumns + `
		FROM player_stats
		ORDER BY matches_won DESC, sets_won DESC, games_won DESC, player_name ASC;
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []PlayerRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// PlayerByName retrieves a single player's record. It prefers an exact,
// case-insensitive match and falls back to a fuzzy search (e.g., "ana" will
// match "Ana Ruiz").
func (s *store) PlayerByName(name string) (*PlayerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT ` + recordColumns + `
		FROM player_stats
		WHERE player_name LIKE ? COLLATE NOCASE
		ORDER BY (player_name = ? COLLATE NOCASE) DESC, matches_played DESC
		LIMIT 1
	`
	pattern := "%" + name + "%"
	rec, err := scanRecord(s.db.QueryRow(query, pattern, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Info("No stats found for player matching pattern", "pattern", pattern)
			return nil, fmt.Errorf("%w: '%s'", ErrPlayerNotFound, name)
		}
		log.Error("Failed to query player stats by name", "error", err, "pattern", pattern)
		return nil, fmt.Errorf("database error: %w", err)
	}
	log.Debug("Found player stats by name", "player", rec.PlayerName)
	return rec, nil
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing leaderboard", "error", err)
		return
	}
	for _, table := range []string{"player_stats", "recorded_results"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "error", err, "table", table)
			tx.Rollback()
			return
		}
	}
	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing leaderboard", "error", err)
	}
}

func scanRecord(scanner interface{ Scan(...any) error }) (*PlayerRecord, error) {
	var rec PlayerRecord
	err := scanner.Scan(
		&rec.PlayerName,
		&rec.MatchesPlayed,
		&rec.MatchesWon,
		&rec.MatchesLost,
		&rec.SetsWon,
		&rec.SetsLost,
		&rec.GamesWon,
		&rec.GamesLost,
		&rec.PointsWon,
	)
	if err != nil {
		return nil, err
	}
	if rec.MatchesPlayed > 0 {
		rec.WinPercentage = (float64(rec.MatchesWon) / float64(rec.MatchesPlayed)) * 100
	}
	return &rec, nil
}
