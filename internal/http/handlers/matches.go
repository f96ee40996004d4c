package handlers

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-stats/internal/match"
	"github.com/mauv0809/padel-stats/internal/recorder"
	"github.com/mauv0809/padel-stats/internal/scoring"
	"github.com/mauv0809/padel-stats/internal/stats"
)

// ReplayResponse reports whether the event log reproduces the stored score.
type ReplayResponse struct {
	MatchID    string        `json:"matchId"`
	Consistent bool          `json:"consistent"`
	Score      scoring.Score `json:"score"`
	Display    string        `json:"display"`
	Error      string        `json:"error,omitempty"`
}

// MatchStatsResponse bundles the match summary with per player statistics.
type MatchStatsResponse struct {
	MatchID string              `json:"matchId"`
	Summary stats.Summary       `json:"summary"`
	Players []stats.PlayerStats `json:"players"`
}

type setServerRequest struct {
	PlayerID string `json:"playerId"`
}

func ListMatchesHandler(store match.MatchStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := store.GetAllMatches()
		if err != nil {
			writeError(w, err, "Failed to get matches")
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

func CreateMatchHandler(rec *recorder.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var setup recorder.Setup
		if !decodeJSON(w, r, &setup) {
			return
		}
		m, err := rec.CreateMatch(r.Context(), setup, IsDryRunFromContext(r))
		if err != nil {
			writeError(w, err, "Failed to create match")
			return
		}
		writeJSON(w, http.StatusCreated, m)
	}
}

func CurrentMatchHandler(store match.MatchStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := store.GetCurrentMatch()
		if err != nil {
			writeError(w, err, "Failed to get current match")
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

func GetMatchHandler(store match.MatchStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := store.GetMatch(matchID(r))
		if err != nil {
			writeError(w, err, "Failed to get match")
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

func RecordPointHandler(rec *recorder.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in recorder.PointInput
		if !decodeJSON(w, r, &in) {
			return
		}
		m, err := rec.RecordPoint(r.Context(), matchID(r), in, IsDryRunFromContext(r))
		if err != nil {
			writeError(w, err, "Failed to record point")
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

func SetServerHandler(rec *recorder.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setServerRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		m, err := rec.SetServer(r.Context(), matchID(r), req.PlayerID, IsDryRunFromContext(r))
		if err != nil {
			writeError(w, err, "Failed to set server")
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

// ReplayHandler recomputes the score from the event log. A diverging log is
// reported with 409 and the recomputed score.
func ReplayHandler(rec *recorder.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := matchID(r)
		score, err := rec.Replay(r.Context(), id)
		switch {
		case errors.Is(err, recorder.ErrScoreMismatch):
			log.Warn("Replay does not match stored score", "matchID", id, "error", err)
			writeJSON(w, http.StatusConflict, ReplayResponse{MatchID: id, Score: score, Display: score.String(), Error: err.Error()})
		case err != nil:
			writeError(w, err, "Failed to replay match")
		default:
			writeJSON(w, http.StatusOK, ReplayResponse{MatchID: id, Consistent: true, Score: score, Display: score.String()})
		}
	}
}

func MatchStatsHandler(store match.MatchStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := store.GetMatch(matchID(r))
		if err != nil {
			writeError(w, err, "Failed to get match")
			return
		}
		writeJSON(w, http.StatusOK, MatchStatsResponse{
			MatchID: m.ID,
			Summary: stats.Summarize(m),
			Players: stats.ForAllPlayers(m),
		})
	}
}
