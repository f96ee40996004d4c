package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/mauv0809/padel-stats/internal/match"
	"github.com/mauv0809/padel-stats/internal/playtomic"
	"github.com/mauv0809/padel-stats/internal/recorder"
	"github.com/mauv0809/padel-stats/internal/stats"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response to JSON", "error", err)
	}
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, match.ErrMatchNotFound),
		errors.Is(err, stats.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, recorder.ErrMatchCompleted),
		errors.Is(err, recorder.ErrUnfinishedMatch),
		errors.Is(err, recorder.ErrScoreMismatch):
		return http.StatusConflict
	case errors.Is(err, match.ErrUnknownPlayer),
		errors.Is(err, match.ErrInvalidEvent),
		errors.Is(err, recorder.ErrMissingPlayers),
		errors.Is(err, recorder.ErrDuplicatePlayers),
		errors.Is(err, recorder.ErrInvalidSetup),
		errors.Is(err, playtomic.ErrIncompleteLineUp):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs err and replies with the matching status. Internal errors
// get a generic message.
func writeError(w http.ResponseWriter, err error, msg string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error(msg, "error", err)
		http.Error(w, msg, status)
		return
	}
	log.Warn(msg, "error", err, "status", status)
	http.Error(w, err.Error(), status)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Warn("Failed to decode request body", "error", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}
	return true
}

func matchID(r *http.Request) string {
	return mux.Vars(r)["id"]
}
