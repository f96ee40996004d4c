package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-stats/internal/match"
	"github.com/mauv0809/padel-stats/internal/notifier"
	"github.com/mauv0809/padel-stats/internal/stats"
	"github.com/slack-go/slack"
)

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// respondWithFormatted writes msg if the notifier produced a Slack message.
func respondWithFormatted(w http.ResponseWriter, msg any, err error, what string) {
	if err != nil {
		http.Error(w, "Failed to format "+what, http.StatusInternalServerError)
		log.Error("Failed to format "+what, "error", err)
		return
	}
	slackMsg, ok := msg.(slack.Message)
	if !ok {
		http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
		log.Error("Failed to cast message to slack.Message")
		return
	}
	respondWithSlackMsg(w, slackMsg)
}

func LeaderboardCommandHandler(store stats.LeaderboardStore, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := store.Leaderboard()
		if err != nil {
			http.Error(w, "Failed to get leaderboard", http.StatusInternalServerError)
			log.Error("Failed to get leaderboard from store", "error", err)
			return
		}
		msg, err := notifier.FormatLeaderboardResponse(records)
		respondWithFormatted(w, msg, err, "leaderboard")
	}
}

func PlayerStatsCommandHandler(store stats.LeaderboardStore, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		playerName := strings.TrimSpace(r.FormValue("text"))
		if playerName == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}

		log.Info("Received player stats command", "player", playerName)
		record, err := store.PlayerByName(playerName)
		var msg any
		if err != nil {
			log.Warn("Could not find player stats", "player", playerName, "error", err)
			msg, err = notifier.FormatPlayerNotFoundResponse(playerName)
		} else {
			msg, err = notifier.FormatPlayerStatsResponse(record, playerName)
		}
		respondWithFormatted(w, msg, err, "player stats")
	}
}

// ScoreCommandHandler answers /score with the live score of the match given
// in the command text, or the current match.
func ScoreCommandHandler(store match.MatchStore, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		var (
			m   *match.Match
			err error
		)
		if id := strings.TrimSpace(r.FormValue("text")); id != "" {
			m, err = store.GetMatch(id)
		} else {
			m, err = store.GetCurrentMatch()
		}

		var msg any
		if err != nil {
			log.Info("No match to report a score for", "error", err)
			msg, err = notifier.FormatNoMatchResponse()
		} else {
			msg, err = notifier.FormatScoreResponse(m)
		}
		respondWithFormatted(w, msg, err, "score")
	}
}
