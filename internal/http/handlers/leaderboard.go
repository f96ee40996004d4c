package handlers

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-stats/internal/notifier"
	"github.com/mauv0809/padel-stats/internal/stats"
)

func LeaderboardHandler(store stats.LeaderboardStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := store.Leaderboard()
		if err != nil {
			writeError(w, err, "Failed to get leaderboard")
			return
		}
		writeJSON(w, http.StatusOK, records)
	}
}

// NotifyLeaderboardHandler posts the current leaderboard to the Slack channel.
func NotifyLeaderboardHandler(store stats.LeaderboardStore, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := store.Leaderboard()
		if err != nil {
			writeError(w, err, "Failed to get leaderboard")
			return
		}
		if err := notifier.SendLeaderboard(r.Context(), records, IsDryRunFromContext(r)); err != nil {
			log.Error("Failed to send leaderboard", "error", err)
			http.Error(w, "Failed to send leaderboard", http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, "Leaderboard sent!")
	}
}
