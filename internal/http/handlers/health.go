package handlers

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-stats/internal/match"
	"github.com/mauv0809/padel-stats/internal/metrics"
	"github.com/mauv0809/padel-stats/internal/stats"
)

func HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// ClearStoreHandler wipes every match and the leaderboard.
func ClearStoreHandler(store match.MatchStore, leaderboard stats.LeaderboardStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if IsDryRunFromContext(r) {
			log.Info("[Dry Run] Would have cleared the store")
			fmt.Fprint(w, "Store would be cleared!")
			return
		}
		log.Info("Received request to clear entire store")
		store.Clear()
		leaderboard.Clear()
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
		log.Info("Store cleared successfully")
	}
}

func DeleteMatchHandler(store match.MatchStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := matchID(r)
		if _, err := store.GetMatch(id); err != nil {
			writeError(w, err, "Failed to get match")
			return
		}
		if IsDryRunFromContext(r) {
			log.Info("[Dry Run] Would have cleared match", "matchID", id)
			fmt.Fprintf(w, "Match %s would be cleared!", id)
			return
		}
		log.Info("Received request to clear a specific match", "matchID", id)
		store.ClearMatch(id)
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Cleared match %s from store!", id)
	}
}

// CountersHandler returns the persisted domain counters.
func CountersHandler(store metrics.MetricsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters, err := store.GetAll()
		if err != nil {
			writeError(w, err, "Failed to get counters")
			return
		}
		writeJSON(w, http.StatusOK, counters)
	}
}
