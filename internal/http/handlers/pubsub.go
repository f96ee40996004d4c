package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-stats/internal/match"
	"github.com/mauv0809/padel-stats/internal/pubsub"
	"github.com/mauv0809/padel-stats/internal/recorder"
	"github.com/mauv0809/padel-stats/internal/stats"
)

// pushEnvelope is the body of a Pub/Sub push delivery.
type pushEnvelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data string `json:"data"`
	} `json:"message"`
}

// MatchCompletedHandler receives match-completed pushes and adds the match to
// the leaderboard. Messages about unknown or unfinished matches are
// acknowledged so they are not redelivered.
func MatchCompletedHandler(rec *recorder.Recorder, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received match completed message", "body", string(bodyBytes))

		var envelope pushEnvelope
		if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		rawData, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		var msg pubsub.MatchCompletedMessage
		if err := pubsubClient.ProcessMessage(rawData, &msg); err != nil || msg.MatchID == "" {
			log.Error("Failed to decode match completed message", "error", err)
			http.Error(w, "Invalid message", http.StatusBadRequest)
			return
		}

		if IsDryRunFromContext(r) {
			log.Info("[Dry Run] Would have updated the leaderboard", "matchID", msg.MatchID)
			w.Write([]byte("OK"))
			return
		}
		recorded, err := rec.RecordResult(r.Context(), msg.MatchID)
		switch {
		case errors.Is(err, match.ErrMatchNotFound):
			log.Warn("Completed match no longer exists", "matchID", msg.MatchID)
		case errors.Is(err, stats.ErrMatchNotComplete):
			log.Warn("Ignoring match completed message for an unfinished match", "matchID", msg.MatchID)
		case err != nil:
			log.Error("Failed to update leaderboard", "error", err, "matchID", msg.MatchID)
			http.Error(w, "Failed to update leaderboard", http.StatusInternalServerError)
			return
		default:
			log.Info("Leaderboard updated from broker", "matchID", msg.MatchID, "recorded", recorded)
		}
		w.Write([]byte("OK"))
	}
}
