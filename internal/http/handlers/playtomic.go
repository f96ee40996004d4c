package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/mauv0809/padel-stats/internal/config"
	"github.com/mauv0809/padel-stats/internal/playtomic"
	"github.com/mauv0809/padel-stats/internal/recorder"
)

// ListBookingsHandler lists padel bookings at the configured club, starting
// `days` days ago.
func ListBookingsHandler(cfg config.PlaytomicConfig, playtomicClient playtomic.PlaytomicClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cfg.TenantID == "" {
			http.Error(w, "TENANT_ID is not configured", http.StatusServiceUnavailable)
			return
		}
		daysStr := r.URL.Query().Get("days")
		days := 0
		if daysStr != "" {
			parsed, err := strconv.Atoi(daysStr)
			if err == nil && parsed > 0 {
				days = parsed
			} else {
				log.Warn("Invalid 'days' parameter provided. Defaulting to 0.", "days_param", daysStr)
			}
		}
		startDate := time.Now().AddDate(0, 0, -days)

		params := &playtomic.SearchMatchesParams{
			SportID:       "PADEL",
			HasPlayers:    true,
			Sort:          "start_date,ASC",
			TenantIDs:     []string{cfg.TenantID},
			FromStartDate: startDate.Format("2006-01-02") + "T00:00:00",
		}
		bookings, err := playtomicClient.GetMatches(r.Context(), params)
		if err != nil {
			log.Error("Error fetching Playtomic bookings", "error", err)
			http.Error(w, "Failed to fetch bookings", http.StatusBadGateway)
			return
		}
		log.Info("Found bookings from API", "count", len(bookings))
		writeJSON(w, http.StatusOK, bookings)
	}
}

// ImportBookingHandler starts tracking a match with the line-up of a
// Playtomic booking.
func ImportBookingHandler(playtomicClient playtomic.PlaytomicClient, rec *recorder.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookingID := mux.Vars(r)["bookingID"]
		booking, err := playtomicClient.GetBooking(r.Context(), bookingID)
		if err != nil {
			log.Error("Error fetching Playtomic booking", "bookingID", bookingID, "error", err)
			http.Error(w, "Failed to fetch booking", http.StatusBadGateway)
			return
		}
		setup, err := recorder.SetupFromBooking(booking)
		if err != nil {
			writeError(w, err, "Failed to read booking line-up")
			return
		}
		m, err := rec.CreateMatch(r.Context(), setup, IsDryRunFromContext(r))
		if err != nil {
			writeError(w, err, "Failed to create match")
			return
		}
		log.Info("Imported Playtomic booking", "bookingID", bookingID, "matchID", m.ID)
		writeJSON(w, http.StatusCreated, m)
	}
}
