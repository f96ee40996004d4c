package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-stats/internal/export"
	"github.com/mauv0809/padel-stats/internal/match"
)

func ExportCSVHandler(store match.MatchStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := store.GetMatch(matchID(r))
		if err != nil {
			writeError(w, err, "Failed to get match")
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(m)))
		if err := export.WriteCSV(w, m); err != nil {
			log.Error("Failed to write CSV export", "error", err, "matchID", m.ID)
		}
	}
}

func ExportYAMLHandler(store match.MatchStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := store.GetMatch(matchID(r))
		if err != nil {
			writeError(w, err, "Failed to get match")
			return
		}
		filename := strings.TrimSuffix(export.Filename(m), ".csv") + ".yaml"
		w.Header().Set("Content-Type", "application/yaml")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if err := export.WriteYAML(w, m); err != nil {
			log.Error("Failed to write YAML export", "error", err, "matchID", m.ID)
		}
	}
}
