package handlers

import (
	"net/http"
	"time"

	"github.com/mauv0809/padel-stats/internal/live"
	"github.com/mauv0809/padel-stats/internal/match"
)

// LiveHandler upgrades to a websocket that receives a snapshot after every
// score change. Clients following one match get its current score first.
func LiveHandler(store match.MatchStore, hub *live.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := matchID(r)
		if id == "" {
			hub.ServeWS(w, r, "", nil)
			return
		}
		m, err := store.GetMatch(id)
		if err != nil {
			writeError(w, err, "Failed to get match")
			return
		}
		initial := live.SnapshotOf(snapshotTypeOf(m), m, time.Now())
		hub.ServeWS(w, r, id, &initial)
	}
}

func snapshotTypeOf(m *match.Match) live.SnapshotType {
	switch {
	case m.IsCompleted:
		return live.SnapshotCompleted
	case len(m.Events) == 0:
		return live.SnapshotStarted
	default:
		return live.SnapshotPoint
	}
}
