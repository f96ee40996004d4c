package live

import (
	"time"

	"github.com/mauv0809/padel-stats/internal/match"
)

// SnapshotOf captures the current state of m.
func SnapshotOf(t SnapshotType, m *match.Match, at time.Time) Snapshot {
	return Snapshot{
		Type:        t,
		MatchID:     m.ID,
		Seq:         len(m.Events),
		Score:       m.Score,
		Display:     m.Score.String(),
		IsCompleted: m.IsCompleted,
		Winner:      m.Winner,
		Timestamp:   at.UnixMilli(),
	}
}
