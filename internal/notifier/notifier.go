package notifier

import (
	"context"

	"github.com/mauv0809/padel-stats/internal/match"
	"github.com/mauv0809/padel-stats/internal/stats"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For tracked matches
	SendMatchStarted(ctx context.Context, m *match.Match, dryRun bool) error
	SendResultNotification(ctx context.Context, m *match.Match, dryRun bool) error
	SendLeaderboard(ctx context.Context, records []stats.PlayerRecord, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(records []stats.PlayerRecord) (any, error)
	FormatPlayerStatsResponse(record *stats.PlayerRecord, query string) (any, error)
	FormatPlayerNotFoundResponse(query string) (any, error)
	FormatScoreResponse(m *match.Match) (any, error)
	FormatNoMatchResponse() (any, error)
}
