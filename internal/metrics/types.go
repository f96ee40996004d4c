package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	MatchesStarted      prometheus.Counter
	MatchesCompleted    prometheus.Counter
	PointsRecorded      prometheus.Counter
	TiebreaksStarted    prometheus.Counter
	ProcessingDuration  prometheus.Histogram
	SlackNotifSent      prometheus.Counter
	SlackNotifFailed    prometheus.Counter
	BrokerPublishFailed prometheus.Counter
	LiveClients         prometheus.Gauge
	StartupTimeSeconds  prometheus.Gauge
}

// Keys used for the persisted counters.
const (
	KeyMatchesStarted   = "matches_started"
	KeyMatchesCompleted = "matches_completed"
	KeyPointsRecorded   = "points_recorded"
	KeySlackSent        = "slack_notifications_sent"
)
