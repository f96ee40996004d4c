package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMatchesStarted()
	IncMatchesCompleted()
	IncPointsRecorded()
	IncTiebreaksStarted()
	ObserveProcessingDuration(duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	IncBrokerPublishFailed()
	SetLiveClients(n int)
	SetStartupTime(duration float64)
}

// MetricsStore persists named counters so totals survive restarts.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
