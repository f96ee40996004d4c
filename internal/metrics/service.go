package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MatchesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_matches_started_total",
			Help: "The total number of matches set up for live scoring.",
		}),
		MatchesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_matches_completed_total",
			Help: "The total number of matches that reached a winner.",
		}),
		PointsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_points_recorded_total",
			Help: "The total number of rallies applied to a score.",
		}),
		TiebreaksStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_tiebreaks_started_total",
			Help: "The total number of tiebreaks and super tiebreaks opened.",
		}),
		ProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "padel_point_processing_duration_seconds",
			Help:    "The duration of recording a single point.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		BrokerPublishFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_broker_publish_failed_total",
			Help: "The total number of match events that could not be published.",
		}),
		LiveClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "padel_live_clients",
			Help: "The number of connected live score websocket clients.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "padel_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MatchesStarted,
		s.MatchesCompleted,
		s.PointsRecorded,
		s.TiebreaksStarted,
		s.ProcessingDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.BrokerPublishFailed,
		s.LiveClients,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMatchesStarted() {
	s.MatchesStarted.Inc()
}

func (s *Service) IncMatchesCompleted() {
	s.MatchesCompleted.Inc()
}

func (s *Service) IncPointsRecorded() {
	s.PointsRecorded.Inc()
}

func (s *Service) IncTiebreaksStarted() {
	s.TiebreaksStarted.Inc()
}

func (s *Service) ObserveProcessingDuration(duration float64) {
	s.ProcessingDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) IncBrokerPublishFailed() {
	s.BrokerPublishFailed.Inc()
}

func (s *Service) SetLiveClients(n int) {
	s.LiveClients.Set(float64(n))
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
