package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mauv0809/padel-stats/internal/config"
	"github.com/mauv0809/padel-stats/internal/http/handlers"
	"github.com/mauv0809/padel-stats/internal/live"
	"github.com/mauv0809/padel-stats/internal/match"
	"github.com/mauv0809/padel-stats/internal/metrics"
	"github.com/mauv0809/padel-stats/internal/notifier"
	"github.com/mauv0809/padel-stats/internal/playtomic"
	"github.com/mauv0809/padel-stats/internal/pubsub"
	"github.com/mauv0809/padel-stats/internal/recorder"
	"github.com/mauv0809/padel-stats/internal/stats"
	"github.com/rs/cors"
)

func NewServer(
	matches match.MatchStore,
	leaderboard stats.LeaderboardStore,
	counters metrics.MetricsStore,
	metricsSvc metrics.Metrics,
	metricsHandler http.Handler,
	cfg config.Config,
	playtomicClient playtomic.PlaytomicClient,
	notifier notifier.Notifier,
	recorder *recorder.Recorder,
	hub *live.Hub,
	pubsub pubsub.PubSubClient,
) *Server {
	server := &Server{
		Matches:         matches,
		Leaderboard:     leaderboard,
		Counters:        counters,
		Metrics:         metricsSvc,
		MetricsHandler:  metricsHandler,
		Cfg:             cfg,
		PlaytomicClient: playtomicClient,
		Notifier:        notifier,
		Recorder:        recorder,
		Hub:             hub,
		Router:          mux.NewRouter(),
		pubsub:          pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	r := s.Router
	r.Handle("/metrics", s.MetricsHandler).Methods(http.MethodGet)
	r.Handle("/health", Chain(handlers.HealthCheckHandler(), paramsMiddleware)).Methods(http.MethodGet)
	r.Handle("/counters", Chain(handlers.CountersHandler(s.Counters), paramsMiddleware)).Methods(http.MethodGet)

	r.Handle("/matches", Chain(handlers.ListMatchesHandler(s.Matches), paramsMiddleware)).Methods(http.MethodGet)
	r.Handle("/matches", Chain(handlers.CreateMatchHandler(s.Recorder), paramsMiddleware)).Methods(http.MethodPost)
	r.Handle("/matches", Chain(handlers.ClearStoreHandler(s.Matches, s.Leaderboard), paramsMiddleware)).Methods(http.MethodDelete)
	r.Handle("/matches/current", Chain(handlers.CurrentMatchHandler(s.Matches), paramsMiddleware)).Methods(http.MethodGet)
	r.Handle("/matches/import/{bookingID}", Chain(handlers.ImportBookingHandler(s.PlaytomicClient, s.Recorder), paramsMiddleware)).Methods(http.MethodPost)
	r.Handle("/matches/{id}", Chain(handlers.GetMatchHandler(s.Matches), paramsMiddleware)).Methods(http.MethodGet)
	r.Handle("/matches/{id}", Chain(handlers.DeleteMatchHandler(s.Matches), paramsMiddleware)).Methods(http.MethodDelete)
	r.Handle("/matches/{id}/points", Chain(handlers.RecordPointHandler(s.Recorder), paramsMiddleware)).Methods(http.MethodPost)
	r.Handle("/matches/{id}/server", Chain(handlers.SetServerHandler(s.Recorder), paramsMiddleware)).Methods(http.MethodPut)
	r.Handle("/matches/{id}/replay", Chain(handlers.ReplayHandler(s.Recorder), paramsMiddleware)).Methods(http.MethodGet)
	r.Handle("/matches/{id}/stats", Chain(handlers.MatchStatsHandler(s.Matches), paramsMiddleware)).Methods(http.MethodGet)
	r.Handle("/matches/{id}/export.csv", Chain(handlers.ExportCSVHandler(s.Matches), paramsMiddleware)).Methods(http.MethodGet)
	r.Handle("/matches/{id}/export.yaml", Chain(handlers.ExportYAMLHandler(s.Matches), paramsMiddleware)).Methods(http.MethodGet)
	r.Handle("/matches/{id}/live", handlers.LiveHandler(s.Matches, s.Hub)).Methods(http.MethodGet)
	r.Handle("/live", handlers.LiveHandler(s.Matches, s.Hub)).Methods(http.MethodGet)

	r.Handle("/leaderboard", Chain(handlers.LeaderboardHandler(s.Leaderboard), paramsMiddleware)).Methods(http.MethodGet)
	r.Handle("/leaderboard/notify", Chain(handlers.NotifyLeaderboardHandler(s.Leaderboard, s.Notifier), paramsMiddleware)).Methods(http.MethodPost)
	r.Handle("/bookings", Chain(handlers.ListBookingsHandler(s.Cfg.Playtomic, s.PlaytomicClient), paramsMiddleware)).Methods(http.MethodGet)
	r.Handle("/pubsub/match-completed", Chain(handlers.MatchCompletedHandler(s.Recorder, s.pubsub), paramsMiddleware)).Methods(http.MethodPost)

	slackAuth := slackSignatureMiddleware(s.Cfg.Slack.SigningSecret)
	r.Handle("/slack/command/leaderboard", Chain(handlers.LeaderboardCommandHandler(s.Leaderboard, s.Notifier), paramsMiddleware, slackAuth)).Methods(http.MethodPost)
	r.Handle("/slack/command/player-stats", Chain(handlers.PlayerStatsCommandHandler(s.Leaderboard, s.Notifier), paramsMiddleware, slackAuth)).Methods(http.MethodPost)
	r.Handle("/slack/command/score", Chain(handlers.ScoreCommandHandler(s.Matches, s.Notifier), paramsMiddleware, slackAuth)).Methods(http.MethodPost)
}

// Handler returns the router wrapped with the CORS policy for browser clients.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.Cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(s.Router)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
