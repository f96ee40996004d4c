package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mauv0809/padel-stats/internal/config"
	"github.com/mauv0809/padel-stats/internal/live"
	"github.com/mauv0809/padel-stats/internal/match"
	"github.com/mauv0809/padel-stats/internal/metrics"
	"github.com/mauv0809/padel-stats/internal/notifier"
	"github.com/mauv0809/padel-stats/internal/playtomic"
	"github.com/mauv0809/padel-stats/internal/pubsub"
	"github.com/mauv0809/padel-stats/internal/recorder"
	"github.com/mauv0809/padel-stats/internal/stats"
)

type Server struct {
	Matches         match.MatchStore
	Leaderboard     stats.LeaderboardStore
	Counters        metrics.MetricsStore
	Metrics         metrics.Metrics
	MetricsHandler  http.Handler
	Cfg             config.Config
	PlaytomicClient playtomic.PlaytomicClient
	Notifier        notifier.Notifier
	Recorder        *recorder.Recorder
	Hub             *live.Hub
	Router          *mux.Router
	pubsub          pubsub.PubSubClient
}
