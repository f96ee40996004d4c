package main

import (
	"context"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-stats/internal/config"
	"github.com/mauv0809/padel-stats/internal/database"
	"github.com/mauv0809/padel-stats/internal/live"
	"github.com/mauv0809/padel-stats/internal/match"
	"github.com/mauv0809/padel-stats/internal/metrics"
	"github.com/mauv0809/padel-stats/internal/notifier/slack"
	"github.com/mauv0809/padel-stats/internal/pubsub"
	"github.com/mauv0809/padel-stats/internal/recorder"
	"github.com/mauv0809/padel-stats/internal/stats"
	"github.com/spf13/cobra"
)

var (
	numMatches int
	seed       int64
)

var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "Fill the database with simulated matches",
	Long: `Plays simulated matches rally by rally through the recorder, so the
stored scores, events, counters and leaderboard are exactly what live
scoring would have produced. Slack and the broker are not notified.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().IntVarP(&numMatches, "matches", "n", 20, "Number of matches to simulate")
	rootCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "Random seed")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Error("Seeder failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	log.Info("Starting database seeder...", "matches", numMatches, "seed", seed)
	cfg := config.Load()

	db, teardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	if err != nil {
		return err
	}
	defer teardown()

	metricsSvc := metrics.NewService()
	matchStore := match.New(db)
	// No token: the notifier only logs.
	notifier := slack.NewNotifier("", "", metricsSvc)
	rec := recorder.New(matchStore, stats.New(db), notifier, metricsSvc, metrics.New(db), pubsub.Nop{}, discard{})

	sim := newSimulator(rec, rand.New(rand.NewSource(seed)))
	startTime := time.Now()
	for i := 0; i < numMatches; i++ {
		if current, err := matchStore.GetCurrentMatch(); err == nil {
			log.Info("Finishing unfinished match first", "matchID", current.ID)
			if _, err := sim.finish(ctx, current.ID); err != nil {
				return err
			}
		}
		m, err := sim.play(ctx, time.Now().Add(-time.Duration(numMatches-i)*24*time.Hour))
		if err != nil {
			return err
		}
		log.Info("Simulated match", "matchID", m.ID, "title", m.Title(), "score", m.Score.String(), "events", len(m.Events))
	}
	log.Info("Successfully simulated all matches.", "duration", time.Since(startTime))
	return nil
}

// discard drops live snapshots; nobody is connected to a seeding run.
type discard struct{}

func (discard) Publish(live.Snapshot) {}
