package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-stats/internal/export"
	"github.com/mauv0809/padel-stats/internal/match"
	"github.com/mauv0809/padel-stats/internal/metrics"
	"github.com/mauv0809/padel-stats/internal/notifier"
	"github.com/mauv0809/padel-stats/internal/scoring"
	"github.com/mauv0809/padel-stats/internal/stats"
	"github.com/slack-go/slack"
)

const (
	sendTimeout = 10 * time.Second
	timeLayout  = "Monday 02 Jan, 15:04"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
	location  *time.Location
}

// NewNotifier creates a new Notifier. An empty token disables posting: messages
// are logged instead.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	var api slackClient
	if token != "" {
		api = slack.New(token)
	}
	return NewNotifierWithAPI(api, channelID, metrics)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	loc, err := time.LoadLocation("Europe/Copenhagen")
	if err != nil {
		loc = time.UTC
	}
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
		location:  loc,
	}
}

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun || s.api == nil {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		if dryRun {
			log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		} else {
			log.Debug("Slack is not configured, skipping message", "message", string(jsonMsg))
		}
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface
func (s *Notifier) SendMatchStarted(ctx context.Context, m *match.Match, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatMatchStarted(m), dryRun)
	return err
}

func (s *Notifier) SendResultNotification(ctx context.Context, m *match.Match, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatResultNotification(m), dryRun)
	return err
}

func (s *Notifier) SendLeaderboard(ctx context.Context, records []stats.PlayerRecord, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatLeaderboard(records), dryRun)
	return err
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(records []stats.PlayerRecord) (any, error) {
	return s.formatLeaderboard(records), nil
}

// FormatPlayerStatsResponse formats a player stats message for a slash command response.
func (s *Notifier) FormatPlayerStatsResponse(record *stats.PlayerRecord, query string) (any, error) {
	return s.formatPlayerStats(record), nil
}

// FormatPlayerNotFoundResponse formats a player not found message for a slash command response.
func (s *Notifier) FormatPlayerNotFoundResponse(query string) (any, error) {
	return s.formatPlayerNotFound(query), nil
}

// FormatScoreResponse formats the live score of a match for a slash command response.
func (s *Notifier) FormatScoreResponse(m *match.Match) (any, error) {
	return s.formatScore(m), nil
}

// FormatNoMatchResponse formats the reply used when no match is being played.
func (s *Notifier) FormatNoMatchResponse() (any, error) {
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", "No match is being played right now.", false, false), nil, nil),
	), nil
}

func (s *Notifier) details(m *match.Match) string {
	return fmt.Sprintf("%s, %s\n%s", m.Location, m.Round, m.Date.In(s.location).Format(timeLayout))
}

// formatMatchStarted creates the Slack message announcing a new tracked match using Block Kit.
func (s *Notifier) formatMatchStarted(m *match.Match) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header - The Header block itself provides bolding. No asterisks needed.
	headerText := slack.NewTextBlockObject("plain_text", "🎾 Match started! 🎾", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", s.details(m), true, false), nil, nil))

	lineUp := fmt.Sprintf("%s\nvs\n%s", teamLine(m.Teams[0]), teamLine(m.Teams[1]))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", lineUp, true, false), nil, nil))

	rules := fmt.Sprintf("Scoring: %s | Third set: %s", m.ScoringSystem, m.ThirdSetFormat)
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", rules, true, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatResultNotification creates the Slack message for a finished match using Block Kit.
func (s *Notifier) formatResultNotification(m *match.Match) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🎾 Match finished! 🎾", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", s.details(m), false, false), nil, nil))

	summary := stats.Summarize(m)
	resultHeaderText := "Result:"
	if m.Winner != nil {
		resultHeaderText = fmt.Sprintf("Result: %s won! 🏆", m.TeamName(*m.Winner))
	}

	var resultsFields []*slack.TextBlockObject
	for i, set := range summary.Sets {
		name := fmt.Sprintf("Set %d", i+1)
		scores := set.Games
		if set.SuperTiebreak {
			name = "Super tiebreak"
			scores = *set.Tiebreak
		}
		text := fmt.Sprintf("%s\n• %s: %d\n• %s: %d", name,
			m.TeamName(scoring.TeamOne), scores[0],
			m.TeamName(scoring.TeamTwo), scores[1])
		resultsFields = append(resultsFields, slack.NewTextBlockObject("plain_text", text, true, false))
	}
	if len(resultsFields) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", resultHeaderText, true, false), resultsFields, nil))
	} else {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "Result: No sets recorded.", true, false), nil, nil))
	}

	rallies := fmt.Sprintf("%d points | %d winners | %d unforced errors | %d forced errors",
		summary.TotalPoints, summary.Winners, summary.UnforcedErrors, summary.ForcedErrors)
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", rallies, true, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatScore creates a Slack message showing the live score of a match.
func (s *Notifier) formatScore(m *match.Match) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🎾 "+m.Title(), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	sets, games, points := export.ScoreColumns(m.Score)
	pointsLabel := "*Points*"
	if tb, ok := m.Score.Tiebreak(); ok {
		pointsLabel = "*Tiebreak*"
		if tb.Final {
			pointsLabel = "*Super tiebreak*"
		}
	}
	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject("mrkdwn", "*Sets*\n"+sets, false, false),
		slack.NewTextBlockObject("mrkdwn", "*Games*\n"+games, false, false),
		slack.NewTextBlockObject("mrkdwn", pointsLabel+"\n"+points, false, false),
	}
	blocks = append(blocks, slack.NewSectionBlock(nil, fields, nil))

	if m.IsCompleted && m.Winner != nil {
		text := fmt.Sprintf("%s won the match 🏆", m.TeamName(*m.Winner))
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", text, true, false)))
	} else if server, ok := m.Player(m.Score.CurrentServer); ok {
		text := fmt.Sprintf("%s to serve", server.Name)
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", text, true, false)))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatLeaderboard creates a Slack message to display the player leaderboard.
func (s *Notifier) formatLeaderboard(records []stats.PlayerRecord) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Player Leaderboard 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(records) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No stats available yet. Go play some matches!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for i, record := range records {
		rank := i + 1
		playerText := fmt.Sprintf("%d. %s %s\n> Match Win %%: %.2f%% (%d/%d) | Sets Won: %d | Games Won: %d",
			rank,
			medal(rank),
			record.PlayerName,
			record.WinPercentage,
			record.MatchesWon,
			record.MatchesPlayed,
			record.SetsWon,
			record.GamesWon,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playerText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerStats creates a Slack message to display a single player's stats.
func (s *Notifier) formatPlayerStats(record *stats.PlayerRecord) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := fmt.Sprintf("🏆 Stats for %s 🏆", record.PlayerName)
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", headerText, true, false)))

	playerText := fmt.Sprintf("> *Match Win %%*: %.2f%% (%d/%d)\n> *Sets*: %d won, %d lost\n> *Games*: %d won, %d lost\n> *Points Won*: %d",
		record.WinPercentage,
		record.MatchesWon,
		record.MatchesPlayed,
		record.SetsWon,
		record.SetsLost,
		record.GamesWon,
		record.GamesLost,
		record.PointsWon,
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", playerText, false, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerNotFound creates a Slack message for when a player's stats are not found.
func (s *Notifier) formatPlayerNotFound(query string) slack.Message {
	text := fmt.Sprintf("Sorry, I couldn't find a player matching *%s*. Try a different name.", query)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}

func teamLine(t match.Team) string {
	names := make([]string, 0, len(t.Players))
	for _, p := range t.Players {
		names = append(names, p.Name)
	}
	return strings.Join(names, " & ")
}

func medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return ""
}
