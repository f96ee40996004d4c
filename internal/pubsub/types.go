package pubsub

import (
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/mauv0809/padel-stats/internal/scoring"
	"github.com/streadway/amqp"
)

type client struct {
	client   *pubsub.Client
	teardown func()
}

type amqpClient struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// EventType represents the type of event/message sent via pubsub.
// It doubles as the topic (Pub/Sub) or routing key (AMQP).
type EventType string

const (
	EventMatchStarted   EventType = "match-started"
	EventPointScored    EventType = "point-scored"
	EventMatchCompleted EventType = "match-completed"
)

// MatchStartedMessage is published once a match has been set up.
type MatchStartedMessage struct {
	MatchID        string                 `msgpack:"matchId"`
	Title          string                 `msgpack:"title"`
	Location       string                 `msgpack:"location"`
	Round          string                 `msgpack:"round"`
	ScoringSystem  scoring.ScoringSystem  `msgpack:"scoringSystem"`
	ThirdSetFormat scoring.ThirdSetFormat `msgpack:"thirdSetFormat"`
	StartedAt      time.Time              `msgpack:"startedAt"`
}

// PointScoredMessage carries the score snapshot after a single rally.
type PointScoredMessage struct {
	MatchID     string        `msgpack:"matchId"`
	Seq         int           `msgpack:"seq"`
	PlayerID    string        `msgpack:"playerId"`
	EventType   string        `msgpack:"eventType"`
	WinningTeam scoring.Team  `msgpack:"winningTeam"`
	Score       scoring.Score `msgpack:"score"`
}

// MatchCompletedMessage announces the winner of a match.
type MatchCompletedMessage struct {
	MatchID    string        `msgpack:"matchId"`
	Winner     scoring.Team  `msgpack:"winner"`
	FinalScore scoring.Score `msgpack:"finalScore"`
	Points     int           `msgpack:"points"`
}
