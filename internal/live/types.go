package live

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/mauv0809/padel-stats/internal/metrics"
	"github.com/mauv0809/padel-stats/internal/scoring"
)

// Broadcaster receives score snapshots after every state change.
type Broadcaster interface {
	Publish(s Snapshot)
}

// SnapshotType tells clients what triggered a snapshot.
type SnapshotType string

const (
	SnapshotStarted   SnapshotType = "match_started"
	SnapshotPoint     SnapshotType = "point"
	SnapshotServer    SnapshotType = "server"
	SnapshotCompleted SnapshotType = "match_completed"
)

// Snapshot is the message pushed to websocket clients.
type Snapshot struct {
	Type        SnapshotType  `json:"type"`
	MatchID     string        `json:"matchId"`
	Seq         int           `json:"seq"`
	Score       scoring.Score `json:"score"`
	Display     string        `json:"display"`
	IsCompleted bool          `json:"isCompleted"`
	Winner      *scoring.Team `json:"winner,omitempty"`
	Timestamp   int64         `json:"timestamp"`
}

// Client is one websocket connection, optionally following a single match.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	matchID string
}

// Hub fans snapshots out to connected clients from a single goroutine.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Snapshot
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	metrics    metrics.Metrics
	upgrader   websocket.Upgrader
	mu         sync.RWMutex
}
