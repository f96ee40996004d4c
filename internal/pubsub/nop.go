package pubsub

import (
	"context"

	"github.com/charmbracelet/log"
)

// Nop drops every message. Used when no broker is configured.
type Nop struct{}

var _ PubSubClient = Nop{}

func (Nop) SendMessage(_ context.Context, topic EventType, _ any) error {
	log.Debug("No broker configured, dropping message", "topic", topic)
	return nil
}

func (Nop) ProcessMessage(data []byte, returnValue any) error {
	return decode(data, returnValue)
}

func (Nop) Close() {}
