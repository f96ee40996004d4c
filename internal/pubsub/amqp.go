package pubsub

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/streadway/amqp"
	"github.com/vmihailenco/msgpack/v5"
)

var _ PubSubClient = (*amqpClient)(nil)

// NewAMQP connects to a RabbitMQ style broker and declares a durable topic
// exchange. Each EventType is published as the routing key.
func NewAMQP(url, exchange string) (PubSubClient, error) {
	conn, err := amqp.DialConfig(url, amqp.Config{
		Heartbeat: 30 * time.Second,
		Locale:    "en_US",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to AMQP: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}
	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // delete when unused
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	log.Info("Connected to AMQP broker", "exchange", exchange)
	return &amqpClient{conn: conn, channel: channel, exchange: exchange}, nil
}

func (c *amqpClient) SendMessage(ctx context.Context, topic EventType, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := msgpack.Marshal(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	err = c.channel.Publish(c.exchange, string(topic), false, false, amqp.Publishing{
		ContentType:  "application/msgpack",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Type:         string(topic),
		Body:         body,
	})
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", topic)
		return err
	}
	log.Debug("SendMessage", "exchange", c.exchange, "topic", topic)
	return nil
}

func (c *amqpClient) ProcessMessage(data []byte, returnValue any) error {
	return decode(data, returnValue)
}

func (c *amqpClient) Close() {
	if err := c.channel.Close(); err != nil {
		log.Warn("Failed to close AMQP channel", "error", err)
	}
	if err := c.conn.Close(); err != nil {
		log.Warn("Failed to close AMQP connection", "error", err)
	}
}
