package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	Exchange       = "soko.notifications"
	publishTimeout = 3 * time.Second
)

// publisher is the slice of *amqp.Channel the notifier uses.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPNotifier publishes messages as JSON on a topic exchange with routing
// key notify.<severity>.
type AMQPNotifier struct {
	ch publisher
}

func NewAMQPNotifier(conn *amqp.Connection) (*AMQPNotifier, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", Exchange, err)
	}
	return &AMQPNotifier{ch: ch}, nil
}

func (n *AMQPNotifier) Close() error {
	return n.ch.Close()
}

func RoutingKey(s Severity) string {
	return "notify." + string(s)
}

func (n *AMQPNotifier) Notify(ctx context.Context, m Message) error {
	if m.At.IsZero() {
		m.At = time.Now().UTC()
	}
	body, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return n.ch.PublishWithContext(
		pubCtx,
		Exchange,
		RoutingKey(m.Severity),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    m.At,
			Body:         body,
		},
	)
}
