// Package notify delivers customer-facing messages produced by the
// storefront (checkout progress, order placed) to whatever is listening.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

type Message struct {
	Severity  Severity  `json:"severity"`
	Text      string    `json:"text"`
	SessionID string    `json:"sessionId,omitempty"`
	OrderID   string    `json:"orderId,omitempty"`
	At        time.Time `json:"at"`
}

type Notifier interface {
	Notify(ctx context.Context, m Message) error
}

// LogNotifier writes every message to a structured logger.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, m Message) error {
	level := slog.LevelInfo
	if m.Severity == SeverityError {
		level = slog.LevelWarn
	}
	n.log.Log(ctx, level, m.Text,
		"severity", string(m.Severity),
		"session_id", m.SessionID,
		"order_id", m.OrderID,
	)
	return nil
}

// Multi fans a message out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, msg Message) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops every message.
type Discard struct{}

func (Discard) Notify(context.Context, Message) error { return nil }
