// Package notification consumes PaymentCompleted events and delivers
// customer notifications. Delivery here is a structured-log dispatch stub;
// the email/SMS gateway sits behind it in production.
package notification

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopkit/shop-services/internal/events"
	kafkax "github.com/shopkit/shop-services/internal/kafka"
	"go.uber.org/zap"
)

// Deduper remembers processed event IDs so redelivered messages are dropped.
type Deduper interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}

type Service struct {
	Dedup Deduper
	Log   *zap.Logger
}

// HandlePaymentCompleted is wired as the consumer handler. Returning nil
// commits the offset.
func (s *Service) HandlePaymentCompleted(ctx context.Context, m kafkago.Message) error {
	var env events.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != events.EventPaymentCompleted {
		return nil // ignore
	}

	// Dedup is fail-open: a broken store must not block deliveries.
	seen, err := s.Dedup.Seen(ctx, env.EventID)
	if err != nil {
		s.Log.Warn("dedup lookup failed", zap.String("event_id", env.EventID), zap.Error(err))
	}
	if seen {
		return nil
	}
	if err := s.Dedup.Mark(ctx, env.EventID); err != nil {
		s.Log.Warn("dedup mark failed", zap.String("event_id", env.EventID), zap.Error(err))
	}

	p, err := kafkax.UnwrapPayload[events.PaymentCompletedPayload](env.Payload)
	if err != nil {
		return err
	}

	s.deliver(p)
	return nil
}

func (s *Service) deliver(p events.PaymentCompletedPayload) {
	s.Log.Info("payment notification delivered",
		zap.Int64("order_id", p.OrderID),
		zap.String("payment_id", p.PaymentID),
		zap.String("user_name", p.UserName),
		zap.String("user_email", p.UserEmail),
		zap.String("user_phone", p.UserPhone),
		zap.String("order_status", p.OrderStatus),
		zap.Time("order_date", p.OrderDate),
		zap.Int64("total_cents", p.TotalCents))
}
