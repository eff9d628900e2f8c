package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopkit/shop-services/internal/events"
	kafkax "github.com/shopkit/shop-services/internal/kafka"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeDedup struct {
	seen map[string]bool
}

func newFakeDedup() *fakeDedup { return &fakeDedup{seen: map[string]bool{}} }

func (f *fakeDedup) Seen(ctx context.Context, eventID string) (bool, error) {
	return f.seen[eventID], nil
}

func (f *fakeDedup) Mark(ctx context.Context, eventID string) error {
	f.seen[eventID] = true
	return nil
}

func paymentCompletedMessage(t *testing.T, eventID string) kafkago.Message {
	t.Helper()
	env := events.Envelope{
		EventID:      eventID,
		EventType:    events.EventPaymentCompleted,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     "payment-api",
		Payload: kafkax.MustMarshal(events.PaymentCompletedPayload{
			OrderID: 5, PaymentID: "p1", UserEmail: "ada@example.com", TotalCents: 4200,
		}),
	}
	return kafkago.Message{Value: kafkax.MustMarshal(env)}
}

func TestHandlePaymentCompleted_CommitsOnSuccess(t *testing.T) {
	svc := &Service{Dedup: newFakeDedup(), Log: zap.NewNop()}

	if err := svc.HandlePaymentCompleted(context.Background(), paymentCompletedMessage(t, uuid.NewString())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHandlePaymentCompleted_DedupSkipsRedelivery(t *testing.T) {
	dedup := newFakeDedup()
	svc := &Service{Dedup: dedup, Log: zap.NewNop()}
	id := uuid.NewString()
	msg := paymentCompletedMessage(t, id)

	if err := svc.HandlePaymentCompleted(context.Background(), msg); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	if !dedup.seen[id] {
		t.Fatal("event id should be marked after first delivery")
	}
	if err := svc.HandlePaymentCompleted(context.Background(), msg); err != nil {
		t.Fatalf("redelivery should be a silent no-op, got %v", err)
	}
}

func TestHandlePaymentCompleted_IgnoresForeignEventTypes(t *testing.T) {
	dedup := newFakeDedup()
	svc := &Service{Dedup: dedup, Log: zap.NewNop()}

	env := events.Envelope{
		EventID:   uuid.NewString(),
		EventType: "OrderCreated",
		Payload:   kafkax.MustMarshal(map[string]any{"order_id": 5}),
	}
	msg := kafkago.Message{Value: kafkax.MustMarshal(env)}

	if err := svc.HandlePaymentCompleted(context.Background(), msg); err != nil {
		t.Fatalf("foreign event types must be ignored, got %v", err)
	}
	if len(dedup.seen) != 0 {
		t.Fatal("foreign events must not consume dedup state")
	}
}

type failingDedup struct{ err error }

func (f failingDedup) Seen(ctx context.Context, eventID string) (bool, error) { return false, f.err }
func (f failingDedup) Mark(ctx context.Context, eventID string) error         { return f.err }

func TestHandlePaymentCompleted_DedupFailureIsFailOpen(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	svc := &Service{Dedup: failingDedup{err: errors.New("redis down")}, Log: zap.New(core)}

	if err := svc.HandlePaymentCompleted(context.Background(), paymentCompletedMessage(t, uuid.NewString())); err != nil {
		t.Fatalf("a broken dedup store must not block delivery, got %v", err)
	}
	if len(logs.FilterMessage("dedup lookup failed").All()) == 0 {
		t.Fatal("dedup lookup failure should be logged")
	}
	if len(logs.FilterMessage("dedup mark failed").All()) == 0 {
		t.Fatal("dedup mark failure should be logged")
	}
}

func TestHandlePaymentCompleted_MalformedEnvelope(t *testing.T) {
	svc := &Service{Dedup: newFakeDedup(), Log: zap.NewNop()}

	err := svc.HandlePaymentCompleted(context.Background(), kafkago.Message{Value: []byte("{not json")})
	if err == nil {
		t.Fatal("malformed envelope must return an error so the offset is not committed")
	}
}
