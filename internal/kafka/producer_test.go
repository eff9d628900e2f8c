package kafka

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// Shutdown mirrors the payment binary: Close, cancel the loop context,
// then WaitClosed. None of the orderings may hang or panic.
func TestProducerCloseThenCancelReleasesWaitClosed(t *testing.T) {
	p := NewProducer([]string{"127.0.0.1:1"}, "payment.notification", 8, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	p.Publish([]byte("5"), []byte(`{"event_id":"e1"}`))

	done := make(chan struct{})
	go func() {
		p.Close()
		cancel()
		p.WaitClosed()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		t.Fatal("WaitClosed did not return after Close and cancel")
	}
}

func TestProducerCancelThenCloseDoesNotPanic(t *testing.T) {
	p := NewProducer([]string{"127.0.0.1:1"}, "payment.notification", 8, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)

	done := make(chan struct{})
	go func() {
		cancel()
		p.WaitClosed()
		p.Close()
		p.Close() // idempotent
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		t.Fatal("WaitClosed did not return after cancel")
	}
}

func TestProducerLogsWriteFailure(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	p := NewProducer([]string{"127.0.0.1:1"}, "payment.notification", 1, zap.New(core))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	p.Publish([]byte("5"), []byte(`{"event_id":"e1"}`))
	p.Close()
	p.WaitClosed()

	if len(logs.FilterMessage("kafka write failed").All()) == 0 {
		t.Fatal("a failed broker write must be logged")
	}
}
