package payment

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopkit/shop-services/internal/apperr"
	"github.com/shopkit/shop-services/internal/clients"
	"github.com/shopkit/shop-services/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeOrders struct {
	orders      map[int64]clients.OrderResponse
	completed   []int64
	completeErr error
	fetchErr    error
}

func (f *fakeOrders) OrderByID(ctx context.Context, id int64) (clients.OrderResponse, error) {
	if f.fetchErr != nil {
		return clients.OrderResponse{}, f.fetchErr
	}
	o, ok := f.orders[id]
	if !ok {
		return clients.OrderResponse{}, apperr.NotFoundf("order not found: id=%d", id)
	}
	return o, nil
}

func (f *fakeOrders) CompleteOrder(ctx context.Context, id int64) error {
	if f.completeErr != nil {
		return f.completeErr
	}
	if _, ok := f.orders[id]; !ok {
		return apperr.NotFoundf("order not found: id=%d", id)
	}
	f.completed = append(f.completed, id)
	return nil
}

type fakeRepo struct {
	payments  []*Payment
	createErr error
}

func (f *fakeRepo) Create(ctx context.Context, p *Payment) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.payments = append(f.payments, p)
	return nil
}

func (f *fakeRepo) ByOrder(ctx context.Context, orderID int64) (*Payment, error) {
	for i := len(f.payments) - 1; i >= 0; i-- {
		if f.payments[i].OrderID == orderID {
			return f.payments[i], nil
		}
	}
	return nil, apperr.NotFoundf("no payment found for order %d", orderID)
}

type fakePublisher struct {
	messages [][]byte
}

func (f *fakePublisher) Publish(key, value []byte, headers ...kafkago.Header) {
	f.messages = append(f.messages, value)
}

func knownOrder() *fakeOrders {
	return &fakeOrders{orders: map[int64]clients.OrderResponse{
		5: {
			OrderID: 5, Name: "Ada", LastName: "Lovelace",
			Email: "ada@example.com", Address: "12 Analytical St", Phone: "555-0100",
			OrderStatus: "COMPLETED", OrderDate: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			TotalCents: 4200,
		},
	}}
}

func newService(orders *fakeOrders, repo *fakeRepo, pub *fakePublisher) *Service {
	return &Service{Orders: orders, Repo: repo, Producer: pub, ServiceName: "payment-api", Log: zap.NewNop()}
}

func TestCreatePayment_Success(t *testing.T) {
	orders := knownOrder()
	repo := &fakeRepo{}
	pub := &fakePublisher{}
	svc := newService(orders, repo, pub)

	p, err := svc.CreatePayment(context.Background(), 5, 4200, "usd", "CARD", "order #5")
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, p.Status)
	assert.Equal(t, "USD", p.Currency)
	assert.NotEmpty(t, p.ID)
	require.Len(t, repo.payments, 1)
	assert.Equal(t, []int64{5}, orders.completed)
	require.Len(t, pub.messages, 1)

	var env events.Envelope
	require.NoError(t, json.Unmarshal(pub.messages[0], &env))
	assert.Equal(t, events.EventPaymentCompleted, env.EventType)

	var payload events.PaymentCompletedPayload
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, "Ada Lovelace", payload.UserName)
	assert.Equal(t, "ada@example.com", payload.UserEmail)
	assert.Equal(t, int64(4200), payload.TotalCents)
}

func TestCreatePayment_UnknownOrderPersistsNothing(t *testing.T) {
	orders := &fakeOrders{orders: map[int64]clients.OrderResponse{}}
	repo := &fakeRepo{}
	pub := &fakePublisher{}
	svc := newService(orders, repo, pub)

	_, err := svc.CreatePayment(context.Background(), 99, 100, "USD", "CARD", "")
	require.Equal(t, apperr.NotFound, apperr.KindOf(err))
	assert.Empty(t, repo.payments, "no payment row may exist for a nonexistent order")
	assert.Empty(t, pub.messages)
}

func TestCreatePayment_RemoteCompletionFailureAborts(t *testing.T) {
	orders := knownOrder()
	orders.completeErr = apperr.Remotef(errors.New("timeout"), "order service unreachable")
	repo := &fakeRepo{}
	svc := newService(orders, repo, &fakePublisher{})

	_, err := svc.CreatePayment(context.Background(), 5, 100, "USD", "CARD", "")
	require.Equal(t, apperr.Remote, apperr.KindOf(err))
	assert.Empty(t, repo.payments)
}

func TestCreatePayment_PersistFailure(t *testing.T) {
	orders := knownOrder()
	repo := &fakeRepo{createErr: errors.New("disk full")}
	pub := &fakePublisher{}
	svc := newService(orders, repo, pub)

	_, err := svc.CreatePayment(context.Background(), 5, 100, "USD", "CARD", "")
	require.Equal(t, apperr.Unexpected, apperr.KindOf(err))
	// The order completion already happened; that inconsistency is accepted.
	assert.Equal(t, []int64{5}, orders.completed)
	assert.Empty(t, pub.messages)
}

func TestCreatePayment_NotificationFailureIsSwallowed(t *testing.T) {
	orders := knownOrder()
	repo := &fakeRepo{}
	pub := &fakePublisher{}
	svc := newService(orders, repo, pub)

	// Completion succeeds, then the re-fetch for the notification fails.
	orders.fetchErr = errors.New("order service flaked")

	p, err := svc.CreatePayment(context.Background(), 5, 4200, "USD", "CARD", "")
	require.NoError(t, err, "notification failure must not surface")
	require.Len(t, repo.payments, 1)
	assert.Equal(t, p.ID, repo.payments[0].ID)
	assert.Empty(t, pub.messages, "nothing published when the re-fetch fails")
}

func TestViewOrderDetails(t *testing.T) {
	orders := knownOrder()
	svc := newService(orders, &fakeRepo{}, &fakePublisher{})

	o, err := svc.ViewOrderDetails(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), o.OrderID)

	_, err = svc.ViewOrderDetails(context.Background(), 6)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestPaymentByOrder(t *testing.T) {
	repo := &fakeRepo{payments: []*Payment{{ID: "p1", OrderID: 5, Status: StatusSuccess}}}
	svc := newService(knownOrder(), repo, &fakePublisher{})

	p, err := svc.PaymentByOrder(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)

	_, err = svc.PaymentByOrder(context.Background(), 6)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}
