package payment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopkit/shop-services/internal/apperr"
	"github.com/shopkit/shop-services/internal/clients"
	"github.com/shopkit/shop-services/internal/events"
	kafkax "github.com/shopkit/shop-services/internal/kafka"
	"go.uber.org/zap"
)

type OrderAPI interface {
	OrderByID(ctx context.Context, id int64) (clients.OrderResponse, error)
	CompleteOrder(ctx context.Context, id int64) error
}

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	ByOrder(ctx context.Context, orderID int64) (*Payment, error)
}

type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// Service runs the payment sequence: complete the order remotely, persist
// the payment, then best-effort publish a notification event. There is no
// compensation between the steps.
type Service struct {
	Orders      OrderAPI
	Repo        Repository
	Producer    Publisher
	ServiceName string
	Log         *zap.Logger
}

// ViewOrderDetails fetches the order for payment display.
func (s *Service) ViewOrderDetails(ctx context.Context, orderID int64) (clients.OrderResponse, error) {
	order, err := s.Orders.OrderByID(ctx, orderID)
	if err != nil {
		return clients.OrderResponse{}, err
	}
	return order, nil
}

// CreatePayment completes the order, persists the payment with a terminal
// SUCCESS status and publishes a PaymentCompleted event. The order is marked
// complete before the payment row exists; a persistence failure after that
// point leaves the two stores inconsistent and is surfaced, not corrected.
// Notification failures never reach the caller.
func (s *Service) CreatePayment(ctx context.Context, orderID, totalCents int64, currency, method, description string) (*Payment, error) {
	if err := s.Orders.CompleteOrder(ctx, orderID); err != nil {
		return nil, err
	}

	p := &Payment{
		ID:          uuid.NewString(),
		OrderID:     orderID,
		TotalCents:  totalCents,
		Currency:    strings.ToUpper(currency),
		Method:      method,
		Description: description,
		Status:      StatusSuccess,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, apperr.Unexpectedf(err, "save payment record for order %d", orderID)
	}

	s.Log.Info("payment saved",
		zap.String("payment_id", p.ID),
		zap.Int64("order_id", orderID),
		zap.Int64("total_cents", totalCents),
		zap.String("method", method))

	s.notifyPaymentCompleted(ctx, p)

	return p, nil
}

// PaymentByOrder returns the persisted payment for an order.
func (s *Service) PaymentByOrder(ctx context.Context, orderID int64) (*Payment, error) {
	return s.Repo.ByOrder(ctx, orderID)
}

// notifyPaymentCompleted re-fetches the order for customer contact details
// and publishes the event. Best-effort: every failure here, the re-fetch
// included, is logged and swallowed.
func (s *Service) notifyPaymentCompleted(ctx context.Context, p *Payment) {
	order, err := s.Orders.OrderByID(ctx, p.OrderID)
	if err != nil {
		s.Log.Error("payment notification skipped: order re-fetch failed",
			zap.Int64("order_id", p.OrderID),
			zap.String("payment_id", p.ID),
			zap.Error(err))
		return
	}

	orderDate := order.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now().UTC()
	}

	ev := events.Envelope{
		EventID:       uuid.NewString(),
		EventType:     events.EventPaymentCompleted,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.ServiceName,
		CorrelationID: string(events.PartitionKey(p.OrderID)),
		Payload: kafkax.MustMarshal(events.PaymentCompletedPayload{
			OrderID:     p.OrderID,
			PaymentID:   p.ID,
			UserName:    strings.TrimSpace(order.Name + " " + order.LastName),
			UserEmail:   order.Email,
			UserAddress: order.Address,
			UserPhone:   order.Phone,
			OrderStatus: order.OrderStatus,
			OrderDate:   orderDate,
			TotalCents:  p.TotalCents,
		}),
	}

	s.Producer.Publish(events.PartitionKey(p.OrderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(events.EventPaymentCompleted)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)

	s.Log.Info("payment notification published",
		zap.Int64("order_id", p.OrderID),
		zap.String("payment_id", p.ID))
}
