// Package events holds the wire format shared by the payment producer and
// the notification consumer.
package events

import (
	"encoding/json"
	"strconv"
	"time"
)

const (
	EventPaymentCompleted = "PaymentCompleted"
)

const (
	TopicPaymentNotification = "payment.notification"
)

type Envelope struct {
	EventID       string          `json:"event_id"` // uuid
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"` // RFC3339
	Producer      string          `json:"producer"`    // e.g. "payment-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id
	Payload       json.RawMessage `json:"payload"`
}

// PaymentCompletedPayload carries everything the notification service needs
// to contact the customer, so it never has to call back into other services.
type PaymentCompletedPayload struct {
	OrderID     int64     `json:"order_id"`
	PaymentID   string    `json:"payment_id"`
	UserName    string    `json:"user_name"`
	UserEmail   string    `json:"user_email"`
	UserAddress string    `json:"user_address"`
	UserPhone   string    `json:"user_phone"`
	OrderStatus string    `json:"order_status"`
	OrderDate   time.Time `json:"order_date"`
	TotalCents  int64     `json:"total_cents"`
}

// Partition key = order id, so all events for one order stay ordered.
func PartitionKey(orderID int64) []byte {
	return []byte(strconv.FormatInt(orderID, 10))
}
