package payment

import "time"

const StatusSuccess = "SUCCESS"

// Payment is one committed transaction against one order. It is written once
// with a terminal SUCCESS status and never updated.
type Payment struct {
	ID          string    `json:"id"`
	OrderID     int64     `json:"order_id"`
	TotalCents  int64     `json:"total_cents"`
	Currency    string    `json:"currency"`
	Method      string    `json:"method"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
