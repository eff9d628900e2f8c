package clients

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopkit/shop-services/internal/apperr"
)

type OrderResponse struct {
	OrderID     int64     `json:"order_id"`
	Name        string    `json:"name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	OrderStatus string    `json:"order_status"`
	OrderDate   time.Time `json:"order_date"`
	TotalCents  int64     `json:"total_cents"`
}

// OrderClient talks to the order service.
type OrderClient struct{ c *Client }

func NewOrderClient(c *Client) *OrderClient { return &OrderClient{c: c} }

func (oc *OrderClient) OrderByID(ctx context.Context, id int64) (OrderResponse, error) {
	var out OrderResponse
	err := oc.c.getJSON(ctx, fmt.Sprintf("/order/%d", id), &out)
	if errors.Is(err, errStatusNotFound) {
		return OrderResponse{}, apperr.NotFoundf("order not found: id=%d", id)
	}
	if err != nil {
		return OrderResponse{}, err
	}
	return out, nil
}

// CompleteOrder asks the order service to move the order to COMPLETED.
func (oc *OrderClient) CompleteOrder(ctx context.Context, id int64) error {
	err := oc.c.putJSON(ctx, fmt.Sprintf("/order/complete/%d", id), nil, nil)
	if errors.Is(err, errStatusNotFound) {
		return apperr.NotFoundf("order not found: id=%d", id)
	}
	return err
}
