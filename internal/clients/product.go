package clients

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopkit/shop-services/internal/apperr"
)

type ProductResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Stock      int    `json:"stock"`
	PriceCents int64  `json:"price_cents"`
}

// ProductClient talks to the product service. Its responses arrive wrapped
// in the standard {status, message, data} envelope.
type ProductClient struct{ c *Client }

func NewProductClient(c *Client) *ProductClient { return &ProductClient{c: c} }

func (pc *ProductClient) ProductByID(ctx context.Context, id int64) (ProductResponse, error) {
	var env envelope[ProductResponse]
	err := pc.c.getJSON(ctx, fmt.Sprintf("/product/%d", id), &env)
	if errors.Is(err, errStatusNotFound) {
		return ProductResponse{}, apperr.NotFoundf("product not found: id=%d", id)
	}
	if err != nil {
		return ProductResponse{}, err
	}
	return env.Data, nil
}

// DeductStock subtracts quantity units from the product's stock and returns
// the updated projection.
func (pc *ProductClient) DeductStock(ctx context.Context, id int64, quantity int) (ProductResponse, error) {
	var env envelope[ProductResponse]
	err := pc.c.putJSON(ctx, fmt.Sprintf("/product/update/stock/%d", id), quantity, &env)
	if errors.Is(err, errStatusNotFound) {
		return ProductResponse{}, apperr.NotFoundf("product not found: id=%d", id)
	}
	if err != nil {
		return ProductResponse{}, err
	}
	return env.Data, nil
}
