package clients

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopkit/shop-services/internal/apperr"
)

type UserResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	Role     string `json:"role"`
}

// UserClient talks to the auth service's internal user lookup.
type UserClient struct{ c *Client }

func NewUserClient(c *Client) *UserClient { return &UserClient{c: c} }

func (uc *UserClient) UserByID(ctx context.Context, id int64) (UserResponse, error) {
	var out UserResponse
	err := uc.c.getJSON(ctx, fmt.Sprintf("/users/client/user/%d", id), &out)
	if errors.Is(err, errStatusNotFound) {
		return UserResponse{}, apperr.NotFoundf("user not found: id=%d", id)
	}
	if err != nil {
		return UserResponse{}, err
	}
	return out, nil
}
