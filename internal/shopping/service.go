package shopping

import (
	"context"

	"github.com/shopkit/shop-services/internal/apperr"
	"github.com/shopkit/shop-services/internal/clients"
	"go.uber.org/zap"
)

type ProductAPI interface {
	ProductByID(ctx context.Context, id int64) (clients.ProductResponse, error)
	DeductStock(ctx context.Context, id int64, quantity int) (clients.ProductResponse, error)
}

type UserAPI interface {
	UserByID(ctx context.Context, id int64) (clients.UserResponse, error)
}

type Repository interface {
	Cart(ctx context.Context, userID int64) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
}

// Service implements the cart mutations on top of the product/user clients
// and the cart repository.
type Service struct {
	Repo     Repository
	Products ProductAPI
	Users    UserAPI
	Log      *zap.Logger
}

// AddToCart validates the product, the user and the available stock, deducts
// the stock remotely, then merges the line into the cart and persists it. A
// cart is created on first add.
func (s *Service) AddToCart(ctx context.Context, userID, productID int64, quantity int) (*Cart, error) {
	product, err := s.Products.ProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Users.UserByID(ctx, userID); err != nil {
		return nil, err
	}
	if quantity > product.Stock {
		return nil, apperr.Invalidf(
			"insufficient stock for product %d: requested %d, available %d",
			productID, quantity, product.Stock)
	}

	cart, err := s.Repo.Cart(ctx, userID)
	if err != nil {
		if apperr.KindOf(err) != apperr.NotFound {
			return nil, err
		}
		cart = NewCart(userID)
	}

	if _, err := s.Products.DeductStock(ctx, productID, quantity); err != nil {
		return nil, err
	}

	cart.AddItem(productID, quantity, product.PriceCents)
	if err := s.Repo.Save(ctx, cart); err != nil {
		return nil, apperr.Unexpectedf(err, "save cart for user %d", userID)
	}

	s.Log.Info("product added to cart",
		zap.Int64("user_id", userID),
		zap.Int64("product_id", productID),
		zap.Int("quantity", quantity),
		zap.Int64("total_cents", cart.TotalCents))
	return cart, nil
}

// RemoveFromCart deletes the whole line for productID regardless of quantity.
func (s *Service) RemoveFromCart(ctx context.Context, userID, productID int64) (*Cart, error) {
	cart, err := s.Repo.Cart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !cart.RemoveItem(productID) {
		return nil, apperr.Invalidf("product %d is not in the cart", productID)
	}
	if err := s.Repo.Save(ctx, cart); err != nil {
		return nil, apperr.Unexpectedf(err, "save cart for user %d", userID)
	}

	s.Log.Info("product removed from cart",
		zap.Int64("user_id", userID),
		zap.Int64("product_id", productID),
		zap.Int64("total_cents", cart.TotalCents))
	return cart, nil
}

// Cart returns the user's cart as-is.
func (s *Service) Cart(ctx context.Context, userID int64) (*Cart, error) {
	return s.Repo.Cart(ctx, userID)
}

// ClearCart empties every line and zeroes the total.
func (s *Service) ClearCart(ctx context.Context, userID int64) error {
	cart, err := s.Repo.Cart(ctx, userID)
	if err != nil {
		return err
	}
	cart.Clear()
	if err := s.Repo.Save(ctx, cart); err != nil {
		return apperr.Unexpectedf(err, "save cart for user %d", userID)
	}

	s.Log.Info("cart cleared", zap.Int64("user_id", userID))
	return nil
}
