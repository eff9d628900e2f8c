package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopkit/shop-services/internal/shopping"
	"go.uber.org/zap"
)

// CartService is what the shopping handler needs from the service layer.
type CartService interface {
	AddToCart(ctx context.Context, userID, productID int64, quantity int) (*shopping.Cart, error)
	RemoveFromCart(ctx context.Context, userID, productID int64) (*shopping.Cart, error)
	Cart(ctx context.Context, userID int64) (*shopping.Cart, error)
	ClearCart(ctx context.Context, userID int64) error
}

type ShoppingHandler struct {
	Service  CartService
	Identity IdentityResolver
	Log      *zap.Logger
}

type productRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (h *ShoppingHandler) Register(r *chi.Mux) {
	r.Post("/shopping/add-to-cart", h.addToCart)
	r.Delete("/shopping/remove-from-cart", h.removeFromCart)
	r.Get("/shopping/send-cart", h.sendCart)
	r.Get("/shopping/clear-cart", h.clearCart)
}

func (h *ShoppingHandler) addToCart(w http.ResponseWriter, r *http.Request) {
	user, err := h.Identity.Resolve(r)
	if err != nil {
		respondInvalid(w, err.Error())
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondInvalid(w, "invalid request body")
		return
	}
	if req.ProductID == 0 {
		respondInvalid(w, "product ID is required")
		return
	}
	if req.Quantity <= 0 {
		respondInvalid(w, "quantity must be a positive number")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cart, err := h.Service.AddToCart(ctx, user.UserID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(w, h.Log, err, "an unexpected error occurred while adding product to cart")
		return
	}
	respondSuccess(w, "product added to cart successfully", cart)
}

func (h *ShoppingHandler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	user, err := h.Identity.Resolve(r)
	if err != nil {
		respondInvalid(w, err.Error())
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondInvalid(w, "invalid request body")
		return
	}
	if req.ProductID == 0 {
		respondInvalid(w, "product ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cart, err := h.Service.RemoveFromCart(ctx, user.UserID, req.ProductID)
	if err != nil {
		respondError(w, h.Log, err, "an unexpected error occurred while removing product from cart")
		return
	}
	respondSuccess(w, "product removed from cart successfully", cart)
}

func (h *ShoppingHandler) sendCart(w http.ResponseWriter, r *http.Request) {
	user, err := h.Identity.Resolve(r)
	if err != nil {
		respondInvalid(w, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	cart, err := h.Service.Cart(ctx, user.UserID)
	if err != nil {
		respondError(w, h.Log, err, "an unexpected error occurred while retrieving cart")
		return
	}
	respondSuccess(w, "cart retrieved successfully", cart)
}

func (h *ShoppingHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	user, err := h.Identity.Resolve(r)
	if err != nil {
		respondInvalid(w, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Service.ClearCart(ctx, user.UserID); err != nil {
		respondError(w, h.Log, err, "an unexpected error occurred while clearing cart")
		return
	}
	respondSuccess(w, "cart cleared successfully", nil)
}
