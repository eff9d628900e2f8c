package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopkit/shop-services/internal/clients"
	"github.com/shopkit/shop-services/internal/payment"
	"go.uber.org/zap"
)

// PaymentService is what the payment handler needs from the service layer.
type PaymentService interface {
	ViewOrderDetails(ctx context.Context, orderID int64) (clients.OrderResponse, error)
	CreatePayment(ctx context.Context, orderID, totalCents int64, currency, method, description string) (*payment.Payment, error)
	PaymentByOrder(ctx context.Context, orderID int64) (*payment.Payment, error)
}

type PaymentHandler struct {
	Service  PaymentService
	Identity IdentityResolver
	Log      *zap.Logger
}

type createPaymentRequest struct {
	OrderID     int64  `json:"order_id"`
	TotalCents  int64  `json:"total_cents"`
	Currency    string `json:"currency"`
	Method      string `json:"method"`
	Description string `json:"description"`
}

func (h *PaymentHandler) Register(r *chi.Mux) {
	r.Get("/payment/order-details/{orderId}", h.orderDetails)
	r.Post("/payment/create-payment", h.createPayment)
	r.Get("/payment/by-order/{orderId}", h.paymentByOrder)
}

func orderIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "orderId"), 10, 64)
	return id, err == nil && id > 0
}

func (h *PaymentHandler) orderDetails(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDParam(r)
	if !ok {
		respondInvalid(w, "order ID must be a positive number")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	order, err := h.Service.ViewOrderDetails(ctx, orderID)
	if err != nil {
		respondError(w, h.Log, err, "failed to retrieve order details")
		return
	}
	respondSuccess(w, "order details retrieved successfully", order)
}

func (h *PaymentHandler) createPayment(w http.ResponseWriter, r *http.Request) {
	user, err := h.Identity.Resolve(r)
	if err != nil {
		respondInvalid(w, err.Error())
		return
	}

	var req createPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondInvalid(w, "invalid request body")
		return
	}
	switch {
	case req.OrderID <= 0:
		respondInvalid(w, "order ID is required")
		return
	case req.TotalCents <= 0:
		respondInvalid(w, "total must be a positive amount")
		return
	case req.Currency == "":
		respondInvalid(w, "currency is required")
		return
	case req.Method == "":
		respondInvalid(w, "payment method is required")
		return
	}

	h.Log.Info("create payment request",
		zap.Int64("user_id", user.UserID),
		zap.Int64("order_id", req.OrderID),
		zap.Int64("total_cents", req.TotalCents),
		zap.String("method", req.Method))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	p, err := h.Service.CreatePayment(ctx, req.OrderID, req.TotalCents, req.Currency, req.Method, req.Description)
	if err != nil {
		respondError(w, h.Log, err, "an unexpected error occurred while processing payment")
		return
	}
	respondSuccess(w, "payment processed successfully", p)
}

func (h *PaymentHandler) paymentByOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDParam(r)
	if !ok {
		respondInvalid(w, "order ID must be a positive number")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.Service.PaymentByOrder(ctx, orderID)
	if err != nil {
		respondError(w, h.Log, err, "failed to retrieve payment")
		return
	}
	respondSuccess(w, "payment retrieved successfully", p)
}
