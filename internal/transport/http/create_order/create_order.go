package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/checkout/internal/service/models/order"
	"github.com/corray333/backend-labs/checkout/internal/service/services/ordersvc"
	"github.com/corray333/backend-labs/checkout/internal/transport/http/httperrors"
	"github.com/go-playground/validator/v10"
)

// service is an interface for the service layer.
type service interface {
	CreateOrder(ctx context.Context, model ordersvc.CreateOrderModel) (*order.Order, error)
}

// createOrderRequest represents a create order request.
type createOrderRequest struct {
	OrderID              int64    `json:"orderId"              validate:"gte=0"`
	CustomerID           int64    `json:"customerId"           validate:"gt=0"`
	PaymentToken         string   `json:"paymentToken"         validate:"required"`
	NotificationEmail    string   `json:"notificationEmail"    validate:"omitempty,email"`
	RejectionProbability *float64 `json:"rejectionProbability"`
	MaxAttempts          *int     `json:"maxAttempts"`
}

// Validate validates the create order request.
func (r *createOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

// toModel converts createOrderRequest to ordersvc.CreateOrderModel.
func (r *createOrderRequest) toModel() ordersvc.CreateOrderModel {
	return ordersvc.CreateOrderModel{
		OrderID:              r.OrderID,
		CustomerID:           r.CustomerID,
		PaymentToken:         r.PaymentToken,
		NotificationEmail:    r.NotificationEmail,
		RejectionProbability: r.RejectionProbability,
		MaxAttempts:          r.MaxAttempts,
	}
}

// CreateOrder handles the create order request.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	orderReq := createOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&orderReq); err != nil {
		slog.ErrorContext(r.Context(), "Error decoding request body for create order", "error", err)
		httperrors.BadRequest(r.Context(), w, err)

		return
	}

	if err := orderReq.Validate(); err != nil {
		slog.ErrorContext(r.Context(), "Error validating request body for create order", "error", err)
		httperrors.BadRequest(r.Context(), w, err)

		return
	}

	createdOrder, err := service.CreateOrder(r.Context(), orderReq.toModel())
	if err != nil {
		slog.ErrorContext(r.Context(), "Error creating order", "error", err)
		httperrors.Write(r.Context(), w, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(createdOrder); err != nil {
		slog.ErrorContext(r.Context(), "Error sending response for create order", "error", err)
	}
}
