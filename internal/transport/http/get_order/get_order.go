package getorder

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/corray333/backend-labs/checkout/internal/service/models/order"
	"github.com/corray333/backend-labs/checkout/internal/transport/http/httperrors"
	"github.com/go-chi/chi/v5"
)

type service interface {
	GetOrder(ctx context.Context, orderID int64) (*order.Order, error)
}

// GetOrder handles the get order by id request.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || orderID <= 0 {
		httperrors.BadRequest(r.Context(), w, errors.New("order id must be a positive integer"))

		return
	}

	o, err := service.GetOrder(r.Context(), orderID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Error getting order", "order_id", orderID, "error", err)
		httperrors.Write(r.Context(), w, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(o); err != nil {
		slog.ErrorContext(r.Context(), "Error sending response for get order", "error", err)
	}
}
