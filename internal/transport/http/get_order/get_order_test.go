package getorder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/corray333/backend-labs/checkout/internal/service/models/apperrors"
	"github.com/corray333/backend-labs/checkout/internal/service/models/order"
	"github.com/go-chi/chi/v5"
)

type stubService struct {
	order *order.Order
	err   error
}

func (s *stubService) GetOrder(ctx context.Context, orderID int64) (*order.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func newRouter(svc *stubService) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/orders/{id}", func(w http.ResponseWriter, req *http.Request) {
		GetOrder(w, req, svc)
	})
	return r
}

func TestGetOrder(t *testing.T) {
	svc := &stubService{order: &order.Order{ID: 42, Status: order.StatusApproved}}
	rec := httptest.NewRecorder()

	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders/42", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got order.Order
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != 42 {
		t.Errorf("ID = %d, want 42", got.ID)
	}
}

func TestGetOrderNotFound(t *testing.T) {
	svc := &stubService{err: apperrors.OrderNotFound(42)}
	rec := httptest.NewRecorder()

	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders/42", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body struct {
		ErrorCode string `json:"errorCode"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.ErrorCode != "ORDER_NOT_FOUND" {
		t.Errorf("errorCode = %q, want ORDER_NOT_FOUND", body.ErrorCode)
	}
}

func TestGetOrderBadID(t *testing.T) {
	for _, id := range []string{"abc", "-1", "0"} {
		rec := httptest.NewRecorder()
		newRouter(&stubService{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders/"+id, nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("id %q: status = %d, want 400", id, rec.Code)
		}
	}
}
