package createorder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/corray333/backend-labs/checkout/internal/service/models/apperrors"
	"github.com/corray333/backend-labs/checkout/internal/service/models/order"
	"github.com/corray333/backend-labs/checkout/internal/service/services/ordersvc"
)

type stubService struct {
	order *order.Order
	err   error
	model ordersvc.CreateOrderModel
	calls int
}

func (s *stubService) CreateOrder(ctx context.Context, model ordersvc.CreateOrderModel) (*order.Order, error) {
	s.calls++
	s.model = model
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func TestCreateOrderCreated(t *testing.T) {
	svc := &stubService{order: &order.Order{ID: 5, CustomerID: 1, Status: order.StatusApproved, TotalPriceCents: 2497}}

	body := `{"customerId":1,"paymentToken":"tok-1","notificationEmail":"jordan@example.com","maxAttempts":5}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()

	CreateOrder(rec, req, svc)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var got order.Order
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != 5 || got.Status != order.StatusApproved {
		t.Errorf("response = %+v", got)
	}

	if svc.model.CustomerID != 1 || svc.model.PaymentToken != "tok-1" {
		t.Errorf("model = %+v", svc.model)
	}
	if svc.model.MaxAttempts == nil || *svc.model.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %v, want 5", svc.model.MaxAttempts)
	}
	if svc.model.RejectionProbability != nil {
		t.Errorf("RejectionProbability = %v, want nil when omitted", svc.model.RejectionProbability)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing token", body: `{"customerId":1}`},
		{name: "bad customer id", body: `{"customerId":0,"paymentToken":"tok-1"}`},
		{name: "bad email", body: `{"customerId":1,"paymentToken":"tok-1","notificationEmail":"not-an-email"}`},
		{name: "malformed json", body: `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{}
			req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			CreateOrder(rec, req, svc)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if svc.calls != 0 {
				t.Errorf("service calls = %d, want 0", svc.calls)
			}
		})
	}
}

func TestCreateOrderDomainErrorBody(t *testing.T) {
	svc := &stubService{err: apperrors.CartEmpty(1)}

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"customerId":1,"paymentToken":"tok-1"}`))
	rec := httptest.NewRecorder()

	CreateOrder(rec, req, svc)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var body struct {
		ErrorCode string `json:"errorCode"`
		Message   string `json:"message"`
		Timestamp string `json:"timestamp"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.ErrorCode != "CART_EMPTY" {
		t.Errorf("errorCode = %q, want CART_EMPTY", body.ErrorCode)
	}
	if body.Message == "" || body.Timestamp == "" {
		t.Errorf("body = %+v, want message and timestamp", body)
	}
}

func TestCreateOrderUnexpectedErrorIsOpaque(t *testing.T) {
	svc := &stubService{err: context.DeadlineExceeded}

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"customerId":1,"paymentToken":"tok-1"}`))
	rec := httptest.NewRecorder()

	CreateOrder(rec, req, svc)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var body struct {
		ErrorCode string `json:"errorCode"`
		Message   string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.ErrorCode != "INTERNAL_ERROR" {
		t.Errorf("errorCode = %q, want INTERNAL_ERROR", body.ErrorCode)
	}
	if strings.Contains(body.Message, "deadline") {
		t.Errorf("message leaks internals: %q", body.Message)
	}
}
