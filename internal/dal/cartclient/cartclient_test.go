package cartclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/corray333/backend-labs/checkout/internal/service/models/apperrors"
	"github.com/corray333/backend-labs/checkout/pkg/http/middleware/correlation"
)

func TestGetCart(t *testing.T) {
	var gotAuth, gotCorrelation string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotCorrelation = r.Header.Get(correlation.Header)
		if r.URL.Path != "/carts/1" {
			t.Errorf("path = %q, want /carts/1", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":         10,
			"customerId": 1,
			"items": []map[string]any{
				{"productId": 100, "productName": "Ibuprofen 200mg", "unitPriceCents": 599, "quantity": 2},
			},
			"itemCount": 2,
			"status":    "ACTIVE",
		})
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithAPIKey("secret"))
	ctx := correlation.WithID(context.Background(), "corr-42")

	cart, err := client.GetCart(ctx, 1)
	if err != nil {
		t.Fatalf("GetCart() error = %v", err)
	}
	if cart.CustomerID != 1 || len(cart.Items) != 1 {
		t.Errorf("cart = %+v", cart)
	}
	if cart.Items[0].UnitPriceCents != 599 {
		t.Errorf("UnitPriceCents = %d, want 599", cart.Items[0].UnitPriceCents)
	}
	if gotAuth != "ApiKey secret" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "ApiKey secret")
	}
	if gotCorrelation != "corr-42" {
		t.Errorf("correlation header = %q, want corr-42", gotCorrelation)
	}
}

func TestGetCartNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.GetCart(context.Background(), 7)

	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Code != "CART_NOT_FOUND" {
		t.Fatalf("error = %v, want CART_NOT_FOUND", err)
	}
}

func TestGetCartUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.GetCart(context.Background(), 7)

	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Code != "CART_SERVICE_ERROR" {
		t.Fatalf("error = %v, want CART_SERVICE_ERROR", err)
	}
}

func TestClearCart(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	if err := client.ClearCart(context.Background(), 3); err != nil {
		t.Fatalf("ClearCart() error = %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/carts/3" {
		t.Errorf("request = %s %s, want DELETE /carts/3", gotMethod, gotPath)
	}
}

func TestClearCartFailureReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	if err := client.ClearCart(context.Background(), 3); err == nil {
		t.Fatal("expected error on upstream failure")
	}
}
