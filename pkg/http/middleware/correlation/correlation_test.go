package correlation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMiddlewarePropagatesSuppliedID(t *testing.T) {
	var seen string
	handler := NewCorrelationMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set(Header, "corr-123")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if seen != "corr-123" {
		t.Fatalf("expected correlation id from header, got %q", seen)
	}
	if got := rec.Header().Get(Header); got != "corr-123" {
		t.Fatalf("expected id echoed in response header, got %q", got)
	}
}

func TestMiddlewareGeneratesID(t *testing.T) {
	var seen string
	handler := NewCorrelationMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders", nil))

	if seen == "" {
		t.Fatal("expected a generated correlation id")
	}
	if rec.Header().Get(Header) != seen {
		t.Fatal("expected generated id echoed in response header")
	}
}

func TestFromContextMissing(t *testing.T) {
	if got := FromContext(context.Background()); got != "" {
		t.Fatalf("expected empty id, got %q", got)
	}
}
