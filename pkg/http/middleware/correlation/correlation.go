package correlation

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header is the HTTP header carrying the correlation id between services.
const Header = "X-Correlation-Id"

type ctxKey struct{}

// FromContext returns the correlation id stored in the context, or "".
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}

	return ""
}

// WithID returns a context carrying the given correlation id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// NewCorrelationMiddleware reads the correlation id from the request header,
// generating one when the caller did not supply it, stores it in the request
// context and echoes it back in the response header.
func NewCorrelationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(Header, id)

		next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
	})
}
