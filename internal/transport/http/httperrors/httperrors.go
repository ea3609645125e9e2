package httperrors

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/corray333/backend-labs/checkout/internal/service/models/apperrors"
	"github.com/corray333/backend-labs/checkout/pkg/http/middleware/correlation"
)

// errorResponse is the wire shape for every failed request.
type errorResponse struct {
	ErrorCode     string `json:"errorCode"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
	Timestamp     string `json:"timestamp"`
}

// Write maps a service error onto the HTTP error body. Domain errors carry
// their own status and code; anything else becomes a 500 INTERNAL_ERROR
// without leaking internals to the caller.
func Write(ctx context.Context, w http.ResponseWriter, err error) {
	code := "INTERNAL_ERROR"
	message := "Internal server error"
	status := http.StatusInternalServerError

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		code = appErr.Code
		message = appErr.Message
		status = appErr.HTTPStatus
	} else {
		slog.ErrorContext(ctx, "Unhandled error", "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(errorResponse{
		ErrorCode:     code,
		Message:       message,
		CorrelationID: correlation.FromContext(ctx),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}); encodeErr != nil {
		slog.ErrorContext(ctx, "Error encoding error response", "error", encodeErr)
	}
}

// BadRequest wraps a malformed-request failure in the standard error body.
func BadRequest(ctx context.Context, w http.ResponseWriter, err error) {
	Write(ctx, w, apperrors.New("INVALID_REQUEST", err.Error(), http.StatusBadRequest))
}
