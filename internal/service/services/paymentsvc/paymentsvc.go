package paymentsvc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/corray333/backend-labs/checkout/internal/service/models/apperrors"
	"github.com/corray333/backend-labs/checkout/internal/service/models/payment"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
)

// vault resolves and verifies payment tokens.
type vault interface {
	ValidateToken(ctx context.Context, tok string) error
}

// notifier delivers best-effort customer notifications.
type notifier interface {
	SendFailureNotice(ctx context.Context, email string, orderID int64, customerName string, amountCents int64, attempts int)
}

// PaymentService decides payment authorizations with a bounded retry loop.
type PaymentService struct {
	vault    vault
	notifier notifier
	decider  Decider

	defaultRejectionProbability float64
	defaultMaxAttempts          int
	retryBackoff                time.Duration
}

// option is a function that configures the PaymentService.
type option func(*PaymentService)

// MustNewPaymentService creates a new PaymentService. Defaults come from
// config; options override them.
func MustNewPaymentService(opts ...option) *PaymentService {
	s := &PaymentService{
		decider:                     NewRandomDecider(),
		defaultRejectionProbability: 0.3,
		defaultMaxAttempts:          3,
		retryBackoff:                500 * time.Millisecond,
	}

	if viper.IsSet("payment.rejection_probability") {
		s.defaultRejectionProbability = viper.GetFloat64("payment.rejection_probability")
	}
	if viper.IsSet("payment.retry_count") {
		s.defaultMaxAttempts = viper.GetInt("payment.retry_count")
	}
	if viper.IsSet("payment.retry_backoff_ms") {
		s.retryBackoff = time.Duration(viper.GetInt("payment.retry_backoff_ms")) * time.Millisecond
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithVault sets the card vault for the PaymentService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithVault(v vault) option {
	return func(s *PaymentService) {
		s.vault = v
	}
}

// WithNotifier sets the notification sink for the PaymentService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithNotifier(n notifier) option {
	return func(s *PaymentService) {
		s.notifier = n
	}
}

// WithDecider sets the attempt outcome decider for the PaymentService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithDecider(d Decider) option {
	return func(s *PaymentService) {
		s.decider = d
	}
}

// WithRetryBackoff sets the flat delay between attempts.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithRetryBackoff(backoff time.Duration) option {
	return func(s *PaymentService) {
		s.retryBackoff = backoff
	}
}

// Authorize validates the token and runs the retry loop. Approved and
// declined are both business outcomes, not errors; only malformed overrides
// and vault failures surface as errors, and they consume no attempts.
func (s *PaymentService) Authorize(ctx context.Context, model payment.AuthorizeModel) (*payment.Outcome, error) {
	ctx, span := otel.Tracer("paymentsvc").Start(ctx, "PaymentService.Authorize")
	defer span.End()

	probability := s.defaultRejectionProbability
	if model.RejectionProbability != nil {
		probability = *model.RejectionProbability
	}
	maxAttempts := s.defaultMaxAttempts
	if model.MaxAttempts != nil {
		maxAttempts = *model.MaxAttempts
	}

	if probability < 0.0 || probability > 1.0 {
		slog.WarnContext(ctx, "Invalid rejection probability", "probability", probability)

		return nil, apperrors.InvalidRejectionProbability(probability)
	}
	if maxAttempts < 1 || maxAttempts > 10 {
		slog.WarnContext(ctx, "Invalid retry count", "retry_count", maxAttempts)

		return nil, apperrors.InvalidRetryCount(maxAttempts)
	}

	slog.InfoContext(ctx, "Starting payment authorization",
		"order_id", model.OrderID,
		"amount_cents", model.AmountCents,
		"rejection_probability", probability,
		"max_attempts", maxAttempts,
	)

	if err := s.vault.ValidateToken(ctx, model.Token); err != nil {
		return nil, err
	}

	attempts := 0
	approved := false
	message := ""

	for attempts < maxAttempts && !approved {
		attempts++
		slog.InfoContext(ctx, "Payment attempt",
			"order_id", model.OrderID,
			"attempt", attempts,
			"max_attempts", maxAttempts,
		)

		if s.decider.DecideOutcome(probability) {
			message = fmt.Sprintf("Payment rejected on attempt %d", attempts)
			slog.WarnContext(ctx, "Payment attempt rejected", "order_id", model.OrderID, "attempt", attempts)

			if attempts < maxAttempts {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(s.retryBackoff):
				}
			}
		} else {
			approved = true
			message = "Payment approved"
			slog.InfoContext(ctx, "Payment approved", "order_id", model.OrderID, "attempt", attempts)
		}
	}

	if !approved {
		slog.ErrorContext(ctx, "Payment failed after all attempts",
			"order_id", model.OrderID,
			"attempts", attempts,
		)

		if s.notifier != nil && model.NotificationEmail != "" {
			s.notifier.SendFailureNotice(ctx, model.NotificationEmail, model.OrderID, model.CustomerName, model.AmountCents, attempts)
		}
	}

	return &payment.Outcome{
		Approved: approved,
		Message:  message,
		Attempts: attempts,
	}, nil
}
