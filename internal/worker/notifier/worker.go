package notifier

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/corray333/backend-labs/checkout/internal/dal/rabbitmq"
	"github.com/corray333/backend-labs/checkout/internal/service/models/notification"
	"github.com/corray333/backend-labs/checkout/pkg/http/middleware/correlation"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
)

// Worker publishes customer notifications to the mail queue. Sends are
// fire-and-forget: a publish failure or a full buffer is logged and dropped,
// it never reaches the checkout workflow.
type Worker struct {
	rabbitClient *rabbitmq.Client
	queueName    string
	pending      chan notification.Notification
	stopCh       chan struct{}
}

// NewWorker creates a new notification worker.
func NewWorker(rabbitClient *rabbitmq.Client) *Worker {
	queueName := viper.GetString("rabbitmq.notifications.queue")
	if queueName == "" {
		queueName = "notifications.email"
	}

	bufferSize := viper.GetInt("rabbitmq.notifications.buffer_size")
	if bufferSize == 0 {
		bufferSize = 64
	}

	return &Worker{
		rabbitClient: rabbitClient,
		queueName:    queueName,
		pending:      make(chan notification.Notification, bufferSize),
		stopCh:       make(chan struct{}),
	}
}

// Start begins publishing queued notifications.
func (w *Worker) Start(ctx context.Context) {
	if _, err := w.rabbitClient.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    w.queueName,
		Durable: true,
	}); err != nil {
		slog.Error("Failed to declare notifications queue", "queue", w.queueName, "error", err)

		return
	}

	slog.Info("Notification worker started", "queue", w.queueName)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Notification worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Notification worker stopped")

			return
		case n := <-w.pending:
			w.publish(n)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

// SendConfirmation queues an order confirmation email.
func (w *Worker) SendConfirmation(ctx context.Context, email string, orderID int64, customerName string, amountCents int64, status string) {
	w.enqueue(ctx, notification.Notification{
		Kind:          notification.KindOrderConfirmation,
		Email:         email,
		OrderID:       orderID,
		CustomerName:  customerName,
		AmountCents:   amountCents,
		PaymentStatus: status,
		CorrelationID: correlation.FromContext(ctx),
	})
}

// SendFailureNotice queues a payment failure email.
func (w *Worker) SendFailureNotice(ctx context.Context, email string, orderID int64, customerName string, amountCents int64, attempts int) {
	w.enqueue(ctx, notification.Notification{
		Kind:          notification.KindPaymentFailure,
		Email:         email,
		OrderID:       orderID,
		CustomerName:  customerName,
		AmountCents:   amountCents,
		Attempts:      attempts,
		CorrelationID: correlation.FromContext(ctx),
	})
}

func (w *Worker) enqueue(ctx context.Context, n notification.Notification) {
	select {
	case w.pending <- n:
	default:
		slog.WarnContext(ctx, "Notification buffer full, dropping notification",
			"kind", n.Kind,
			"order_id", n.OrderID,
		)
	}
}

func (w *Worker) publish(n notification.Notification) {
	body, err := json.Marshal(n)
	if err != nil {
		slog.Error("Failed to marshal notification", "kind", n.Kind, "order_id", n.OrderID, "error", err)

		return
	}

	err = w.rabbitClient.Channel().Publish(
		"",
		w.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		slog.Error("Failed to publish notification",
			"kind", n.Kind,
			"order_id", n.OrderID,
			"correlation_id", n.CorrelationID,
			"error", err,
		)

		return
	}

	slog.Info("Notification published", "kind", n.Kind, "order_id", n.OrderID)
}
