package notification

// Kind selects the template the mailer renders.
type Kind string

const (
	KindOrderConfirmation Kind = "order_confirmation"
	KindPaymentFailure    Kind = "payment_failure"
)

// Notification is the message published to the notifications queue. Delivery
// is fire-and-forget: nothing in the checkout workflow depends on it.
type Notification struct {
	Kind          Kind   `json:"kind"`
	Email         string `json:"email"`
	OrderID       int64  `json:"orderId"`
	CustomerName  string `json:"customerName"`
	AmountCents   int64  `json:"amountCents"`
	PaymentStatus string `json:"paymentStatus,omitempty"`
	Attempts      int    `json:"attempts,omitempty"`
	CorrelationID string `json:"correlationId,omitempty"`
}
