package order

import (
	"errors"
	"time"

	"github.com/corray333/backend-labs/checkout/internal/service/models/currency"
	"github.com/corray333/backend-labs/checkout/internal/service/models/orderline"
)

// Status is the order state machine:
//
//	PENDING -> PROCESSING -> APPROVED | REJECTED
//
// APPROVED and REJECTED are terminal.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusApproved   Status = "APPROVED"
	StatusRejected   Status = "REJECTED"
)

var (
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrOrderNotFound indicates the requested order does not exist.
	ErrOrderNotFound = errors.New("order not found")
)

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition leaves this status.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusApproved, StatusRejected:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// Order is one persisted checkout attempt.
type Order struct {
	ID                 int64                 `json:"id"`
	CustomerID         int64                 `json:"customerId"`
	PaymentToken       string                `json:"paymentToken"`
	NotificationEmail  string                `json:"notificationEmail,omitempty"`
	Status             Status                `json:"status"`
	CorrelationID      string                `json:"correlationId,omitempty"`
	RejectionReason    string                `json:"rejectionReason,omitempty"`
	PaymentAttempts    int                   `json:"paymentAttempts"`
	TotalPriceCents    int64                 `json:"totalPriceCents"`
	TotalPriceCurrency currency.Currency     `json:"totalPriceCurrency"`
	CreatedAt          time.Time             `json:"createdAt"`
	UpdatedAt          time.Time             `json:"updatedAt"`
	OrderLines         []orderline.OrderLine `json:"orderLines"`
}

// AddLine materializes a line on the order, recomputing the line subtotal and
// the order total.
func (o *Order) AddLine(line orderline.OrderLine) {
	line.RecalculateSubtotal()
	o.OrderLines = append(o.OrderLines, line)
	o.RecalculateTotal()
}

// RecalculateTotal enforces TotalPriceCents = sum of line subtotals.
func (o *Order) RecalculateTotal() {
	var total int64
	for i := range o.OrderLines {
		total += o.OrderLines[i].SubtotalCents
	}
	o.TotalPriceCents = total
}
