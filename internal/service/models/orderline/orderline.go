package orderline

import (
	"time"

	"github.com/corray333/backend-labs/checkout/internal/service/models/currency"
)

// OrderLine is one cart item frozen into an order. Prices are copied from the
// cart snapshot at order creation and never re-read from the catalog.
type OrderLine struct {
	ID             int64             `json:"id"`
	OrderID        int64             `json:"orderId"`
	ProductID      int64             `json:"productId"`
	ProductName    string            `json:"productName"`
	UnitPriceCents int64             `json:"unitPriceCents"`
	PriceCurrency  currency.Currency `json:"priceCurrency"`
	Quantity       int               `json:"quantity"`
	SubtotalCents  int64             `json:"subtotalCents"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// RecalculateSubtotal enforces SubtotalCents = UnitPriceCents * Quantity.
// The subtotal is never trusted from an external source.
func (l *OrderLine) RecalculateSubtotal() {
	l.SubtotalCents = l.UnitPriceCents * int64(l.Quantity)
}
