package order

import (
	"testing"

	"github.com/corray333/backend-labs/checkout/internal/service/models/currency"
	"github.com/corray333/backend-labs/checkout/internal/service/models/orderline"
)

func TestAddLineRecomputesSubtotalAndTotal(t *testing.T) {
	o := Order{TotalPriceCurrency: currency.CurrencyUSD}

	o.AddLine(orderline.OrderLine{
		ProductID:      1,
		ProductName:    "Ibuprofen 400mg",
		UnitPriceCents: 599,
		Quantity:       2,
		// Stale value from an external source must be discarded.
		SubtotalCents: 1,
	})
	o.AddLine(orderline.OrderLine{
		ProductID:      2,
		ProductName:    "Vitamin C 1g",
		UnitPriceCents: 1299,
		Quantity:       1,
	})

	if got := o.OrderLines[0].SubtotalCents; got != 1198 {
		t.Fatalf("expected first line subtotal 1198, got %d", got)
	}
	if got := o.OrderLines[1].SubtotalCents; got != 1299 {
		t.Fatalf("expected second line subtotal 1299, got %d", got)
	}
	if o.TotalPriceCents != 2497 {
		t.Fatalf("expected total 2497, got %d", o.TotalPriceCents)
	}
}

func TestRecalculateTotalEmptyOrder(t *testing.T) {
	o := Order{TotalPriceCents: 42}
	o.RecalculateTotal()
	if o.TotalPriceCents != 0 {
		t.Fatalf("expected zero total for order without lines, got %d", o.TotalPriceCents)
	}
}

func TestStatusIsTerminal(t *testing.T) {
	cases := []struct {
		status   Status
		terminal bool
	}{
		{StatusPending, false},
		{StatusProcessing, false},
		{StatusApproved, true},
		{StatusRejected, true},
	}
	for _, tc := range cases {
		if tc.status.IsTerminal() != tc.terminal {
			t.Fatalf("IsTerminal(%s) = %v, expected %v", tc.status, !tc.terminal, tc.terminal)
		}
	}
}

func TestParseStatus(t *testing.T) {
	if _, err := ParseStatus("SHIPPED"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	got, err := ParseStatus("PROCESSING")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != StatusProcessing {
		t.Fatalf("expected PROCESSING, got %s", got)
	}
}
