package ordersvc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/corray333/backend-labs/checkout/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/checkout/internal/service/models/apperrors"
	"github.com/corray333/backend-labs/checkout/internal/service/models/cart"
	"github.com/corray333/backend-labs/checkout/internal/service/models/currency"
	"github.com/corray333/backend-labs/checkout/internal/service/models/customer"
	"github.com/corray333/backend-labs/checkout/internal/service/models/order"
	"github.com/corray333/backend-labs/checkout/internal/service/models/orderline"
	"github.com/corray333/backend-labs/checkout/internal/service/models/payment"
	"github.com/corray333/backend-labs/checkout/pkg/http/middleware/correlation"
	"go.opentelemetry.io/otel"
)

// cartGateway reads and clears customer carts in the cart service.
type cartGateway interface {
	GetCart(ctx context.Context, customerID int64) (*cart.Cart, error)
	ClearCart(ctx context.Context, customerID int64) error
}

// customerDirectory resolves customer records in the customer service.
type customerDirectory interface {
	GetCustomer(ctx context.Context, customerID int64) (*customer.Customer, error)
}

// authorizer runs the payment decision for an order.
type authorizer interface {
	Authorize(ctx context.Context, model payment.AuthorizeModel) (*payment.Outcome, error)
}

// notifier delivers best-effort customer notifications.
type notifier interface {
	SendConfirmation(ctx context.Context, email string, orderID int64, customerName string, amountCents int64, status string)
	SendFailureNotice(ctx context.Context, email string, orderID int64, customerName string, amountCents int64, attempts int)
}

// OrderService orchestrates the checkout workflow: cart snapshot, customer
// lookup, order persistence and payment authorization.
type OrderService struct {
	orderRepo iorderrepo.IOrderRepository
	carts     cartGateway
	customers customerDirectory
	payments  authorizer
	notifier  notifier
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithOrderRepository sets the order repository for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(repo iorderrepo.IOrderRepository) option {
	return func(s *OrderService) {
		s.orderRepo = repo
	}
}

// WithCartGateway sets the cart service gateway for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCartGateway(carts cartGateway) option {
	return func(s *OrderService) {
		s.carts = carts
	}
}

// WithCustomerDirectory sets the customer service gateway for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCustomerDirectory(customers customerDirectory) option {
	return func(s *OrderService) {
		s.customers = customers
	}
}

// WithAuthorizer sets the payment authorizer for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAuthorizer(payments authorizer) option {
	return func(s *OrderService) {
		s.payments = payments
	}
}

// WithNotifier sets the notification sink for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithNotifier(n notifier) option {
	return func(s *OrderService) {
		s.notifier = n
	}
}

// CreateOrderModel carries a checkout request into CreateOrder. OrderID is
// optional; when zero the store assigns one. The probability and attempts
// overrides are optional and fall back to authorizer defaults when nil.
type CreateOrderModel struct {
	OrderID              int64
	CustomerID           int64
	PaymentToken         string
	NotificationEmail    string
	RejectionProbability *float64
	MaxAttempts          *int
}

// CreateOrder runs the full checkout workflow and always returns the order in
// a terminal status once it has been persisted. Failures before persistence
// abort with no order row; failures after persistence fold into REJECTED.
func (s *OrderService) CreateOrder(ctx context.Context, model CreateOrderModel) (*order.Order, error) {
	ctx, span := otel.Tracer("ordersvc").Start(ctx, "OrderService.CreateOrder")
	defer span.End()

	slog.InfoContext(ctx, "Creating order", "customer_id", model.CustomerID)

	cartSnapshot, err := s.carts.GetCart(ctx, model.CustomerID)
	if err != nil {
		return nil, err
	}
	if len(cartSnapshot.Items) == 0 {
		slog.WarnContext(ctx, "Cart is empty, refusing to create order", "customer_id", model.CustomerID)

		return nil, apperrors.CartEmpty(model.CustomerID)
	}

	cust, err := s.customers.GetCustomer(ctx, model.CustomerID)
	if err != nil {
		return nil, err
	}

	o := buildOrder(model, cartSnapshot)
	o.CorrelationID = correlation.FromContext(ctx)

	o, err = s.orderRepo.Create(ctx, o)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "Order persisted", "order_id", o.ID, "status", o.Status)

	o.Status = order.StatusProcessing
	if o, err = s.orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	outcome, err := s.payments.Authorize(ctx, payment.AuthorizeModel{
		Token:                model.PaymentToken,
		AmountCents:          o.TotalPriceCents,
		OrderID:              o.ID,
		CustomerID:           cust.ID,
		CustomerName:         cust.Name,
		NotificationEmail:    model.NotificationEmail,
		RejectionProbability: model.RejectionProbability,
		MaxAttempts:          model.MaxAttempts,
	})

	switch {
	case err != nil:
		o.Status = order.StatusRejected
		o.RejectionReason = "payment service error: " + err.Error()
		slog.ErrorContext(ctx, "Payment authorization failed", "order_id", o.ID, "error", err)
	case outcome.Approved:
		o.Status = order.StatusApproved
		o.PaymentAttempts = outcome.Attempts
		slog.InfoContext(ctx, "Order approved", "order_id", o.ID, "attempts", outcome.Attempts)
	default:
		o.Status = order.StatusRejected
		o.RejectionReason = outcome.Message
		o.PaymentAttempts = outcome.Attempts
		slog.WarnContext(ctx, "Order rejected", "order_id", o.ID, "reason", outcome.Message)
	}

	if o, err = s.orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if o.Status == order.StatusApproved {
		if clearErr := s.carts.ClearCart(ctx, o.CustomerID); clearErr != nil {
			slog.WarnContext(ctx, "Failed to clear cart after approval",
				"order_id", o.ID,
				"customer_id", o.CustomerID,
				"error", clearErr,
			)
		}
		if s.notifier != nil && model.NotificationEmail != "" {
			s.notifier.SendConfirmation(ctx, model.NotificationEmail, o.ID, cust.Name, o.TotalPriceCents, o.Status.String())
		}
	}

	return o, nil
}

// GetOrder returns one order with its lines.
func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (*order.Order, error) {
	ctx, span := otel.Tracer("ordersvc").Start(ctx, "OrderService.GetOrder")
	defer span.End()

	o, err := s.orderRepo.GetByID(ctx, orderID)
	if errors.Is(err, order.ErrOrderNotFound) {
		return nil, apperrors.OrderNotFound(orderID)
	}
	if err != nil {
		return nil, err
	}

	return o, nil
}

// ListOrders returns orders matching the query filters.
func (s *OrderService) ListOrders(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	ctx, span := otel.Tracer("ordersvc").Start(ctx, "OrderService.ListOrders")
	defer span.End()

	return s.orderRepo.Query(ctx, filter)
}

// buildOrder materializes a PENDING order from the cart snapshot. Line
// subtotals and the order total are recomputed from unit prices, never trusted
// from the snapshot.
func buildOrder(model CreateOrderModel, cartSnapshot *cart.Cart) *order.Order {
	o := &order.Order{
		ID:                 model.OrderID,
		CustomerID:         model.CustomerID,
		PaymentToken:       model.PaymentToken,
		NotificationEmail:  model.NotificationEmail,
		Status:             order.StatusPending,
		TotalPriceCurrency: currency.CurrencyUSD,
	}

	for _, item := range cartSnapshot.Items {
		o.AddLine(orderline.OrderLine{
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			UnitPriceCents: item.UnitPriceCents,
			PriceCurrency:  currency.CurrencyUSD,
			Quantity:       item.Quantity,
		})
	}

	return o
}
