package iorderrepo

import (
	"context"

	"github.com/corray333/backend-labs/checkout/internal/service/models/order"
)

// IOrderRepository is the durable order store. The full Order value is the
// unit of persistence; callers are responsible for invariants like recomputed
// totals before calling Update.
type IOrderRepository interface {
	Create(ctx context.Context, o *order.Order) (*order.Order, error)
	Update(ctx context.Context, o *order.Order) (*order.Order, error)
	GetByID(ctx context.Context, id int64) (*order.Order, error)
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
}
