package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/checkout/internal/dal/postgres"
	"github.com/corray333/backend-labs/checkout/internal/service/models/currency"
	"github.com/corray333/backend-labs/checkout/internal/service/models/order"
	"github.com/corray333/backend-labs/checkout/internal/service/models/orderline"
	"github.com/jackc/pgx/v5"
)

// OrderDal represents the order data access layer model.
type OrderDal struct {
	Id                 int64     `db:"id"`
	CustomerId         int64     `db:"customer_id"`
	PaymentToken       string    `db:"payment_token"`
	NotificationEmail  string    `db:"notification_email"`
	Status             string    `db:"status"`
	CorrelationId      string    `db:"correlation_id"`
	RejectionReason    string    `db:"rejection_reason"`
	PaymentAttempts    int       `db:"payment_attempts"`
	TotalPriceCents    int64     `db:"total_price_cents"`
	TotalPriceCurrency string    `db:"total_price_currency"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	cur, err := currency.ParseCurrency(o.TotalPriceCurrency)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}

	return &order.Order{
		ID:                 o.Id,
		CustomerID:         o.CustomerId,
		PaymentToken:       o.PaymentToken,
		NotificationEmail:  o.NotificationEmail,
		Status:             status,
		CorrelationID:      o.CorrelationId,
		RejectionReason:    o.RejectionReason,
		PaymentAttempts:    o.PaymentAttempts,
		TotalPriceCents:    o.TotalPriceCents,
		TotalPriceCurrency: cur,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
		OrderLines:         []orderline.OrderLine{}, // Will be populated separately
	}, nil
}

// OrderLineDal represents the order line data access layer model.
type OrderLineDal struct {
	Id             int64     `db:"id"`
	OrderId        int64     `db:"order_id"`
	ProductId      int64     `db:"product_id"`
	ProductName    string    `db:"product_name"`
	UnitPriceCents int64     `db:"unit_price_cents"`
	PriceCurrency  string    `db:"price_currency"`
	Quantity       int       `db:"quantity"`
	SubtotalCents  int64     `db:"subtotal_cents"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// ToModel converts OrderLineDal to the service layer OrderLine model.
func (l *OrderLineDal) ToModel() (*orderline.OrderLine, error) {
	cur, err := currency.ParseCurrency(l.PriceCurrency)
	if err != nil {
		return nil, err
	}

	return &orderline.OrderLine{
		ID:             l.Id,
		OrderID:        l.OrderId,
		ProductID:      l.ProductId,
		ProductName:    l.ProductName,
		UnitPriceCents: l.UnitPriceCents,
		PriceCurrency:  cur,
		Quantity:       l.Quantity,
		SubtotalCents:  l.SubtotalCents,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}, nil
}

// OrderRepository persists orders and their lines in PostgreSQL.
type OrderRepository struct {
	client *postgres.Client
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(client *postgres.Client) *OrderRepository {
	return &OrderRepository{
		client: client,
	}
}

// Create inserts the order and its lines in one transaction. The store assigns
// the id unless the caller supplied one; both timestamps are set here.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) (*order.Order, error) {
	now := time.Now()
	res := *o
	res.OrderLines = append([]orderline.OrderLine{}, o.OrderLines...)
	res.CreatedAt = now
	res.UpdatedAt = now

	tx, err := r.client.Pool().Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	columns := []string{
		"customer_id",
		"payment_token",
		"notification_email",
		"status",
		"correlation_id",
		"rejection_reason",
		"payment_attempts",
		"total_price_cents",
		"total_price_currency",
		"created_at",
		"updated_at",
	}
	values := []interface{}{
		res.CustomerID,
		res.PaymentToken,
		res.NotificationEmail,
		res.Status.String(),
		res.CorrelationID,
		res.RejectionReason,
		res.PaymentAttempts,
		res.TotalPriceCents,
		res.TotalPriceCurrency.String(),
		res.CreatedAt,
		res.UpdatedAt,
	}
	if res.ID != 0 {
		columns = append([]string{"id"}, columns...)
		values = append([]interface{}{res.ID}, values...)
	}

	query, args, err := sq.Insert("orders").
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&res.ID); err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range res.OrderLines {
		line := &res.OrderLines[i]
		line.OrderID = res.ID
		line.CreatedAt = now
		line.UpdatedAt = now

		query, args, err := sq.Insert("order_lines").
			Columns(
				"order_id",
				"product_id",
				"product_name",
				"unit_price_cents",
				"price_currency",
				"quantity",
				"subtotal_cents",
				"created_at",
				"updated_at",
			).
			Values(
				line.OrderID,
				line.ProductID,
				line.ProductName,
				line.UnitPriceCents,
				line.PriceCurrency.String(),
				line.Quantity,
				line.SubtotalCents,
				line.CreatedAt,
				line.UpdatedAt,
			).
			Suffix("RETURNING id").
			PlaceholderFormat(sq.Dollar).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to build line insert query: %w", err)
		}

		if err := tx.QueryRow(ctx, query, args...).Scan(&line.ID); err != nil {
			return nil, fmt.Errorf("failed to insert order line: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &res, nil
}

// Update persists the current order field values verbatim and bumps
// updated_at. Lines are immutable after creation. Last write wins.
func (r *OrderRepository) Update(ctx context.Context, o *order.Order) (*order.Order, error) {
	now := time.Now()

	query, args, err := sq.Update("orders").
		Set("status", o.Status.String()).
		Set("rejection_reason", o.RejectionReason).
		Set("payment_attempts", o.PaymentAttempts).
		Set("notification_email", o.NotificationEmail).
		Set("total_price_cents", o.TotalPriceCents).
		Set("updated_at", now).
		Where(sq.Eq{"id": o.ID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.client.Pool().Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, order.ErrOrderNotFound
	}

	res := *o
	res.UpdatedAt = now

	return &res, nil
}

// GetByID retrieves one order with its lines.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	query, args, err := sq.Select(orderColumns()...).
		From("orders").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var dal OrderDal
	err = r.client.Pool().QueryRow(ctx, query, args...).Scan(
		&dal.Id,
		&dal.CustomerId,
		&dal.PaymentToken,
		&dal.NotificationEmail,
		&dal.Status,
		&dal.CorrelationId,
		&dal.RejectionReason,
		&dal.PaymentAttempts,
		&dal.TotalPriceCents,
		&dal.TotalPriceCurrency,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, order.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	model, err := dal.ToModel()
	if err != nil {
		return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
	}

	lines, err := r.queryLines(ctx, []int64{model.ID})
	if err != nil {
		return nil, err
	}
	model.OrderLines = lines

	return model, nil
}

// Query retrieves orders with their lines based on filter criteria.
func (r *OrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	builder := sq.Select(orderColumns()...).
		From("orders").
		OrderBy("id").
		PlaceholderFormat(sq.Dollar)

	if len(filter.Ids) > 0 {
		builder = builder.Where(sq.Eq{"id": filter.Ids})
	}
	if len(filter.CustomerIds) > 0 {
		builder = builder.Where(sq.Eq{"customer_id": filter.CustomerIds})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.client.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	var orderIds []int64
	for rows.Next() {
		var dal OrderDal
		err := rows.Scan(
			&dal.Id,
			&dal.CustomerId,
			&dal.PaymentToken,
			&dal.NotificationEmail,
			&dal.Status,
			&dal.CorrelationId,
			&dal.RejectionReason,
			&dal.PaymentAttempts,
			&dal.TotalPriceCents,
			&dal.TotalPriceCurrency,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
		}
		result = append(result, *model)
		orderIds = append(orderIds, model.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	if len(result) == 0 {
		return []order.Order{}, nil
	}

	lines, err := r.queryLines(ctx, orderIds)
	if err != nil {
		return nil, err
	}
	for i := range result {
		for _, line := range lines {
			if line.OrderID == result[i].ID {
				result[i].OrderLines = append(result[i].OrderLines, line)
			}
		}
	}

	return result, nil
}

func (r *OrderRepository) queryLines(ctx context.Context, orderIds []int64) ([]orderline.OrderLine, error) {
	query, args, err := sq.Select(
		"id",
		"order_id",
		"product_id",
		"product_name",
		"unit_price_cents",
		"price_currency",
		"quantity",
		"subtotal_cents",
		"created_at",
		"updated_at",
	).
		From("order_lines").
		Where(sq.Eq{"order_id": orderIds}).
		OrderBy("id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build lines query: %w", err)
	}

	rows, err := r.client.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	lines := []orderline.OrderLine{}
	for rows.Next() {
		var dal OrderLineDal
		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.ProductId,
			&dal.ProductName,
			&dal.UnitPriceCents,
			&dal.PriceCurrency,
			&dal.Quantity,
			&dal.SubtotalCents,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order line dal to model: %w", err)
		}
		lines = append(lines, *model)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return lines, nil
}

func orderColumns() []string {
	return []string{
		"id",
		"customer_id",
		"payment_token",
		"notification_email",
		"status",
		"correlation_id",
		"rejection_reason",
		"payment_attempts",
		"total_price_cents",
		"total_price_currency",
		"created_at",
		"updated_at",
	}
}
