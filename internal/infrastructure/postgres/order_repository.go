package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/streetwear-admin-api/internal/domain"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/entity"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, customer_email, customer_name, status, total_amount, shipping_address,
	COALESCE(payment_id, ''), COALESCE(tracking_number, ''), COALESCE(tracking_carrier, ''), COALESCE(notes, ''),
	created_at, updated_at`

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(&o.ID, &o.CustomerEmail, &o.CustomerName, &o.Status, &o.TotalAmount, &o.ShippingAddress,
		&o.PaymentID, &o.TrackingNumber, &o.TrackingCarrier, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserta el pedido y sus líneas. Debe llamarse con una tx para que sea atómico.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order, items []entity.OrderItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO orders (id, customer_email, customer_name, status, total_amount, shipping_address,
			payment_id, tracking_number, tracking_carrier, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		o.ID, o.CustomerEmail, o.CustomerName, string(o.Status), o.TotalAmount, o.ShippingAddress,
		nullIfEmpty(o.PaymentID), nullIfEmpty(o.TrackingNumber), nullIfEmpty(o.TrackingCarrier), nullIfEmpty(o.Notes),
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: pedido %s", domain.ErrDuplicate, o.ID)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	for _, it := range items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, design_id, quantity, size, color)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, o.ID, it.ProductID, it.DesignID, it.Quantity, it.Size, it.Color,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el pedido con sus líneas.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.OrderWithItems, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundError("pedido", id)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	out := []*entity.OrderWithItems{{Order: *o}}
	if err := r.attachItems(ctx, out); err != nil {
		return nil, err
	}
	return out[0], nil
}

// GetForUpdate bloquea la fila del pedido (SELECT FOR UPDATE).
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundError("pedido", id)
		}
		return nil, fmt.Errorf("get order for update: %w", err)
	}
	return o, nil
}

// ListWithItems pedidos más recientes primero, con sus líneas.
func (r *OrderRepo) ListWithItems(ctx context.Context, f repository.OrderFilter) ([]*entity.OrderWithItems, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var args []any
	if f.Status != nil {
		args = append(args, string(*f.Status))
		query += fmt.Sprintf(` WHERE status = $%d`, len(args))
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	list := make([]*entity.OrderWithItems, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &entity.OrderWithItems{Order: *o})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if err := r.attachItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// attachItems carga las líneas de todos los pedidos en una sola consulta (LEFT JOIN products).
func (r *OrderRepo) attachItems(ctx context.Context, orders []*entity.OrderWithItems) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, 0, len(orders))
	byID := make(map[string]*entity.OrderWithItems, len(orders))
	for _, o := range orders {
		o.Items = make([]entity.OrderItemDetail, 0)
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}
	const query = `
	SELECT i.id, i.order_id, i.product_id, i.design_id, i.quantity, i.size, i.color,
	       COALESCE(p.name, ''), COALESCE(p.price, 0)
	FROM order_items i
	LEFT JOIN products p ON p.id = i.product_id
	WHERE i.order_id = ANY($1)
	ORDER BY i.order_id, i.id`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.OrderItemDetail
		if err := rows.Scan(&d.ID, &d.OrderID, &d.ProductID, &d.DesignID, &d.Quantity, &d.Size, &d.Color,
			&d.ProductName, &d.ProductPrice); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if o, ok := byID[d.OrderID]; ok {
			o.Items = append(o.Items, d)
		}
	}
	return rows.Err()
}

// UpdateStatus cambia el estado.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	cmd, err := r.q.Exec(ctx, `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundError("pedido", id)
	}
	return nil
}

// UpdateTracking guarda la guía y pasa a SHIPPED en la misma sentencia.
func (r *OrderRepo) UpdateTracking(ctx context.Context, id, trackingNumber, carrier string) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE orders SET tracking_number = $2, tracking_carrier = $3, status = $4, updated_at = now()
		WHERE id = $1`,
		id, trackingNumber, carrier, string(entity.OrderStatusShipped),
	)
	if err != nil {
		return fmt.Errorf("update order tracking: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundError("pedido", id)
	}
	return nil
}

// Count cuenta pedidos; status nil = todos.
func (r *OrderRepo) Count(ctx context.Context, status *entity.OrderStatus) (int, error) {
	var (
		n   int
		err error
	)
	if status == nil {
		err = r.q.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n)
	} else {
		err = r.q.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE status = $1`, string(*status)).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

// SumTotal usa COALESCE para devolver cero si no hay pedidos.
func (r *OrderRepo) SumTotal(ctx context.Context, statuses ...entity.OrderStatus) (decimal.Decimal, error) {
	var (
		sum decimal.Decimal
		err error
	)
	if len(statuses) == 0 {
		err = r.q.QueryRow(ctx, `SELECT COALESCE(SUM(total_amount), 0) FROM orders`).Scan(&sum)
	} else {
		list := make([]string, 0, len(statuses))
		for _, s := range statuses {
			list = append(list, string(s))
		}
		err = r.q.QueryRow(ctx, `SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status = ANY($1)`, list).Scan(&sum)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum orders: %w", err)
	}
	return sum, nil
}
