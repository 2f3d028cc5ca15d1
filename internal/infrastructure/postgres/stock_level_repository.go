package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/streetwear-admin-api/internal/domain"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/entity"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

const stockColumns = `id, product_id, size, quantity, low_threshold, created_at, updated_at`

// StockLevelRepo implementación de StockLevelRepository sobre PostgreSQL (usable con pool o tx).
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

func scanStockLevel(row pgx.Row) (*entity.StockLevel, error) {
	var s entity.StockLevel
	if err := row.Scan(&s.ID, &s.ProductID, &s.Size, &s.Quantity, &s.LowThreshold, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserta la fila; (product_id, size) duplicado retorna domain.ErrDuplicate.
func (r *StockLevelRepo) Create(ctx context.Context, s *entity.StockLevel) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_levels (`+stockColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.ProductID, s.Size, s.Quantity, s.LowThreshold, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: stock %s/%s", domain.ErrDuplicate, s.ProductID, s.Size)
		}
		return fmt.Errorf("insert stock level: %w", err)
	}
	return nil
}

// GetByID obtiene una fila por ID.
func (r *StockLevelRepo) GetByID(ctx context.Context, id string) (*entity.StockLevel, error) {
	return r.get(ctx, `SELECT `+stockColumns+` FROM stock_levels WHERE id = $1`, id)
}

// GetForUpdate obtiene la fila y la bloquea hasta el fin de la transacción (SELECT FOR UPDATE).
func (r *StockLevelRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockLevel, error) {
	return r.get(ctx, `SELECT `+stockColumns+` FROM stock_levels WHERE id = $1 FOR UPDATE`, id)
}

func (r *StockLevelRepo) get(ctx context.Context, query, id string) (*entity.StockLevel, error) {
	s, err := scanStockLevel(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundError("stock", id)
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return s, nil
}

// ListByProduct filas del producto ordenadas por talla.
func (r *StockLevelRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockLevel, error) {
	rows, err := r.q.Query(ctx, `SELECT `+stockColumns+` FROM stock_levels WHERE product_id = $1 ORDER BY size`, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StockLevel, 0)
	for rows.Next() {
		s, err := scanStockLevel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// UpdateQuantity fija la cantidad absoluta.
func (r *StockLevelRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	return r.update(ctx, `UPDATE stock_levels SET quantity = $2, updated_at = now() WHERE id = $1`, id, quantity)
}

// UpdateThreshold fija el umbral de stock bajo.
func (r *StockLevelRepo) UpdateThreshold(ctx context.Context, id string, threshold int) error {
	return r.update(ctx, `UPDATE stock_levels SET low_threshold = $2, updated_at = now() WHERE id = $1`, id, threshold)
}

func (r *StockLevelRepo) update(ctx context.Context, query, id string, value int) error {
	cmd, err := r.q.Exec(ctx, query, id, value)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ValidationError("valor de stock fuera de rango")
		}
		return fmt.Errorf("update stock level: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundError("stock", id)
	}
	return nil
}

// DeleteByProduct borra las filas del producto.
func (r *StockLevelRepo) DeleteByProduct(ctx context.Context, productID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM stock_levels WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete stock levels: %w", err)
	}
	return nil
}

// ListLow filas en o bajo el umbral, unidas al nombre del producto. No filtra por is_active.
func (r *StockLevelRepo) ListLow(ctx context.Context) ([]repository.LowStockRow, error) {
	const query = `
	SELECT s.id, s.product_id, s.size, s.quantity, s.low_threshold, s.created_at, s.updated_at,
	       COALESCE(p.name, '') AS product_name
	FROM stock_levels s
	LEFT JOIN products p ON p.id = s.product_id
	WHERE s.quantity <= s.low_threshold
	ORDER BY s.quantity ASC, product_name, s.size`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	list := make([]repository.LowStockRow, 0)
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(&row.ID, &row.ProductID, &row.Size, &row.Quantity, &row.LowThreshold,
			&row.CreatedAt, &row.UpdatedAt, &row.ProductName); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// CountLow cuenta filas en o bajo el umbral.
func (r *StockLevelRepo) CountLow(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_levels WHERE quantity <= low_threshold`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return n, nil
}
