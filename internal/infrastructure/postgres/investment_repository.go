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

var _ repository.InvestmentRepository = (*InvestmentRepo)(nil)

// InvestmentRepo implementación de InvestmentRepository sobre PostgreSQL.
type InvestmentRepo struct {
	q Querier
}

// NewInvestmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvestmentRepository(q Querier) *InvestmentRepo {
	return &InvestmentRepo{q: q}
}

func (r *InvestmentRepo) Create(ctx context.Context, inv *entity.Investment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO investments (id, name, description, amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		inv.ID, inv.Name, inv.Description, inv.Amount, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert investment: %w", err)
	}
	return nil
}

func (r *InvestmentRepo) GetByID(ctx context.Context, id string) (*entity.Investment, error) {
	var inv entity.Investment
	err := r.q.QueryRow(ctx, `
		SELECT id, name, description, amount, created_at, updated_at FROM investments WHERE id = $1`, id,
	).Scan(&inv.ID, &inv.Name, &inv.Description, &inv.Amount, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundError("inversión", id)
		}
		return nil, fmt.Errorf("get investment: %w", err)
	}
	return &inv, nil
}

func (r *InvestmentRepo) Update(ctx context.Context, inv *entity.Investment) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE investments SET name = $2, description = $3, amount = $4, updated_at = $5 WHERE id = $1`,
		inv.ID, inv.Name, inv.Description, inv.Amount, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update investment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundError("inversión", inv.ID)
	}
	return nil
}

func (r *InvestmentRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM investments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete investment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundError("inversión", id)
	}
	return nil
}

func (r *InvestmentRepo) List(ctx context.Context) ([]*entity.Investment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, description, amount, created_at, updated_at
		FROM investments ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Investment, 0)
	for rows.Next() {
		var inv entity.Investment
		if err := rows.Scan(&inv.ID, &inv.Name, &inv.Description, &inv.Amount, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan investment: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

func (r *InvestmentRepo) SumAmount(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM investments`).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum investments: %w", err)
	}
	return sum, nil
}
