package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/streetwear-admin-api/internal/domain/entity"
)

// InvestmentRepository define el puerto de persistencia para inversiones.
type InvestmentRepository interface {
	Create(ctx context.Context, inv *entity.Investment) error
	GetByID(ctx context.Context, id string) (*entity.Investment, error)
	Update(ctx context.Context, inv *entity.Investment) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Investment, error)
	SumAmount(ctx context.Context) (decimal.Decimal, error)
}
