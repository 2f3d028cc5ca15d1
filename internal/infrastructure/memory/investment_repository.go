package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/streetwear-admin-api/internal/domain"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/entity"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/repository"
)

var _ repository.InvestmentRepository = (*InvestmentRepository)(nil)

// InvestmentRepository implementación en memoria.
type InvestmentRepository struct {
	a access
}

func (r *InvestmentRepository) Create(ctx context.Context, inv *entity.Investment) error {
	return r.a.with(ctx, func(st *state) error {
		cp := *inv
		st.investments[inv.ID] = &cp
		return nil
	})
}

func (r *InvestmentRepository) GetByID(ctx context.Context, id string) (*entity.Investment, error) {
	var out *entity.Investment
	err := r.a.with(ctx, func(st *state) error {
		inv, ok := st.investments[id]
		if !ok {
			return domain.NotFoundError("inversión", id)
		}
		cp := *inv
		out = &cp
		return nil
	})
	return out, err
}

func (r *InvestmentRepository) Update(ctx context.Context, inv *entity.Investment) error {
	return r.a.with(ctx, func(st *state) error {
		if _, ok := st.investments[inv.ID]; !ok {
			return domain.NotFoundError("inversión", inv.ID)
		}
		cp := *inv
		st.investments[inv.ID] = &cp
		return nil
	})
}

func (r *InvestmentRepository) Delete(ctx context.Context, id string) error {
	return r.a.with(ctx, func(st *state) error {
		if _, ok := st.investments[id]; !ok {
			return domain.NotFoundError("inversión", id)
		}
		delete(st.investments, id)
		return nil
	})
}

func (r *InvestmentRepository) List(ctx context.Context) ([]*entity.Investment, error) {
	out := make([]*entity.Investment, 0)
	err := r.a.with(ctx, func(st *state) error {
		for _, inv := range st.investments {
			cp := *inv
			out = append(out, &cp)
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].CreatedAt.Equal(out[j].CreatedAt) {
				return out[i].ID < out[j].ID
			}
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
		return nil
	})
	return out, err
}

func (r *InvestmentRepository) SumAmount(ctx context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	err := r.a.with(ctx, func(st *state) error {
		for _, inv := range st.investments {
			sum = sum.Add(inv.Amount)
		}
		return nil
	})
	return sum, err
}
