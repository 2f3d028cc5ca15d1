package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/streetwear-admin-api/internal/domain"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/entity"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepository)(nil)

// StockLevelRepository implementación en memoria. (product_id, size) es único.
type StockLevelRepository struct {
	a access
}

func (r *StockLevelRepository) Create(ctx context.Context, l *entity.StockLevel) error {
	return r.a.with(ctx, func(st *state) error {
		for _, existing := range st.stock {
			if existing.ProductID == l.ProductID && existing.Size == l.Size {
				return fmt.Errorf("%w: stock %s/%s", domain.ErrDuplicate, l.ProductID, l.Size)
			}
		}
		cp := *l
		cp.ID, cp.ProductID, cp.Size = strings.Clone(l.ID), strings.Clone(l.ProductID), strings.Clone(l.Size)
		st.stock[cp.ID] = &cp
		return nil
	})
}

func (r *StockLevelRepository) GetByID(ctx context.Context, id string) (*entity.StockLevel, error) {
	var out *entity.StockLevel
	err := r.a.with(ctx, func(st *state) error {
		l, ok := st.stock[id]
		if !ok {
			return domain.NotFoundError("stock", id)
		}
		cp := *l
		out = &cp
		return nil
	})
	return out, err
}

// GetForUpdate en memoria equivale a GetByID: Run ya serializa las transacciones.
func (r *StockLevelRepository) GetForUpdate(ctx context.Context, id string) (*entity.StockLevel, error) {
	return r.GetByID(ctx, id)
}

func (r *StockLevelRepository) ListByProduct(ctx context.Context, productID string) ([]*entity.StockLevel, error) {
	out := make([]*entity.StockLevel, 0)
	err := r.a.with(ctx, func(st *state) error {
		for _, l := range st.stock {
			if l.ProductID == productID {
				cp := *l
				out = append(out, &cp)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Size < out[j].Size })
		return nil
	})
	return out, err
}

func (r *StockLevelRepository) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	return r.a.with(ctx, func(st *state) error {
		l, ok := st.stock[id]
		if !ok {
			return domain.NotFoundError("stock", id)
		}
		l.Quantity = quantity
		l.UpdatedAt = time.Now()
		return nil
	})
}

func (r *StockLevelRepository) UpdateThreshold(ctx context.Context, id string, threshold int) error {
	return r.a.with(ctx, func(st *state) error {
		l, ok := st.stock[id]
		if !ok {
			return domain.NotFoundError("stock", id)
		}
		l.LowThreshold = threshold
		l.UpdatedAt = time.Now()
		return nil
	})
}

func (r *StockLevelRepository) DeleteByProduct(ctx context.Context, productID string) error {
	return r.a.with(ctx, func(st *state) error {
		for id, l := range st.stock {
			if l.ProductID == productID {
				delete(st.stock, id)
			}
		}
		return nil
	})
}

func (r *StockLevelRepository) ListLow(ctx context.Context) ([]repository.LowStockRow, error) {
	out := make([]repository.LowStockRow, 0)
	err := r.a.with(ctx, func(st *state) error {
		for _, l := range st.stock {
			if !l.IsLow() {
				continue
			}
			row := repository.LowStockRow{StockLevel: *l}
			if p, ok := st.products[l.ProductID]; ok {
				row.ProductName = p.Name
			}
			out = append(out, row)
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].Quantity != out[j].Quantity {
				return out[i].Quantity < out[j].Quantity
			}
			if out[i].ProductName != out[j].ProductName {
				return out[i].ProductName < out[j].ProductName
			}
			return out[i].Size < out[j].Size
		})
		return nil
	})
	return out, err
}

func (r *StockLevelRepository) CountLow(ctx context.Context) (int, error) {
	n := 0
	err := r.a.with(ctx, func(st *state) error {
		for _, l := range st.stock {
			if l.IsLow() {
				n++
			}
		}
		return nil
	})
	return n, err
}
