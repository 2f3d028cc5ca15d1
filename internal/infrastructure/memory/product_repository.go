package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/streetwear-admin-api/internal/domain"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/entity"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository implementación en memoria.
type ProductRepository struct {
	a access
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	return r.a.with(ctx, func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return fmt.Errorf("%w: producto %s", domain.ErrDuplicate, p.ID)
		}
		st.products[p.ID] = cloneProduct(p)
		return nil
	})
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.with(ctx, func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.NotFoundError("producto", id)
		}
		out = cloneProduct(p)
		return nil
	})
	return out, err
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	return r.a.with(ctx, func(st *state) error {
		if _, ok := st.products[p.ID]; !ok {
			return domain.NotFoundError("producto", p.ID)
		}
		st.products[p.ID] = cloneProduct(p)
		return nil
	})
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return r.a.with(ctx, func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.NotFoundError("producto", id)
		}
		delete(st.products, id)
		for sid, l := range st.stock {
			if l.ProductID == id {
				delete(st.stock, sid)
			}
		}
		return nil
	})
}

func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.a.with(ctx, func(st *state) error {
		all := sortedProducts(st, false)
		if offset >= len(all) {
			out = []*entity.Product{}
			return nil
		}
		end := len(all)
		if limit > 0 && offset+limit < end {
			end = offset + limit
		}
		out = all[offset:end]
		return nil
	})
	return out, err
}

func (r *ProductRepository) ListActive(ctx context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.a.with(ctx, func(st *state) error {
		out = sortedProducts(st, true)
		return nil
	})
	return out, err
}

func (r *ProductRepository) CountActive(ctx context.Context) (int, error) {
	n := 0
	err := r.a.with(ctx, func(st *state) error {
		for _, p := range st.products {
			if p.IsActive {
				n++
			}
		}
		return nil
	})
	return n, err
}

// sortedProducts más recientes primero, igual que el listado en Postgres.
func sortedProducts(st *state, activeOnly bool) []*entity.Product {
	out := make([]*entity.Product, 0, len(st.products))
	for _, p := range st.products {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, cloneProduct(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
