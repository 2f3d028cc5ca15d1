package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/streetwear-admin-api/internal/domain"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/entity"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepository)(nil)

// OrderRepository implementación en memoria.
type OrderRepository struct {
	a access
}

func (r *OrderRepository) Create(ctx context.Context, o *entity.Order, items []entity.OrderItem) error {
	return r.a.with(ctx, func(st *state) error {
		if _, ok := st.orders[o.ID]; ok {
			return fmt.Errorf("%w: pedido %s", domain.ErrDuplicate, o.ID)
		}
		cp := *o
		st.orders[o.ID] = &cp
		st.items[o.ID] = append([]entity.OrderItem(nil), items...)
		st.orderSeq[o.ID] = st.next()
		return nil
	})
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*entity.OrderWithItems, error) {
	var out *entity.OrderWithItems
	err := r.a.with(ctx, func(st *state) error {
		o, ok := st.orders[id]
		if !ok {
			return domain.NotFoundError("pedido", id)
		}
		out = withItems(st, o)
		return nil
	})
	return out, err
}

func (r *OrderRepository) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.a.with(ctx, func(st *state) error {
		o, ok := st.orders[id]
		if !ok {
			return domain.NotFoundError("pedido", id)
		}
		cp := *o
		out = &cp
		return nil
	})
	return out, err
}

func (r *OrderRepository) ListWithItems(ctx context.Context, f repository.OrderFilter) ([]*entity.OrderWithItems, error) {
	out := make([]*entity.OrderWithItems, 0)
	err := r.a.with(ctx, func(st *state) error {
		orders := make([]*entity.Order, 0, len(st.orders))
		for _, o := range st.orders {
			if f.Status != nil && o.Status != *f.Status {
				continue
			}
			orders = append(orders, o)
		}
		sort.Slice(orders, func(i, j int) bool {
			if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
				return orders[i].CreatedAt.After(orders[j].CreatedAt)
			}
			return st.orderSeq[orders[i].ID] > st.orderSeq[orders[j].ID]
		})
		if f.Limit > 0 && len(orders) > f.Limit {
			orders = orders[:f.Limit]
		}
		for _, o := range orders {
			out = append(out, withItems(st, o))
		}
		return nil
	})
	return out, err
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	return r.a.with(ctx, func(st *state) error {
		o, ok := st.orders[id]
		if !ok {
			return domain.NotFoundError("pedido", id)
		}
		o.Status = status
		o.UpdatedAt = time.Now()
		return nil
	})
}

func (r *OrderRepository) UpdateTracking(ctx context.Context, id, trackingNumber, carrier string) error {
	return r.a.with(ctx, func(st *state) error {
		o, ok := st.orders[id]
		if !ok {
			return domain.NotFoundError("pedido", id)
		}
		o.TrackingNumber = strings.Clone(trackingNumber)
		o.TrackingCarrier = strings.Clone(carrier)
		o.Status = entity.OrderStatusShipped
		o.UpdatedAt = time.Now()
		return nil
	})
}

func (r *OrderRepository) Count(ctx context.Context, status *entity.OrderStatus) (int, error) {
	n := 0
	err := r.a.with(ctx, func(st *state) error {
		for _, o := range st.orders {
			if status == nil || o.Status == *status {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *OrderRepository) SumTotal(ctx context.Context, statuses ...entity.OrderStatus) (decimal.Decimal, error) {
	sum := decimal.Zero
	err := r.a.with(ctx, func(st *state) error {
		for _, o := range st.orders {
			if len(statuses) > 0 && !containsStatus(statuses, o.Status) {
				continue
			}
			sum = sum.Add(o.TotalAmount)
		}
		return nil
	})
	return sum, err
}

func containsStatus(list []entity.OrderStatus, s entity.OrderStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// withItems arma el pedido con sus líneas unidas al producto (LEFT JOIN).
func withItems(st *state, o *entity.Order) *entity.OrderWithItems {
	out := &entity.OrderWithItems{Order: *o, Items: make([]entity.OrderItemDetail, 0, len(st.items[o.ID]))}
	for _, it := range st.items[o.ID] {
		d := entity.OrderItemDetail{OrderItem: it}
		if p, ok := st.products[it.ProductID]; ok {
			d.ProductName = p.Name
			d.ProductPrice = p.Price
		}
		out.Items = append(out.Items, d)
	}
	return out
}
