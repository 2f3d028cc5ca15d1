// Package memory implementa los repositorios sobre mapas en memoria (tests y DB_DRIVER=memory).
// Las transacciones trabajan sobre una copia del estado que se publica solo en el commit.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/streetwear-admin-api/internal/application/ports"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/entity"
)

var _ ports.TxRunner = (*Store)(nil)

type state struct {
	products    map[string]*entity.Product
	stock       map[string]*entity.StockLevel
	orders      map[string]*entity.Order
	items       map[string][]entity.OrderItem // por order id
	orderSeq    map[string]int64
	investments map[string]*entity.Investment
	audit       []*entity.AuditLog // orden de inserción
	seq         int64
}

func newState() *state {
	return &state{
		products:    make(map[string]*entity.Product),
		stock:       make(map[string]*entity.StockLevel),
		orders:      make(map[string]*entity.Order),
		items:       make(map[string][]entity.OrderItem),
		orderSeq:    make(map[string]int64),
		investments: make(map[string]*entity.Investment),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.products {
		c.products[k] = cloneProduct(v)
	}
	for k, v := range s.stock {
		cp := *v
		c.stock[k] = &cp
	}
	for k, v := range s.orders {
		cp := *v
		c.orders[k] = &cp
	}
	for k, v := range s.items {
		c.items[k] = append([]entity.OrderItem(nil), v...)
	}
	for k, v := range s.orderSeq {
		c.orderSeq[k] = v
	}
	for k, v := range s.investments {
		cp := *v
		c.investments[k] = &cp
	}
	c.audit = make([]*entity.AuditLog, len(s.audit))
	copy(c.audit, s.audit) // los registros de auditoría no se modifican
	c.seq = s.seq
	return c
}

func (s *state) next() int64 {
	s.seq++
	return s.seq
}

// access da acceso exclusivo al estado: con lock (Store) o ya dentro de Run (tx).
type access interface {
	with(ctx context.Context, fn func(st *state) error) error
}

// Store estado compartido en memoria. Implementa ports.TxRunner.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) with(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

type txAccess struct {
	st *state
}

func (t txAccess) with(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(t.st)
}

// Repos devuelve repositorios fuera de transacción (cada operación es atómica por sí sola).
func (s *Store) Repos() ports.Repos {
	return reposFor(s)
}

// Run ejecuta fn sobre una copia del estado; si fn no falla, la copia reemplaza al estado.
// El lock se mantiene durante toda la tx, así que las transacciones se serializan.
func (s *Store) Run(ctx context.Context, fn func(repos ports.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(reposFor(txAccess{st: work})); err != nil {
		return err
	}
	s.st = work
	return nil
}

func reposFor(a access) ports.Repos {
	return ports.Repos{
		Products:    &ProductRepository{a: a},
		Stock:       &StockLevelRepository{a: a},
		Orders:      &OrderRepository{a: a},
		Investments: &InvestmentRepository{a: a},
		Audit:       &AuditLogRepository{a: a},
	}
}

func cloneProduct(p *entity.Product) *entity.Product {
	cp := *p
	cp.Sizes = append([]string(nil), p.Sizes...)
	cp.Colors = append([]string(nil), p.Colors...)
	if p.CutPrice != nil {
		v := *p.CutPrice
		cp.CutPrice = &v
	}
	return &cp
}
