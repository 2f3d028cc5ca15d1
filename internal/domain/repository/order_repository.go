package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/streetwear-admin-api/internal/domain/entity"
)

// OrderFilter filtro de listado. Status nil = todos; Limit <= 0 = sin límite.
type OrderFilter struct {
	Status *entity.OrderStatus
	Limit  int
}

// OrderRepository define el puerto de persistencia para pedidos y sus líneas.
type OrderRepository interface {
	// Create inserta el pedido y sus líneas (llamar dentro de una tx).
	Create(ctx context.Context, order *entity.Order, items []entity.OrderItem) error
	GetByID(ctx context.Context, id string) (*entity.OrderWithItems, error)
	// GetForUpdate bloquea la fila del pedido (SELECT FOR UPDATE) sin cargar líneas.
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	// ListWithItems ordena por created_at descendente.
	ListWithItems(ctx context.Context, filter OrderFilter) ([]*entity.OrderWithItems, error)
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error
	// UpdateTracking guarda guía y transportadora y pasa el pedido a SHIPPED en la misma sentencia.
	UpdateTracking(ctx context.Context, id, trackingNumber, carrier string) error
	Count(ctx context.Context, status *entity.OrderStatus) (int, error)
	// SumTotal suma total_amount de los pedidos en los estados dados (ninguno = todos).
	// Devuelve cero si no hay pedidos.
	SumTotal(ctx context.Context, statuses ...entity.OrderStatus) (decimal.Decimal, error)
}
