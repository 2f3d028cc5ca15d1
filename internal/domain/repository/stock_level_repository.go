package repository

import (
	"context"

	"github.com/jhoicas/streetwear-admin-api/internal/domain/entity"
)

// LowStockRow fila de stock bajo unida al nombre del producto (para alertas).
type LowStockRow struct {
	entity.StockLevel
	ProductName string
}

// StockLevelRepository define el puerto para las filas de stock por producto+talla.
// Usado dentro de transacciones para garantizar consistencia con la auditoría.
type StockLevelRepository interface {
	// Create retorna domain.ErrDuplicate si ya existe la fila (productId, size).
	Create(ctx context.Context, level *entity.StockLevel) error
	GetByID(ctx context.Context, id string) (*entity.StockLevel, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.StockLevel, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockLevel, error)
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	UpdateThreshold(ctx context.Context, id string, threshold int) error
	DeleteByProduct(ctx context.Context, productID string) error
	// ListLow devuelve las filas con quantity <= low_threshold, sin importar si el producto está activo.
	ListLow(ctx context.Context) ([]LowStockRow, error)
	CountLow(ctx context.Context) (int, error)
}
