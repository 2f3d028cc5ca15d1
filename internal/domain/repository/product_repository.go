package repository

import (
	"context"

	"github.com/jhoicas/streetwear-admin-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID retorna domain.ErrNotFound si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// Delete borra el producto; sus filas de stock caen en cascada.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	ListActive(ctx context.Context) ([]*entity.Product, error)
	CountActive(ctx context.Context) (int, error)
}
