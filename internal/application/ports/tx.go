package ports

import (
	"context"

	"github.com/jhoicas/streetwear-admin-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Products    repository.ProductRepository
	Stock       repository.StockLevelRepository
	Orders      repository.OrderRepository
	Investments repository.InvestmentRepository
	Audit       repository.AuditLogRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn retorna error se hace rollback; la mutación y su registro de auditoría son atómicos.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}
