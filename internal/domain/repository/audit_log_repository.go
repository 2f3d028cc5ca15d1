package repository

import (
	"context"

	"github.com/jhoicas/streetwear-admin-api/internal/domain/entity"
)

// AuditFilter filtros opcionales del listado de auditoría ("" = sin filtro).
type AuditFilter struct {
	Entity   string
	EntityID string
	Limit    int
}

// AuditLogRepository registro append-only: no expone Update ni Delete.
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	// List devuelve los registros más recientes primero.
	List(ctx context.Context, filter AuditFilter) ([]*entity.AuditLog, error)
}
