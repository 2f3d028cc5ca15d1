package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/streetwear-admin-api/internal/domain/entity"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo bitácora append-only sobre PostgreSQL. details se guarda como JSONB.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador. Pasar la tx de la mutación auditada.
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

func (r *AuditLogRepo) Create(ctx context.Context, l *entity.AuditLog) error {
	details := l.Details
	if details == nil {
		details = map[string]any{}
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO audit_logs (id, action, entity, entity_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.Action, l.Entity, l.EntityID, details, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

func (r *AuditLogRepo) List(ctx context.Context, f repository.AuditFilter) ([]*entity.AuditLog, error) {
	query := `SELECT id, action, entity, entity_id, details, created_at FROM audit_logs WHERE 1=1`
	var args []any
	if f.Entity != "" {
		args = append(args, f.Entity)
		query += fmt.Sprintf(` AND entity = $%d`, len(args))
	}
	if f.EntityID != "" {
		args = append(args, f.EntityID)
		query += fmt.Sprintf(` AND entity_id = $%d`, len(args))
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.AuditLog, 0)
	for rows.Next() {
		var l entity.AuditLog
		if err := rows.Scan(&l.ID, &l.Action, &l.Entity, &l.EntityID, &l.Details, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
