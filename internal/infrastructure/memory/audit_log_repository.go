package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/streetwear-admin-api/internal/domain/entity"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepository)(nil)

// AuditLogRepository implementación en memoria (append-only).
type AuditLogRepository struct {
	a access
}

func (r *AuditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	return r.a.with(ctx, func(st *state) error {
		cp := *log
		cp.ID, cp.Action = strings.Clone(log.ID), strings.Clone(log.Action)
		cp.Entity, cp.EntityID = strings.Clone(log.Entity), strings.Clone(log.EntityID)
		cp.Details = cloneDetails(log.Details)
		st.audit = append(st.audit, &cp)
		return nil
	})
}

func (r *AuditLogRepository) List(ctx context.Context, f repository.AuditFilter) ([]*entity.AuditLog, error) {
	out := make([]*entity.AuditLog, 0)
	err := r.a.with(ctx, func(st *state) error {
		for i := len(st.audit) - 1; i >= 0; i-- {
			l := st.audit[i]
			if f.Entity != "" && l.Entity != f.Entity {
				continue
			}
			if f.EntityID != "" && l.EntityID != f.EntityID {
				continue
			}
			cp := *l
			cp.Details = copyDetails(l.Details)
			out = append(out, &cp)
			if f.Limit > 0 && len(out) == f.Limit {
				break
			}
		}
		return nil
	})
	return out, err
}

func copyDetails(d map[string]any) map[string]any {
	out := make(map[string]any, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// cloneDetails copia profunda de los strings: los valores pueden venir de buffers
// de la petición HTTP que se reutilizan al terminar.
func cloneDetails(d map[string]any) map[string]any {
	out := make(map[string]any, len(d))
	for k, v := range d {
		out[strings.Clone(k)] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case string:
		return strings.Clone(t)
	case map[string]any:
		return cloneDetails(t)
	case map[string]string:
		m := make(map[string]string, len(t))
		for k, s := range t {
			m[strings.Clone(k)] = strings.Clone(s)
		}
		return m
	case []string:
		out := make([]string, len(t))
		for i, s := range t {
			out[i] = strings.Clone(s)
		}
		return out
	default:
		return v
	}
}
