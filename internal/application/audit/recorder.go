// Package audit registra y consulta la bitácora append-only de mutaciones administrativas.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/streetwear-admin-api/internal/domain/entity"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/repository"
)

// Entry datos de un registro de auditoría.
type Entry struct {
	Action   string
	Entity   string
	EntityID string
	Details  map[string]any
	Actor    entity.Actor
}

// Record escribe el registro con el repositorio recibido. Llamar con el repo atado a la
// transacción de la mutación para que ambos se confirmen o reviertan juntos.
func Record(ctx context.Context, repo repository.AuditLogRepository, e Entry) error {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	if e.Actor.UID != "" || e.Actor.Email != "" {
		details["actor"] = map[string]any{"uid": e.Actor.UID, "email": e.Actor.Email}
	}
	log := &entity.AuditLog{
		ID:        uuid.New().String(),
		Action:    e.Action,
		Entity:    e.Entity,
		EntityID:  e.EntityID,
		Details:   details,
		CreatedAt: time.Now(),
	}
	if err := repo.Create(ctx, log); err != nil {
		return fmt.Errorf("audit: registrar %s: %w", e.Action, err)
	}
	return nil
}
