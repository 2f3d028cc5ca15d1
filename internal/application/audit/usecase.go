package audit

import (
	"context"

	"github.com/jhoicas/streetwear-admin-api/internal/application/dto"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/repository"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// AuditUseCase consulta la bitácora.
type AuditUseCase struct {
	repo repository.AuditLogRepository
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(repo repository.AuditLogRepository) *AuditUseCase {
	return &AuditUseCase{repo: repo}
}

// ListAuditLog devuelve los registros más recientes, filtrando opcionalmente por entidad e id.
// limit <= 0 usa 50; el máximo es 200.
func (uc *AuditUseCase) ListAuditLog(ctx context.Context, entityName, entityID string, limit int) (*dto.AuditLogListResponse, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	logs, err := uc.repo.List(ctx, repository.AuditFilter{Entity: entityName, EntityID: entityID, Limit: limit})
	if err != nil {
		return nil, err
	}
	out := &dto.AuditLogListResponse{Items: make([]dto.AuditLogResponse, 0, len(logs)), Limit: limit}
	for _, l := range logs {
		out.Items = append(out.Items, dto.AuditLogResponse{
			ID:        l.ID,
			Action:    l.Action,
			Entity:    l.Entity,
			EntityID:  l.EntityID,
			Details:   l.Details,
			CreatedAt: l.CreatedAt,
		})
	}
	return out, nil
}
