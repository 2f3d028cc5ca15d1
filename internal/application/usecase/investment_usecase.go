package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/streetwear-admin-api/internal/application/audit"
	"github.com/jhoicas/streetwear-admin-api/internal/application/dto"
	"github.com/jhoicas/streetwear-admin-api/internal/application/ports"
	"github.com/jhoicas/streetwear-admin-api/internal/domain"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/entity"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/repository"
	"github.com/jhoicas/streetwear-admin-api/pkg/logger"
	"github.com/jhoicas/streetwear-admin-api/pkg/money"
)

// InvestmentUseCase CRUD de inversiones (solo alimentan el balance del dashboard).
type InvestmentUseCase struct {
	txRunner    ports.TxRunner
	repo        repository.InvestmentRepository
	revalidator ports.Revalidator
	log         *logger.Logger
}

// NewInvestmentUseCase construye el caso de uso.
func NewInvestmentUseCase(
	txRunner ports.TxRunner,
	repo repository.InvestmentRepository,
	revalidator ports.Revalidator,
	log *logger.Logger,
) *InvestmentUseCase {
	return &InvestmentUseCase{txRunner: txRunner, repo: repo, revalidator: revalidator, log: log.Named("investments")}
}

// Create registra una inversión.
func (uc *InvestmentUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateInvestmentRequest) (*dto.InvestmentResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ValidationError("el nombre es obligatorio")
	}
	if err := validateAmount(in.Amount); err != nil {
		return nil, err
	}
	now := time.Now()
	inv := &entity.Investment{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		Amount:      in.Amount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.txRunner.Run(ctx, func(repos ports.Repos) error {
		if err := repos.Investments.Create(ctx, inv); err != nil {
			return err
		}
		return uc.record(ctx, repos, actor, entity.AuditActionInvestmentCreated, inv)
	})
	if err != nil {
		return nil, err
	}
	ports.RevalidateAfterCommit(ctx, uc.revalidator, uc.log, ports.TagAdminDashboard)
	out := dto.NewInvestmentResponse(inv)
	return &out, nil
}

// GetByID obtiene una inversión.
func (uc *InvestmentUseCase) GetByID(ctx context.Context, id string) (*dto.InvestmentResponse, error) {
	inv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewInvestmentResponse(inv)
	return &out, nil
}

// Update aplica los campos presentes.
func (uc *InvestmentUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateInvestmentRequest) (*dto.InvestmentResponse, error) {
	var updated *entity.Investment
	err := uc.txRunner.Run(ctx, func(repos ports.Repos) error {
		inv, err := repos.Investments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return domain.ValidationError("el nombre es obligatorio")
			}
			inv.Name = name
		}
		if in.Description != nil {
			inv.Description = *in.Description
		}
		if in.Amount != nil {
			if err := validateAmount(*in.Amount); err != nil {
				return err
			}
			inv.Amount = *in.Amount
		}
		inv.UpdatedAt = time.Now()
		if err := repos.Investments.Update(ctx, inv); err != nil {
			return err
		}
		updated = inv
		return uc.record(ctx, repos, actor, entity.AuditActionInvestmentUpdated, inv)
	})
	if err != nil {
		return nil, err
	}
	ports.RevalidateAfterCommit(ctx, uc.revalidator, uc.log, ports.TagAdminDashboard)
	out := dto.NewInvestmentResponse(updated)
	return &out, nil
}

// Delete borra una inversión.
func (uc *InvestmentUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	err := uc.txRunner.Run(ctx, func(repos ports.Repos) error {
		inv, err := repos.Investments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := repos.Investments.Delete(ctx, id); err != nil {
			return err
		}
		return uc.record(ctx, repos, actor, entity.AuditActionInvestmentDeleted, inv)
	})
	if err != nil {
		return err
	}
	ports.RevalidateAfterCommit(ctx, uc.revalidator, uc.log, ports.TagAdminDashboard)
	return nil
}

// List todas las inversiones más el total.
func (uc *InvestmentUseCase) List(ctx context.Context) (*dto.InvestmentListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.SumAmount(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.InvestmentListResponse{Items: make([]dto.InvestmentResponse, 0, len(list)), Total: total}
	for _, inv := range list {
		out.Items = append(out.Items, dto.NewInvestmentResponse(inv))
	}
	return out, nil
}

func (uc *InvestmentUseCase) record(ctx context.Context, repos ports.Repos, actor entity.Actor, action string, inv *entity.Investment) error {
	return audit.Record(ctx, repos.Audit, audit.Entry{
		Action:   action,
		Entity:   entity.AuditEntityInvestment,
		EntityID: inv.ID,
		Actor:    actor,
		Details:  map[string]any{"name": inv.Name, "amount": inv.Amount.String()},
	})
}

func validateAmount(amount decimal.Decimal) error {
	if amount.LessThan(decimal.Zero) {
		return domain.ValidationError("el monto no puede ser negativo")
	}
	if !money.FitsScale(amount) {
		return domain.ValidationError("el monto admite como máximo 2 decimales")
	}
	return nil
}
