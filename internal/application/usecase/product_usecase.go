package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/streetwear-admin-api/internal/application/audit"
	"github.com/jhoicas/streetwear-admin-api/internal/application/dto"
	appinventory "github.com/jhoicas/streetwear-admin-api/internal/application/inventory"
	"github.com/jhoicas/streetwear-admin-api/internal/application/ports"
	"github.com/jhoicas/streetwear-admin-api/internal/domain"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/entity"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/inventory"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/repository"
	"github.com/jhoicas/streetwear-admin-api/pkg/logger"
	"github.com/jhoicas/streetwear-admin-api/pkg/money"
)

// StockProvisioner crea y borra filas de stock con los repositorios del caller (misma transacción).
type StockProvisioner interface {
	CreateStockLevelsInTx(ctx context.Context, stockRepo repository.StockLevelRepository, productID string, sizes []string) ([]*entity.StockLevel, error)
	DeleteStockLevelsInTx(ctx context.Context, stockRepo repository.StockLevelRepository, productID string) error
}

// ProductUseCase CRUD del catálogo. Mantiene una fila de stock por talla declarada.
type ProductUseCase struct {
	txRunner    ports.TxRunner
	repo        repository.ProductRepository
	stockRepo   repository.StockLevelRepository
	stock       StockProvisioner
	revalidator ports.Revalidator
	log         *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner ports.TxRunner,
	repo repository.ProductRepository,
	stockRepo repository.StockLevelRepository,
	stock StockProvisioner,
	revalidator ports.Revalidator,
	log *logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		txRunner:    txRunner,
		repo:        repo,
		stockRepo:   stockRepo,
		stock:       stock,
		revalidator: revalidator,
		log:         log.Named("products"),
	}
}

// Create crea el producto y una fila de stock (cantidad 0) por talla, en la misma transacción.
func (uc *ProductUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ValidationError("el nombre es obligatorio")
	}
	if err := validatePrices(in.Price, in.CutPrice); err != nil {
		return nil, err
	}
	sizes, err := inventory.NormalizeSizes(in.Sizes)
	if err != nil {
		return nil, err
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		Price:       in.Price,
		CutPrice:    in.CutPrice,
		Sizes:       sizes,
		Colors:      trimAll(in.Colors),
		IsActive:    active,
		IsFeatured:  in.IsFeatured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.txRunner.Run(ctx, func(repos ports.Repos) error {
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}
		if _, err := uc.stock.CreateStockLevelsInTx(ctx, repos.Stock, product.ID, sizes); err != nil {
			return err
		}
		return audit.Record(ctx, repos.Audit, audit.Entry{
			Action:   entity.AuditActionProductCreated,
			Entity:   entity.AuditEntityProduct,
			EntityID: product.ID,
			Actor:    actor,
			Details:  map[string]any{"name": product.Name, "sizes": sizes},
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", product.ID).Strs("sizes", sizes).Msg("producto creado")
	uc.revalidate(ctx, product.ID)
	out := dto.NewProductResponse(product)
	return &out, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewProductResponse(product)
	return &out, nil
}

// Update aplica los campos presentes. Las tallas nuevas obtienen fila de stock en 0;
// las filas existentes no se tocan.
func (uc *ProductUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var (
		updated *entity.Product
		added   []string
	)
	err := uc.txRunner.Run(ctx, func(repos ports.Repos) error {
		product, err := repos.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := applyUpdate(product, in); err != nil {
			return err
		}
		product.UpdatedAt = time.Now()
		if err := repos.Products.Update(ctx, product); err != nil {
			return err
		}
		existing, err := repos.Stock.ListByProduct(ctx, id)
		if err != nil {
			return err
		}
		added = inventory.MissingSizes(product.Sizes, existing)
		if len(added) > 0 {
			if _, err := uc.stock.CreateStockLevelsInTx(ctx, repos.Stock, id, added); err != nil {
				return err
			}
		}
		updated = product
		details := map[string]any{"name": product.Name}
		if len(added) > 0 {
			details["addedSizes"] = added
		}
		return audit.Record(ctx, repos.Audit, audit.Entry{
			Action:   entity.AuditActionProductUpdated,
			Entity:   entity.AuditEntityProduct,
			EntityID: id,
			Actor:    actor,
			Details:  details,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.revalidate(ctx, id)
	out := dto.NewProductResponse(updated)
	return &out, nil
}

func applyUpdate(p *entity.Product, in dto.UpdateProductRequest) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return domain.ValidationError("el nombre es obligatorio")
		}
		p.Name = name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.CutPrice != nil {
		p.CutPrice = in.CutPrice
	}
	if err := validatePrices(p.Price, p.CutPrice); err != nil {
		return err
	}
	if in.Sizes != nil {
		sizes, err := inventory.NormalizeSizes(in.Sizes)
		if err != nil {
			return err
		}
		p.Sizes = sizes
	}
	if in.Colors != nil {
		p.Colors = trimAll(in.Colors)
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if in.IsFeatured != nil {
		p.IsFeatured = *in.IsFeatured
	}
	return nil
}

// Delete borra el producto y sus filas de stock.
func (uc *ProductUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	err := uc.txRunner.Run(ctx, func(repos ports.Repos) error {
		product, err := repos.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := uc.stock.DeleteStockLevelsInTx(ctx, repos.Stock, id); err != nil {
			return err
		}
		if err := repos.Products.Delete(ctx, id); err != nil {
			return err
		}
		return audit.Record(ctx, repos.Audit, audit.Entry{
			Action:   entity.AuditActionProductDeleted,
			Entity:   entity.AuditEntityProduct,
			EntityID: id,
			Actor:    actor,
			Details:  map[string]any{"name": product.Name},
		})
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("product_id", id).Msg("producto eliminado")
	uc.revalidate(ctx, id)
	return nil
}

// List lista productos con paginación (más recientes primero).
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.NewProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListActive productos visibles en el storefront, con su disponibilidad.
func (uc *ProductUseCase) ListActive(ctx context.Context) ([]dto.StorefrontProductResponse, error) {
	list, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StorefrontProductResponse, 0, len(list))
	for _, p := range list {
		sp, err := uc.withStock(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, *sp)
	}
	return out, nil
}

// GetActive producto del storefront; un producto inactivo se trata como inexistente.
func (uc *ProductUseCase) GetActive(ctx context.Context, id string) (*dto.StorefrontProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, domain.NotFoundError("producto", id)
	}
	return uc.withStock(ctx, p)
}

func (uc *ProductUseCase) withStock(ctx context.Context, p *entity.Product) (*dto.StorefrontProductResponse, error) {
	levels, err := uc.stockRepo.ListByProduct(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &dto.StorefrontProductResponse{
		ProductResponse: dto.NewProductResponse(p),
		Stock:           *appinventory.BuildProductStock(p, levels),
	}, nil
}

func (uc *ProductUseCase) revalidate(ctx context.Context, id string) {
	ports.RevalidateAfterCommit(ctx, uc.revalidator, uc.log,
		ports.TagActiveProducts, ports.ProductTag(id), ports.TagAdminDashboard)
}

func validatePrices(price decimal.Decimal, cut *decimal.Decimal) error {
	if price.LessThan(decimal.Zero) {
		return domain.ValidationError("el precio no puede ser negativo")
	}
	if cut != nil && cut.LessThan(decimal.Zero) {
		return domain.ValidationError("el precio tachado no puede ser negativo")
	}
	if !money.FitsScale(price) || (cut != nil && !money.FitsScale(*cut)) {
		return domain.ValidationError("los precios admiten como máximo 2 decimales")
	}
	return nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
