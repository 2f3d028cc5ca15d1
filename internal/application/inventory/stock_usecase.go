// Package inventory contiene el libro de stock: cantidades por talla, umbrales y alertas.
package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/streetwear-admin-api/internal/application/audit"
	"github.com/jhoicas/streetwear-admin-api/internal/application/dto"
	"github.com/jhoicas/streetwear-admin-api/internal/application/ports"
	"github.com/jhoicas/streetwear-admin-api/internal/domain"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/entity"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/inventory"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/repository"
	"github.com/jhoicas/streetwear-admin-api/pkg/logger"
)

// StockUseCase administra las filas de stock. Las escrituras bloquean la fila (SELECT FOR UPDATE)
// y registran la auditoría en la misma transacción.
type StockUseCase struct {
	txRunner         ports.TxRunner
	stockRepo        repository.StockLevelRepository
	productRepo      repository.ProductRepository
	revalidator      ports.Revalidator
	log              *logger.Logger
	defaultThreshold int
}

// NewStockUseCase construye el caso de uso. defaultThreshold <= 0 usa entity.DefaultLowThreshold.
func NewStockUseCase(
	txRunner ports.TxRunner,
	stockRepo repository.StockLevelRepository,
	productRepo repository.ProductRepository,
	revalidator ports.Revalidator,
	log *logger.Logger,
	defaultThreshold int,
) *StockUseCase {
	if defaultThreshold <= 0 {
		defaultThreshold = entity.DefaultLowThreshold
	}
	return &StockUseCase{
		txRunner:         txRunner,
		stockRepo:        stockRepo,
		productRepo:      productRepo,
		revalidator:      revalidator,
		log:              log.Named("stock"),
		defaultThreshold: defaultThreshold,
	}
}

// GetStockLevelsByProductID lista las filas del producto en el orden de tallas declarado.
// Un producto sin filas devuelve una lista vacía.
func (uc *StockUseCase) GetStockLevelsByProductID(ctx context.Context, productID string) ([]dto.StockLevelResponse, error) {
	levels, err := uc.stockRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	switch {
	case err == nil:
		inventory.SortBySizes(levels, product.Sizes)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}
	out := make([]dto.StockLevelResponse, 0, len(levels))
	for _, l := range levels {
		out = append(out, dto.NewStockLevelResponse(l))
	}
	return out, nil
}

// CreateStockLevel crea la fila (producto, talla) con cantidad 0 y el umbral por defecto.
// Retorna domain.ErrDuplicate si ya existe.
func (uc *StockUseCase) CreateStockLevel(ctx context.Context, productID, size string) (*dto.StockLevelResponse, error) {
	size = strings.TrimSpace(size)
	if size == "" {
		return nil, domain.ValidationError("la talla es obligatoria")
	}
	var created *entity.StockLevel
	err := uc.txRunner.Run(ctx, func(repos ports.Repos) error {
		if _, err := repos.Products.GetByID(ctx, productID); err != nil {
			return err
		}
		levels, err := uc.CreateStockLevelsInTx(ctx, repos.Stock, productID, []string{size})
		if err != nil {
			return err
		}
		created = levels[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	ports.RevalidateAfterCommit(ctx, uc.revalidator, uc.log, ports.ProductTag(productID), ports.TagActiveProducts)
	out := dto.NewStockLevelResponse(created)
	return &out, nil
}

// CreateStockLevelsInTx crea una fila por talla usando el repositorio del caller (misma transacción).
// Lo usa el alta/edición de productos; el caller filtra antes las tallas existentes.
func (uc *StockUseCase) CreateStockLevelsInTx(
	ctx context.Context,
	stockRepo repository.StockLevelRepository,
	productID string,
	sizes []string,
) ([]*entity.StockLevel, error) {
	now := time.Now()
	out := make([]*entity.StockLevel, 0, len(sizes))
	for _, size := range sizes {
		l := &entity.StockLevel{
			ID:           uuid.New().String(),
			ProductID:    productID,
			Size:         size,
			Quantity:     0,
			LowThreshold: uc.defaultThreshold,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := stockRepo.Create(ctx, l); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// UpdateStockLevel fija la cantidad absoluta de una fila. Negativo es ValidationError;
// un id desconocido es domain.ErrNotFound. Registra STOCK_UPDATED.
func (uc *StockUseCase) UpdateStockLevel(ctx context.Context, actor entity.Actor, stockLevelID string, quantity int) (*dto.StockLevelResponse, error) {
	if err := inventory.ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	var updated *entity.StockLevel
	err := uc.txRunner.Run(ctx, func(repos ports.Repos) error {
		level, err := repos.Stock.GetForUpdate(ctx, stockLevelID)
		if err != nil {
			return err
		}
		previous := level.Quantity
		if err := repos.Stock.UpdateQuantity(ctx, stockLevelID, quantity); err != nil {
			return err
		}
		level.Quantity = quantity
		level.UpdatedAt = time.Now()
		updated = level
		return audit.Record(ctx, repos.Audit, audit.Entry{
			Action:   entity.AuditActionStockUpdated,
			Entity:   entity.AuditEntityStockLevel,
			EntityID: stockLevelID,
			Actor:    actor,
			Details: map[string]any{
				"productId":        level.ProductID,
				"size":             level.Size,
				"previousQuantity": previous,
				"quantity":         quantity,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("stock_level_id", stockLevelID).
		Str("product_id", updated.ProductID).
		Int("quantity", quantity).
		Msg("stock actualizado")
	ports.RevalidateAfterCommit(ctx, uc.revalidator, uc.log,
		ports.ProductTag(updated.ProductID), ports.TagActiveProducts, ports.TagAdminDashboard)
	out := dto.NewStockLevelResponse(updated)
	return &out, nil
}

// UpdateLowThreshold cambia el umbral de alerta de una fila. Registra STOCK_THRESHOLD_UPDATED.
func (uc *StockUseCase) UpdateLowThreshold(ctx context.Context, actor entity.Actor, stockLevelID string, threshold int) (*dto.StockLevelResponse, error) {
	if err := inventory.ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	var updated *entity.StockLevel
	err := uc.txRunner.Run(ctx, func(repos ports.Repos) error {
		level, err := repos.Stock.GetForUpdate(ctx, stockLevelID)
		if err != nil {
			return err
		}
		previous := level.LowThreshold
		if err := repos.Stock.UpdateThreshold(ctx, stockLevelID, threshold); err != nil {
			return err
		}
		level.LowThreshold = threshold
		level.UpdatedAt = time.Now()
		updated = level
		return audit.Record(ctx, repos.Audit, audit.Entry{
			Action:   entity.AuditActionStockThresholdUpdated,
			Entity:   entity.AuditEntityStockLevel,
			EntityID: stockLevelID,
			Actor:    actor,
			Details: map[string]any{
				"productId":            level.ProductID,
				"size":                 level.Size,
				"previousLowThreshold": previous,
				"lowThreshold":         threshold,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	ports.RevalidateAfterCommit(ctx, uc.revalidator, uc.log, ports.TagAdminDashboard)
	out := dto.NewStockLevelResponse(updated)
	return &out, nil
}

// DeleteStockLevelsByProductID borra todas las filas del producto en su propia transacción.
func (uc *StockUseCase) DeleteStockLevelsByProductID(ctx context.Context, productID string) error {
	err := uc.txRunner.Run(ctx, func(repos ports.Repos) error {
		return uc.DeleteStockLevelsInTx(ctx, repos.Stock, productID)
	})
	if err != nil {
		return err
	}
	ports.RevalidateAfterCommit(ctx, uc.revalidator, uc.log,
		ports.TagActiveProducts, ports.ProductTag(productID), ports.TagAdminDashboard)
	return nil
}

// DeleteStockLevelsInTx borra las filas con el repositorio de la transacción del caller.
func (uc *StockUseCase) DeleteStockLevelsInTx(ctx context.Context, stockRepo repository.StockLevelRepository, productID string) error {
	if err := stockRepo.DeleteByProduct(ctx, productID); err != nil {
		return err
	}
	uc.log.Debug().Str("product_id", productID).Msg("filas de stock eliminadas")
	return nil
}

// GetLowStockAlerts devuelve toda fila con quantity <= lowThreshold, esté o no activo el producto.
func (uc *StockUseCase) GetLowStockAlerts(ctx context.Context) ([]dto.LowStockAlertResponse, error) {
	rows, err := uc.stockRepo.ListLow(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockAlertResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.LowStockAlertResponse{
			StockLevelID: r.ID,
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			Size:         r.Size,
			Quantity:     r.Quantity,
			LowThreshold: r.LowThreshold,
		})
	}
	return out, nil
}

// GetProductStock stock derivado: total = suma de cantidades, agotado si el total es 0.
func (uc *StockUseCase) GetProductStock(ctx context.Context, productID string) (*dto.ProductStockResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	levels, err := uc.stockRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return BuildProductStock(product, levels), nil
}

// BuildProductStock arma la disponibilidad por talla a partir de las filas ya leídas.
func BuildProductStock(product *entity.Product, levels []*entity.StockLevel) *dto.ProductStockResponse {
	inventory.SortBySizes(levels, product.Sizes)
	total := inventory.TotalStock(levels)
	out := &dto.ProductStockResponse{
		ProductID:  product.ID,
		TotalStock: total,
		OutOfStock: total == 0,
		Sizes:      make([]dto.SizeAvailability, 0, len(levels)),
	}
	for _, l := range levels {
		out.Sizes = append(out.Sizes, dto.SizeAvailability{
			Size:      l.Size,
			Quantity:  l.Quantity,
			Available: l.Quantity > 0,
			Low:       l.IsLow(),
		})
	}
	return out
}
