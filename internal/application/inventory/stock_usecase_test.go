package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/streetwear-admin-api/internal/application/inventory"
	"github.com/jhoicas/streetwear-admin-api/internal/application/ports"
	"github.com/jhoicas/streetwear-admin-api/internal/domain"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/entity"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/repository"
	"github.com/jhoicas/streetwear-admin-api/internal/infrastructure/memory"
	"github.com/jhoicas/streetwear-admin-api/pkg/logger"
)

type recordingRevalidator struct {
	mu   sync.Mutex
	tags []string
}

func (r *recordingRevalidator) Revalidate(_ context.Context, tags ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tags = append(r.tags, tags...)
	return nil
}

var admin = entity.Actor{UID: "admin-1", Email: "ops@drop.test"}

func setup(t *testing.T) (*inventory.StockUseCase, *memory.Store, *recordingRevalidator) {
	t.Helper()
	store := memory.NewStore()
	rv := &recordingRevalidator{}
	repos := store.Repos()
	uc := inventory.NewStockUseCase(store, repos.Stock, repos.Products, rv, logger.Nop(), 0)

	ctx := context.Background()
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", Name: "Boxy Tee", Sizes: []string{"S", "M", "L"}, IsActive: true}))
	require.NoError(t, store.Run(ctx, func(r ports.Repos) error {
		_, err := uc.CreateStockLevelsInTx(ctx, r.Stock, "p1", []string{"L", "S", "M"})
		return err
	}))
	return uc, store, rv
}

func stockID(t *testing.T, uc *inventory.StockUseCase, size string) string {
	t.Helper()
	levels, err := uc.GetStockLevelsByProductID(context.Background(), "p1")
	require.NoError(t, err)
	for _, l := range levels {
		if l.Size == size {
			return l.ID
		}
	}
	t.Fatalf("talla %s sin fila", size)
	return ""
}

func TestGetStockLevelsByProductID_OrdenDeTallas(t *testing.T) {
	uc, _, _ := setup(t)

	levels, err := uc.GetStockLevelsByProductID(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, levels, 3)
	assert.Equal(t, "S", levels[0].Size)
	assert.Equal(t, "M", levels[1].Size)
	assert.Equal(t, "L", levels[2].Size)
	for _, l := range levels {
		assert.Equal(t, 0, l.Quantity)
		assert.Equal(t, entity.DefaultLowThreshold, l.LowThreshold)
	}

	empty, err := uc.GetStockLevelsByProductID(context.Background(), "otro")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUpdateStockLevel_RegistraAuditoria(t *testing.T) {
	uc, store, rv := setup(t)
	ctx := context.Background()
	id := stockID(t, uc, "M")

	out, err := uc.UpdateStockLevel(ctx, admin, id, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Quantity)

	logs, err := store.Repos().Audit.List(ctx, repository.AuditFilter{Entity: entity.AuditEntityStockLevel})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.AuditActionStockUpdated, logs[0].Action)
	assert.Equal(t, id, logs[0].EntityID)
	assert.Equal(t, 0, logs[0].Details["previousQuantity"])
	assert.Equal(t, 3, logs[0].Details["quantity"])
	assert.Equal(t, "M", logs[0].Details["size"])

	assert.Contains(t, rv.tags, ports.ProductTag("p1"))
	assert.Contains(t, rv.tags, ports.TagActiveProducts)

	stock, err := uc.GetProductStock(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 3, stock.TotalStock)
	assert.False(t, stock.OutOfStock)
}

func TestUpdateStockLevel_NegativoNoEscribe(t *testing.T) {
	uc, store, _ := setup(t)
	ctx := context.Background()
	id := stockID(t, uc, "S")

	_, err := uc.UpdateStockLevel(ctx, admin, id, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	l, err := store.Repos().Stock.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, l.Quantity)

	logs, err := store.Repos().Audit.List(ctx, repository.AuditFilter{})
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestUpdateStockLevel_IDDesconocido(t *testing.T) {
	uc, _, _ := setup(t)

	_, err := uc.UpdateStockLevel(context.Background(), admin, "no-existe", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateLowThreshold(t *testing.T) {
	uc, store, _ := setup(t)
	ctx := context.Background()
	id := stockID(t, uc, "L")

	_, err := uc.UpdateLowThreshold(ctx, admin, id, -2)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.UpdateLowThreshold(ctx, admin, id, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, out.LowThreshold)

	logs, err := store.Repos().Audit.List(ctx, repository.AuditFilter{EntityID: id})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.AuditActionStockThresholdUpdated, logs[0].Action)
}

func TestGetLowStockAlerts_IgnoraEstadoDelProducto(t *testing.T) {
	uc, store, _ := setup(t)
	ctx := context.Background()
	repos := store.Repos()

	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p2", Name: "Archivo", Sizes: []string{"M"}, IsActive: false}))
	require.NoError(t, store.Run(ctx, func(r ports.Repos) error {
		_, err := uc.CreateStockLevelsInTx(ctx, r.Stock, "p2", []string{"M"})
		return err
	}))
	_, err := uc.UpdateStockLevel(ctx, admin, stockID(t, uc, "S"), 6)
	require.NoError(t, err)
	_, err = uc.UpdateStockLevel(ctx, admin, stockID(t, uc, "M"), 5)
	require.NoError(t, err)

	alerts, err := uc.GetLowStockAlerts(ctx)
	require.NoError(t, err)
	// p1: M=5 (igual al umbral) y L=0; p2: M=0 aunque esté inactivo.
	require.Len(t, alerts, 3)
	names := map[string]bool{}
	for _, a := range alerts {
		assert.LessOrEqual(t, a.Quantity, a.LowThreshold)
		names[a.ProductName] = true
	}
	assert.True(t, names["Archivo"])
}

func TestCreateStockLevel_Duplicado(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()

	_, err := uc.CreateStockLevel(ctx, "p1", "S")
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	out, err := uc.CreateStockLevel(ctx, "p1", "XL")
	require.NoError(t, err)
	assert.Equal(t, "XL", out.Size)

	_, err = uc.CreateStockLevel(ctx, "no-existe", "S")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetProductStock_Agotado(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()

	stock, err := uc.GetProductStock(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, stock.TotalStock)
	assert.True(t, stock.OutOfStock)
	require.Len(t, stock.Sizes, 3)
	assert.False(t, stock.Sizes[0].Available)

	_, err = uc.GetProductStock(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, uc.DeleteStockLevelsByProductID(ctx, "p1"))
	levels, err := uc.GetStockLevelsByProductID(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, levels)
}

func TestDeleteStockLevelsByProductID_RevalidaFichaYCatalogo(t *testing.T) {
	uc, _, rv := setup(t)
	ctx := context.Background()
	rv.tags = nil

	require.NoError(t, uc.DeleteStockLevelsByProductID(ctx, "p1"))
	assert.ElementsMatch(t, []string{ports.TagActiveProducts, ports.ProductTag("p1"), ports.TagAdminDashboard}, rv.tags)

	stock, err := uc.GetProductStock(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, stock.OutOfStock)
	assert.Empty(t, stock.Sizes)
}
