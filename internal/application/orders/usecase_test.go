package orders_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/streetwear-admin-api/internal/application/dto"
	"github.com/jhoicas/streetwear-admin-api/internal/application/orders"
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
	err  error
}

func (r *recordingRevalidator) Revalidate(_ context.Context, tags ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tags = append(r.tags, tags...)
	return r.err
}

type fakeSlip struct{}

func (fakeSlip) Generate(o *entity.OrderWithItems) ([]byte, error) {
	return []byte("%PDF-" + o.ID), nil
}

var (
	admin = entity.Actor{UID: "admin-1", Email: "ops@drop.test"}
	buyer = entity.Actor{UID: "cust-1", Email: "buyer@drop.test"}
)

func newUseCase(strict bool) (*orders.OrderUseCase, *memory.Store, *recordingRevalidator) {
	store := memory.NewStore()
	_ = store.Repos().Products.Create(context.Background(), &entity.Product{
		ID: "p1", Name: "Hoodie", Price: decimal.NewFromInt(40), Sizes: []string{"S", "M", "L"}, IsActive: true,
	})
	rv := &recordingRevalidator{}
	uc := orders.NewOrderUseCase(store, store.Repos().Orders, rv, fakeSlip{}, strict, logger.Nop())
	return uc, store, rv
}

func checkout(total string) dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		CustomerEmail: "buyer@drop.test",
		CustomerName:  "Ana",
		TotalAmount:   decimal.RequireFromString(total),
		ShippingAddress: dto.ShippingAddressDTO{
			Line1: "Calle 1", City: "Bogotá", PostalCode: "110111", Country: "CO",
		},
		Items: []dto.CreateOrderItemRequest{{ProductID: "p1", DesignID: "d1", Quantity: 2, Size: "M", Color: "black"}},
	}
}

func auditActions(t *testing.T, store *memory.Store, orderID string) []string {
	t.Helper()
	logs, err := store.Repos().Audit.List(context.Background(), repository.AuditFilter{Entity: entity.AuditEntityOrder, EntityID: orderID})
	require.NoError(t, err)
	var out []string
	for _, l := range logs {
		out = append(out, l.Action)
	}
	return out
}

func TestCreateOrder_Pendiente(t *testing.T) {
	uc, store, _ := newUseCase(true)
	ctx := context.Background()

	out, err := uc.CreateOrder(ctx, buyer, checkout("80"))
	require.NoError(t, err)
	assert.Equal(t, "PENDING", out.Status)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Hoodie", out.Items[0].ProductName)
	assert.Equal(t, []string{entity.AuditActionOrderCreated}, auditActions(t, store, out.ID))

	logs, err := store.Repos().Audit.List(ctx, repository.AuditFilter{EntityID: out.ID})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, map[string]any{"uid": buyer.UID, "email": buyer.Email}, logs[0].Details["actor"])
}

func TestCreateOrder_EmailDeLaSesion(t *testing.T) {
	uc, store, _ := newUseCase(true)
	ctx := context.Background()

	req := checkout("10")
	req.CustomerEmail = "victim@other.test"
	_, err := uc.CreateOrder(ctx, buyer, req)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	n, err := store.Repos().Orders.Count(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n, "no se registra el pedido")

	req.CustomerEmail = ""
	out, err := uc.CreateOrder(ctx, buyer, req)
	require.NoError(t, err)
	assert.Equal(t, buyer.Email, out.CustomerEmail)

	req.CustomerEmail = " BUYER@drop.test "
	_, err = uc.CreateOrder(ctx, buyer, req)
	require.NoError(t, err, "mismo email con otro formato")
}

func TestCreateOrder_ValidaCatalogo(t *testing.T) {
	uc, store, rv := newUseCase(true)
	ctx := context.Background()

	unknown := checkout("10")
	unknown.Items[0].ProductID = "no-existe"
	_, err := uc.CreateOrder(ctx, buyer, unknown)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	badSize := checkout("10")
	badSize.Items[0].Size = "XXL"
	_, err = uc.CreateOrder(ctx, buyer, badSize)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	n, err := store.Repos().Orders.Count(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, rv.tags, "sin commit no hay revalidación")
}

func TestCreateOrder_Validaciones(t *testing.T) {
	uc, _, _ := newUseCase(true)
	ctx := context.Background()

	cases := map[string]func(r *dto.CreateOrderRequest){
		"email inválido":  func(r *dto.CreateOrderRequest) { r.CustomerEmail = "no-es-email" },
		"sin nombre":      func(r *dto.CreateOrderRequest) { r.CustomerName = " " },
		"total negativo":  func(r *dto.CreateOrderRequest) { r.TotalAmount = decimal.NewFromInt(-1) },
		"tres decimales":  func(r *dto.CreateOrderRequest) { r.TotalAmount = decimal.RequireFromString("10.005") },
		"sin líneas":      func(r *dto.CreateOrderRequest) { r.Items = nil },
		"cantidad cero":   func(r *dto.CreateOrderRequest) { r.Items[0].Quantity = 0 },
		"línea sin talla": func(r *dto.CreateOrderRequest) { r.Items[0].Size = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := checkout("10")
			mutate(&req)
			// sesión sin email: el del cuerpo se valida tal cual
			_, err := uc.CreateOrder(ctx, entity.Actor{UID: "cust-2"}, req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestAddTrackingInfo_EnviaDesdeEstadosNoTerminales(t *testing.T) {
	ctx := context.Background()
	for _, from := range []string{"PENDING", "PAID", "IN_PRODUCTION", "SHIPPED"} {
		t.Run(from, func(t *testing.T) {
			uc, store, rv := newUseCase(true)
			created, err := uc.CreateOrder(ctx, buyer, checkout("50"))
			require.NoError(t, err)
			require.NoError(t, store.Repos().Orders.UpdateStatus(ctx, created.ID, entity.OrderStatus(from)))

			out, err := uc.AddTrackingInfo(ctx, admin, created.ID, " TRK123 ", "DHL")
			require.NoError(t, err)
			assert.Equal(t, "SHIPPED", out.Status)
			assert.Equal(t, "TRK123", out.TrackingNumber)
			assert.Equal(t, "DHL", out.TrackingCarrier)

			shipped := 0
			for _, a := range auditActions(t, store, created.ID) {
				if a == "ORDER_SHIPPED" {
					shipped++
				}
			}
			assert.Equal(t, 1, shipped)
			assert.Contains(t, rv.tags, ports.OrderTag(created.ID))
		})
	}
}

func TestAddTrackingInfo_Validaciones(t *testing.T) {
	uc, _, _ := newUseCase(true)
	ctx := context.Background()
	created, err := uc.CreateOrder(ctx, buyer, checkout("50"))
	require.NoError(t, err)

	_, err = uc.AddTrackingInfo(ctx, admin, created.ID, "  ", "DHL")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.AddTrackingInfo(ctx, admin, created.ID, "TRK", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.AddTrackingInfo(ctx, admin, "no-existe", "TRK", "DHL")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.UpdateOrderStatus(ctx, admin, created.ID, "CANCELLED")
	require.NoError(t, err)
	_, err = uc.AddTrackingInfo(ctx, admin, created.ID, "TRK", "DHL")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateOrderStatus_CanceladoEsTerminal(t *testing.T) {
	ctx := context.Background()

	t.Run("estricto", func(t *testing.T) {
		uc, store, _ := newUseCase(true)
		created, err := uc.CreateOrder(ctx, buyer, checkout("10"))
		require.NoError(t, err)

		_, err = uc.UpdateOrderStatus(ctx, admin, created.ID, "CANCELLED")
		require.NoError(t, err)
		_, err = uc.UpdateOrderStatus(ctx, admin, created.ID, "DELIVERED")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)

		got, err := uc.GetOrder(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", got.Status)
		assert.Equal(t, []string{"ORDER_CANCELLED", "ORDER_CREATED"}, auditActions(t, store, created.ID))
	})

	t.Run("permisivo", func(t *testing.T) {
		uc, _, _ := newUseCase(false)
		created, err := uc.CreateOrder(ctx, buyer, checkout("10"))
		require.NoError(t, err)

		_, err = uc.UpdateOrderStatus(ctx, admin, created.ID, "CANCELLED")
		require.NoError(t, err)
		out, err := uc.UpdateOrderStatus(ctx, admin, created.ID, "DELIVERED")
		require.NoError(t, err)
		assert.Equal(t, "DELIVERED", out.Status)
	})
}

func TestUpdateOrderStatus_Errores(t *testing.T) {
	uc, _, _ := newUseCase(true)
	ctx := context.Background()
	created, err := uc.CreateOrder(ctx, buyer, checkout("10"))
	require.NoError(t, err)

	_, err = uc.UpdateOrderStatus(ctx, admin, created.ID, "LOST")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.UpdateOrderStatus(ctx, admin, "no-existe", "PAID")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	out, err := uc.UpdateOrderStatus(ctx, admin, created.ID, "paid")
	require.NoError(t, err)
	assert.Equal(t, "PAID", out.Status)
}

func TestUpdateOrderStatus_RevalidacionFallidaNoRevierte(t *testing.T) {
	uc, _, rv := newUseCase(true)
	ctx := context.Background()
	created, err := uc.CreateOrder(ctx, buyer, checkout("10"))
	require.NoError(t, err)
	rv.err = errors.New("broker caído")

	out, err := uc.UpdateOrderStatus(ctx, admin, created.ID, "PAID")
	require.NoError(t, err)
	assert.Equal(t, "PAID", out.Status)
	assert.Contains(t, rv.tags, ports.TagAdminDashboard)
}

func TestConsultasYAgregados(t *testing.T) {
	uc, _, _ := newUseCase(true)
	ctx := context.Background()

	total, err := uc.AggregateOrderTotal(ctx)
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	a, err := uc.CreateOrder(ctx, buyer, checkout("10.50"))
	require.NoError(t, err)
	b, err := uc.CreateOrder(ctx, buyer, checkout("20"))
	require.NoError(t, err)
	_, err = uc.UpdateOrderStatus(ctx, admin, a.ID, "CANCELLED")
	require.NoError(t, err)

	total, err = uc.AggregateOrderTotal(ctx)
	require.NoError(t, err)
	assert.Equal(t, "30.5", total.String(), "incluye pedidos cancelados")

	n, err := uc.CountOrders(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	n, err = uc.CountOrders(ctx, "PENDING")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, err = uc.CountOrders(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.GetOrdersWithItems(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID, "más reciente primero")

	cancelled, err := uc.GetOrdersWithItems(ctx, "CANCELLED")
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, a.ID, cancelled[0].ID)

	recent, err := uc.GetRecentOrdersWithItems(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, recent, 1)

	_, err = uc.GetOrder(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	pdf, err := uc.PackingSlip(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-"+b.ID, string(pdf))
}
