// Package analytics contiene el agregador de métricas del dashboard administrativo.
package analytics

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/streetwear-admin-api/internal/application/dto"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/entity"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/repository"
	"github.com/jhoicas/streetwear-admin-api/pkg/money"
)

const defaultRecentOrders = 10

// realizedStatuses estados que cuentan como venta realizada.
var realizedStatuses = []entity.OrderStatus{
	entity.OrderStatusPaid,
	entity.OrderStatusInProduction,
	entity.OrderStatusShipped,
	entity.OrderStatusDelivered,
}

// OrderStats lecturas agregadas del almacén de pedidos. La implementa orders.OrderUseCase.
type OrderStats interface {
	CountOrders(ctx context.Context, status string) (int, error)
	AggregateOrderTotal(ctx context.Context, statuses ...entity.OrderStatus) (decimal.Decimal, error)
	GetRecentOrdersWithItems(ctx context.Context, limit int) ([]dto.OrderResponse, error)
}

// DashboardUseCase genera el resumen del panel.
//
// Fuente de datos: casos de uso de pedidos y repositorios de inversiones, productos y stock (read-only).
type DashboardUseCase struct {
	orders         OrderStats
	investmentRepo repository.InvestmentRepository
	productRepo    repository.ProductRepository
	stockRepo      repository.StockLevelRepository
	formatter      *money.Formatter
	recentLimit    int
}

// NewDashboardUseCase construye el caso de uso. recentLimit <= 0 usa 10.
func NewDashboardUseCase(
	orders OrderStats,
	investmentRepo repository.InvestmentRepository,
	productRepo repository.ProductRepository,
	stockRepo repository.StockLevelRepository,
	formatter *money.Formatter,
	recentLimit int,
) *DashboardUseCase {
	if recentLimit <= 0 {
		recentLimit = defaultRecentOrders
	}
	return &DashboardUseCase{
		orders:         orders,
		investmentRepo: investmentRepo,
		productRepo:    productRepo,
		stockRepo:      stockRepo,
		formatter:      formatter,
		recentLimit:    recentLimit,
	}
}

// GetDashboardStats ejecuta las lecturas en paralelo. Si una falla se cancelan las demás
// y no se devuelve un resultado parcial.
func (uc *DashboardUseCase) GetDashboardStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	var (
		totalOrders, pendingOrders, paidOrders int
		activeProducts, lowStock               int
		revenue, realized, investment          decimal.Decimal
		recent                                 []dto.OrderResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		totalOrders, err = uc.orders.CountOrders(gctx, "")
		return wrap("total de pedidos", err)
	})
	g.Go(func() (err error) {
		pendingOrders, err = uc.orders.CountOrders(gctx, string(entity.OrderStatusPending))
		return wrap("pedidos pendientes", err)
	})
	g.Go(func() (err error) {
		paidOrders, err = uc.orders.CountOrders(gctx, string(entity.OrderStatusPaid))
		return wrap("pedidos pagados", err)
	})
	g.Go(func() (err error) {
		revenue, err = uc.orders.AggregateOrderTotal(gctx)
		return wrap("ingresos", err)
	})
	g.Go(func() (err error) {
		realized, err = uc.orders.AggregateOrderTotal(gctx, realizedStatuses...)
		return wrap("ingresos realizados", err)
	})
	g.Go(func() (err error) {
		investment, err = uc.investmentRepo.SumAmount(gctx)
		return wrap("inversiones", err)
	})
	g.Go(func() (err error) {
		activeProducts, err = uc.productRepo.CountActive(gctx)
		return wrap("productos activos", err)
	})
	g.Go(func() (err error) {
		lowStock, err = uc.stockRepo.CountLow(gctx)
		return wrap("alertas de stock", err)
	})
	g.Go(func() (err error) {
		recent, err = uc.orders.GetRecentOrdersWithItems(gctx, uc.recentLimit)
		return wrap("pedidos recientes", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.DashboardStatsDTO{
		TotalOrders:     totalOrders,
		PendingOrders:   pendingOrders,
		PaidOrders:      paidOrders,
		TotalRevenue:    revenue.String(),
		RealizedRevenue: realized.String(),
		TotalInvestment: investment.String(),
		NetBalance:      revenue.Sub(investment).String(),
		ActiveProducts:  activeProducts,
		LowStockAlerts:  lowStock,
		RecentOrders:    make([]dto.RecentOrderDTO, 0, len(recent)),
	}
	if uc.formatter != nil {
		out.Currency = uc.formatter.Currency()
	}
	for _, o := range recent {
		out.RecentOrders = append(out.RecentOrders, uc.recentOrder(o))
	}
	return out, nil
}

func (uc *DashboardUseCase) recentOrder(o dto.OrderResponse) dto.RecentOrderDTO {
	r := dto.RecentOrderDTO{
		ID:            o.ID,
		DisplayID:     DisplayID(o.ID),
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Status:        o.Status,
		Amount:        o.TotalAmount.String(),
		ItemCount:     len(o.Items),
		CreatedAt:     o.CreatedAt,
	}
	if uc.formatter != nil {
		r.AmountFormatted = uc.formatter.Format(o.TotalAmount)
	} else {
		r.AmountFormatted = o.TotalAmount.StringFixed(2)
	}
	return r
}

// DisplayID id corto para mostrar: primeros 8 caracteres en mayúscula.
func DisplayID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("dashboard: %s: %w", what, err)
	}
	return nil
}
