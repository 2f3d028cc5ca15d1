// Package orders contiene los casos de uso del ciclo de vida de pedidos.
package orders

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/streetwear-admin-api/internal/application/audit"
	"github.com/jhoicas/streetwear-admin-api/internal/application/dto"
	"github.com/jhoicas/streetwear-admin-api/internal/application/ports"
	"github.com/jhoicas/streetwear-admin-api/internal/domain"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/entity"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/order"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/repository"
	"github.com/jhoicas/streetwear-admin-api/pkg/logger"
	"github.com/jhoicas/streetwear-admin-api/pkg/money"
)

// OrderUseCase lectura y cambios de estado de pedidos. Cada cambio bloquea la fila del pedido,
// valida la transición y registra la auditoría en la misma transacción.
type OrderUseCase struct {
	txRunner    ports.TxRunner
	orderRepo   repository.OrderRepository
	revalidator ports.Revalidator
	packingSlip ports.PackingSlipGenerator
	policy      order.Policy
	log         *logger.Logger
}

// NewOrderUseCase construye el caso de uso. strict activa la tabla de transiciones.
func NewOrderUseCase(
	txRunner ports.TxRunner,
	orderRepo repository.OrderRepository,
	revalidator ports.Revalidator,
	packingSlip ports.PackingSlipGenerator,
	strict bool,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:    txRunner,
		orderRepo:   orderRepo,
		revalidator: revalidator,
		packingSlip: packingSlip,
		policy:      order.Policy{Strict: strict},
		log:         log.Named("orders"),
	}
}

// CreateOrder registra un pedido PENDING desde el checkout. No descuenta stock.
// actor es la identidad del token: el email del pedido debe ser el suyo y se usa si el cuerpo no trae uno.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, actor entity.Actor, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	email, err := customerEmail(actor, in.CustomerEmail)
	if err != nil {
		return nil, err
	}
	in.CustomerEmail = email
	if err := validateCreate(in); err != nil {
		return nil, err
	}
	now := time.Now()
	o := &entity.Order{
		ID:              uuid.New().String(),
		CustomerEmail:   email,
		CustomerName:    strings.TrimSpace(in.CustomerName),
		Status:          entity.OrderStatusPending,
		TotalAmount:     in.TotalAmount,
		ShippingAddress: in.ShippingAddress.ToEntity(),
		PaymentID:       strings.TrimSpace(in.PaymentID),
		Notes:           strings.TrimSpace(in.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	items := make([]entity.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   o.ID,
			ProductID: strings.TrimSpace(it.ProductID),
			DesignID:  it.DesignID,
			Quantity:  it.Quantity,
			Size:      strings.TrimSpace(it.Size),
			Color:     strings.TrimSpace(it.Color),
		})
	}

	var created *entity.OrderWithItems
	err = uc.txRunner.Run(ctx, func(repos ports.Repos) error {
		if err := checkCatalog(ctx, repos.Products, items); err != nil {
			return err
		}
		if err := repos.Orders.Create(ctx, o, items); err != nil {
			return err
		}
		var err error
		created, err = repos.Orders.GetByID(ctx, o.ID)
		if err != nil {
			return err
		}
		return audit.Record(ctx, repos.Audit, audit.Entry{
			Action:   entity.AuditActionOrderCreated,
			Entity:   entity.AuditEntityOrder,
			EntityID: o.ID,
			Actor:    actor,
			Details: map[string]any{
				"customerEmail": o.CustomerEmail,
				"totalAmount":   o.TotalAmount.String(),
				"itemCount":     len(items),
			},
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", o.ID).Str("total", o.TotalAmount.String()).Msg("pedido creado")
	ports.RevalidateAfterCommit(ctx, uc.revalidator, uc.log, ports.TagAdminOrders, ports.TagAdminDashboard)
	out := dto.NewOrderResponse(created)
	return &out, nil
}

func validateCreate(in dto.CreateOrderRequest) error {
	if _, err := mail.ParseAddress(strings.TrimSpace(in.CustomerEmail)); err != nil {
		return domain.ValidationError("email del cliente inválido")
	}
	if strings.TrimSpace(in.CustomerName) == "" {
		return domain.ValidationError("el nombre del cliente es obligatorio")
	}
	if in.TotalAmount.LessThan(decimal.Zero) {
		return domain.ValidationError("el total no puede ser negativo")
	}
	if !money.FitsScale(in.TotalAmount) {
		return domain.ValidationError("el total admite como máximo 2 decimales")
	}
	if len(in.Items) == 0 {
		return domain.ValidationError("el pedido debe tener al menos una línea")
	}
	for _, it := range in.Items {
		if strings.TrimSpace(it.ProductID) == "" || strings.TrimSpace(it.Size) == "" {
			return domain.ValidationError("cada línea requiere producto y talla")
		}
		if it.Quantity < 1 {
			return domain.ValidationError("la cantidad de cada línea debe ser al menos 1")
		}
	}
	return nil
}

// customerEmail resuelve el email del pedido contra la identidad del token.
func customerEmail(actor entity.Actor, fromBody string) (string, error) {
	fromBody = strings.TrimSpace(fromBody)
	tokenEmail := strings.TrimSpace(actor.Email)
	switch {
	case fromBody == "":
		return tokenEmail, nil
	case tokenEmail != "" && !strings.EqualFold(fromBody, tokenEmail):
		return "", fmt.Errorf("%w: el email del pedido no coincide con la sesión", domain.ErrForbidden)
	default:
		return fromBody, nil
	}
}

// checkCatalog exige que cada línea apunte a un producto existente y a una talla que ofrece.
func checkCatalog(ctx context.Context, products repository.ProductRepository, items []entity.OrderItem) error {
	for _, it := range items {
		p, err := products.GetByID(ctx, it.ProductID)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ValidationError("producto desconocido: " + it.ProductID)
		}
		if err != nil {
			return err
		}
		if !slices.Contains(p.Sizes, it.Size) {
			return domain.ValidationError(fmt.Sprintf("talla %s no disponible para %s", it.Size, p.Name))
		}
	}
	return nil
}

// GetOrdersWithItems lista pedidos (más recientes primero), opcionalmente por estado.
func (uc *OrderUseCase) GetOrdersWithItems(ctx context.Context, status string) ([]dto.OrderResponse, error) {
	filter := repository.OrderFilter{}
	if status != "" {
		st, err := parseStatus(status)
		if err != nil {
			return nil, err
		}
		filter.Status = &st
	}
	return uc.list(ctx, filter)
}

// GetRecentOrdersWithItems los limit pedidos más recientes.
func (uc *OrderUseCase) GetRecentOrdersWithItems(ctx context.Context, limit int) ([]dto.OrderResponse, error) {
	if limit <= 0 {
		return []dto.OrderResponse{}, nil
	}
	return uc.list(ctx, repository.OrderFilter{Limit: limit})
}

func (uc *OrderUseCase) list(ctx context.Context, filter repository.OrderFilter) ([]dto.OrderResponse, error) {
	list, err := uc.orderRepo.ListWithItems(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, dto.NewOrderResponse(o))
	}
	return out, nil
}

// GetOrder obtiene un pedido con sus líneas. domain.ErrNotFound si no existe.
func (uc *OrderUseCase) GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewOrderResponse(o)
	return &out, nil
}

// UpdateOrderStatus cambia el estado del pedido y registra ORDER_<STATUS>.
func (uc *OrderUseCase) UpdateOrderStatus(ctx context.Context, actor entity.Actor, id, status string) (*dto.OrderResponse, error) {
	to, err := parseStatus(status)
	if err != nil {
		return nil, err
	}
	var updated *entity.OrderWithItems
	err = uc.txRunner.Run(ctx, func(repos ports.Repos) error {
		current, err := repos.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := uc.policy.CanTransition(current.Status, to); err != nil {
			return err
		}
		if err := repos.Orders.UpdateStatus(ctx, id, to); err != nil {
			return err
		}
		if err := audit.Record(ctx, repos.Audit, audit.Entry{
			Action:   entity.OrderStatusAction(to),
			Entity:   entity.AuditEntityOrder,
			EntityID: id,
			Actor:    actor,
			Details:  map[string]any{"from": string(current.Status), "to": string(to)},
		}); err != nil {
			return err
		}
		updated, err = repos.Orders.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", id).Str("status", string(to)).Msg("estado de pedido actualizado")
	uc.revalidateOrder(ctx, id)
	out := dto.NewOrderResponse(updated)
	return &out, nil
}

// AddTrackingInfo guarda guía y transportadora y pasa el pedido a SHIPPED.
// Ambos valores son obligatorios. Registra exactamente un ORDER_SHIPPED.
func (uc *OrderUseCase) AddTrackingInfo(ctx context.Context, actor entity.Actor, id, trackingNumber, carrier string) (*dto.OrderResponse, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	carrier = strings.TrimSpace(carrier)
	if trackingNumber == "" || carrier == "" {
		return nil, domain.ValidationError("número de guía y transportadora son obligatorios")
	}
	var updated *entity.OrderWithItems
	err := uc.txRunner.Run(ctx, func(repos ports.Repos) error {
		current, err := repos.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := uc.policy.CanShip(current.Status); err != nil {
			return err
		}
		if err := repos.Orders.UpdateTracking(ctx, id, trackingNumber, carrier); err != nil {
			return err
		}
		if err := audit.Record(ctx, repos.Audit, audit.Entry{
			Action:   entity.OrderStatusAction(entity.OrderStatusShipped),
			Entity:   entity.AuditEntityOrder,
			EntityID: id,
			Actor:    actor,
			Details: map[string]any{
				"from":            string(current.Status),
				"trackingNumber":  trackingNumber,
				"trackingCarrier": carrier,
			},
		}); err != nil {
			return err
		}
		updated, err = repos.Orders.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", id).Str("carrier", carrier).Msg("pedido enviado")
	uc.revalidateOrder(ctx, id)
	out := dto.NewOrderResponse(updated)
	return &out, nil
}

// CountOrders cuenta pedidos; status vacío = todos.
func (uc *OrderUseCase) CountOrders(ctx context.Context, status string) (int, error) {
	if status == "" {
		return uc.orderRepo.Count(ctx, nil)
	}
	st, err := parseStatus(status)
	if err != nil {
		return 0, err
	}
	return uc.orderRepo.Count(ctx, &st)
}

// AggregateOrderTotal suma total_amount. Sin estados suma todos los pedidos, cancelados incluidos.
func (uc *OrderUseCase) AggregateOrderTotal(ctx context.Context, statuses ...entity.OrderStatus) (decimal.Decimal, error) {
	return uc.orderRepo.SumTotal(ctx, statuses...)
}

// PackingSlip genera el PDF de la hoja de empaque.
func (uc *OrderUseCase) PackingSlip(ctx context.Context, id string) ([]byte, error) {
	o, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.packingSlip.Generate(o)
}

func (uc *OrderUseCase) revalidateOrder(ctx context.Context, id string) {
	ports.RevalidateAfterCommit(ctx, uc.revalidator, uc.log,
		ports.TagAdminOrders, ports.OrderTag(id), ports.TagAdminDashboard)
}

func parseStatus(s string) (entity.OrderStatus, error) {
	st := entity.OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", domain.ValidationError("estado de pedido desconocido: " + s)
	}
	return st, nil
}
