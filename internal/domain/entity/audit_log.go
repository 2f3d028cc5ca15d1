package entity

import "time"

// Entidades auditadas.
const (
	AuditEntityProduct    = "Product"
	AuditEntityStockLevel = "StockLevel"
	AuditEntityOrder      = "Order"
	AuditEntityInvestment = "Investment"
)

// Acciones auditadas (las de pedidos se derivan del estado: ORDER_<STATUS>).
const (
	AuditActionProductCreated        = "PRODUCT_CREATED"
	AuditActionProductUpdated        = "PRODUCT_UPDATED"
	AuditActionProductDeleted        = "PRODUCT_DELETED"
	AuditActionStockUpdated          = "STOCK_UPDATED"
	AuditActionStockThresholdUpdated = "STOCK_THRESHOLD_UPDATED"
	AuditActionOrderCreated          = "ORDER_CREATED"
	AuditActionInvestmentCreated     = "INVESTMENT_CREATED"
	AuditActionInvestmentUpdated     = "INVESTMENT_UPDATED"
	AuditActionInvestmentDeleted     = "INVESTMENT_DELETED"
)

// OrderStatusAction devuelve la acción de auditoría de un cambio de estado, ej. ORDER_SHIPPED.
func OrderStatusAction(status OrderStatus) string {
	return "ORDER_" + string(status)
}

// AuditLog registro append-only de una mutación administrativa.
// EntityID es una referencia no propietaria: la entidad puede haber sido borrada.
type AuditLog struct {
	ID        string
	Action    string
	Entity    string
	EntityID  string
	Details   map[string]any
	CreatedAt time.Time
}

// Actor administrador que ejecuta la mutación (identidad verificada del token).
type Actor struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}
