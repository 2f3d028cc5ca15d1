package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado del pedido.
type OrderStatus string

const (
	OrderStatusPending      OrderStatus = "PENDING"
	OrderStatusPaid         OrderStatus = "PAID"
	OrderStatusInProduction OrderStatus = "IN_PRODUCTION"
	OrderStatusShipped      OrderStatus = "SHIPPED"
	OrderStatusDelivered    OrderStatus = "DELIVERED"
	OrderStatusCancelled    OrderStatus = "CANCELLED"
)

// OrderStatuses todos los estados en orden de progresión.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusInProduction,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// Valid indica si el estado pertenece al enum.
func (s OrderStatus) Valid() bool {
	for _, st := range OrderStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// ShippingAddress dirección de envío (se guarda como JSON).
type ShippingAddress struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

// Order pedido de un cliente. TotalAmount se fija al crear y no se recalcula desde los ítems.
// Los campos opcionales vacíos ("") equivalen a NULL en la base de datos.
type Order struct {
	ID              string
	CustomerEmail   string
	CustomerName    string
	Status          OrderStatus
	TotalAmount     decimal.Decimal
	ShippingAddress ShippingAddress
	PaymentID       string
	TrackingNumber  string
	TrackingCarrier string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem línea del pedido. Inmutable una vez creada.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	DesignID  string
	Quantity  int
	Size      string
	Color     string
}

// OrderItemDetail línea del pedido unida al producto referenciado (para mostrar).
// ProductName queda vacío si el producto ya no existe.
type OrderItemDetail struct {
	OrderItem
	ProductName  string
	ProductPrice decimal.Decimal
}

// OrderWithItems pedido con sus líneas.
type OrderWithItems struct {
	Order
	Items []OrderItemDetail
}
