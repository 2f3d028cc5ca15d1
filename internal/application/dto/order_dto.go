package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShippingAddressDTO dirección de envío.
type ShippingAddressDTO struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

// CreateOrderItemRequest línea del pedido.
type CreateOrderItemRequest struct {
	ProductID string `json:"productId"`
	DesignID  string `json:"designId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// CreateOrderRequest entrada de checkout. El total llega calculado por el storefront.
type CreateOrderRequest struct {
	CustomerEmail   string                   `json:"customerEmail"`
	CustomerName    string                   `json:"customerName"`
	TotalAmount     decimal.Decimal          `json:"totalAmount"`
	ShippingAddress ShippingAddressDTO       `json:"shippingAddress"`
	PaymentID       string                   `json:"paymentId"`
	Notes           string                   `json:"notes"`
	Items           []CreateOrderItemRequest `json:"items"`
}

// UpdateOrderStatusRequest nuevo estado del pedido.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// AddTrackingRequest guía de envío.
type AddTrackingRequest struct {
	TrackingNumber string `json:"trackingNumber"`
	Carrier        string `json:"carrier"`
}

// OrderItemResponse línea con datos del producto (vacíos si el producto fue borrado).
type OrderItemResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	ProductPrice decimal.Decimal `json:"productPrice"`
	DesignID     string          `json:"designId"`
	Quantity     int             `json:"quantity"`
	Size         string          `json:"size"`
	Color        string          `json:"color"`
}

// OrderResponse pedido con sus líneas.
type OrderResponse struct {
	ID              string              `json:"id"`
	CustomerEmail   string              `json:"customerEmail"`
	CustomerName    string              `json:"customerName"`
	Status          string              `json:"status"`
	TotalAmount     decimal.Decimal     `json:"totalAmount"`
	ShippingAddress ShippingAddressDTO  `json:"shippingAddress"`
	PaymentID       string              `json:"paymentId,omitempty"`
	TrackingNumber  string              `json:"trackingNumber,omitempty"`
	TrackingCarrier string              `json:"trackingCarrier,omitempty"`
	Notes           string              `json:"notes,omitempty"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}
