package dto

import "time"

// StockLevelResponse fila de stock de una talla.
type StockLevelResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"productId"`
	Size         string    `json:"size"`
	Quantity     int       `json:"quantity"`
	LowThreshold int       `json:"lowThreshold"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateStockLevelRequest talla nueva para un producto (arranca en 0).
type CreateStockLevelRequest struct {
	Size string `json:"size"`
}

// UpdateStockRequest cantidad absoluta (no es un delta).
type UpdateStockRequest struct {
	Quantity *int `json:"quantity"`
}

// UpdateThresholdRequest nuevo umbral de stock bajo.
type UpdateThresholdRequest struct {
	LowThreshold *int `json:"lowThreshold"`
}

// LowStockAlertResponse alerta de stock bajo para el panel.
type LowStockAlertResponse struct {
	StockLevelID string `json:"stockLevelId"`
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	Size         string `json:"size"`
	Quantity     int    `json:"quantity"`
	LowThreshold int    `json:"lowThreshold"`
}

// SizeAvailability disponibilidad de una talla en el storefront.
type SizeAvailability struct {
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
	Available bool   `json:"available"`
	Low       bool   `json:"low"`
}

// ProductStockResponse stock derivado de un producto: total = suma de cantidades.
type ProductStockResponse struct {
	ProductID  string             `json:"productId"`
	TotalStock int                `json:"totalStock"`
	OutOfStock bool               `json:"outOfStock"`
	Sizes      []SizeAvailability `json:"sizes"`
}
