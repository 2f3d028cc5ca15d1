package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. IsActive nil = activo.
type CreateProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	CutPrice    *decimal.Decimal `json:"cutPrice"`
	Sizes       []string         `json:"sizes"`
	Colors      []string         `json:"colors"`
	IsActive    *bool            `json:"isActive"`
	IsFeatured  bool             `json:"isFeatured"`
}

// UpdateProductRequest entrada para actualizar un producto (solo campos presentes).
// Las tallas nuevas crean filas de stock en cero; las retiradas conservan su fila.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CutPrice    *decimal.Decimal `json:"cutPrice"`
	Sizes       []string         `json:"sizes"`
	Colors      []string         `json:"colors"`
	IsActive    *bool            `json:"isActive"`
	IsFeatured  *bool            `json:"isFeatured"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	CutPrice    *decimal.Decimal `json:"cutPrice,omitempty"`
	Sizes       []string         `json:"sizes"`
	Colors      []string         `json:"colors"`
	IsActive    bool             `json:"isActive"`
	IsFeatured  bool             `json:"isFeatured"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// StorefrontProductResponse producto con su disponibilidad por talla.
type StorefrontProductResponse struct {
	ProductResponse
	Stock ProductStockResponse `json:"stock"`
}
