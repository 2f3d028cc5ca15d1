package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa una prenda del catálogo (drop). El core no es dueño del catálogo:
// lo referencia para sincronizar las filas de stock por talla.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	CutPrice    *decimal.Decimal // precio tachado (antes del descuento), opcional
	Sizes       []string         // orden declarado: S, M, L...
	Colors      []string
	IsActive    bool
	IsFeatured  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
