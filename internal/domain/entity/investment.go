package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment entrada de costo (tela, producción, marketing...) usada solo para el balance del dashboard.
type Investment struct {
	ID          string
	Name        string
	Description string
	Amount      decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
