package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvestmentRequest entrada para registrar una inversión.
type CreateInvestmentRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// UpdateInvestmentRequest actualización parcial.
type UpdateInvestmentRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
}

// InvestmentResponse salida de una inversión.
type InvestmentResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// InvestmentListResponse lista completa más el total invertido.
type InvestmentListResponse struct {
	Items []InvestmentResponse `json:"items"`
	Total decimal.Decimal      `json:"total"`
}
