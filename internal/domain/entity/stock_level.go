package entity

import "time"

// DefaultLowThreshold umbral de stock bajo cuando no se indica otro.
const DefaultLowThreshold = 5

// StockLevel cantidad vendible de una variante (producto + talla).
// Una fila por par (ProductID, Size); Quantity nunca es negativa.
type StockLevel struct {
	ID           string
	ProductID    string
	Size         string
	Quantity     int
	LowThreshold int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLow indica si la fila está en o por debajo de su umbral.
func (s StockLevel) IsLow() bool {
	return s.Quantity <= s.LowThreshold
}
