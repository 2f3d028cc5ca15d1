package money

import "github.com/shopspring/decimal"

// Scale decimales que persisten las columnas NUMERIC(12,2).
const Scale = 2

// FitsScale indica si el monto se guarda sin redondeo. "10.500" cabe, "10.005" no.
func FitsScale(amount decimal.Decimal) bool {
	return amount.Equal(amount.Truncate(Scale))
}
