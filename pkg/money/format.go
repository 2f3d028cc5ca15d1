// Package money formatea montos decimales para mostrarlos en el dashboard.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter formatea montos con el símbolo y la convención numérica del locale.
type Formatter struct {
	unit    currency.Unit
	printer *message.Printer
}

// NewFormatter construye el formatter. currencyCode es ISO 4217 (USD, EUR, INR...), locale es BCP 47.
func NewFormatter(currencyCode, locale string) (*Formatter, error) {
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return nil, fmt.Errorf("money: moneda inválida %q: %w", currencyCode, err)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("money: locale inválido %q: %w", locale, err)
	}
	return &Formatter{unit: unit, printer: message.NewPrinter(tag)}, nil
}

// Format devuelve el monto con símbolo de moneda, ej. "$ 1,250.00".
func (f *Formatter) Format(amount decimal.Decimal) string {
	scale, _ := currency.Standard.Rounding(f.unit)
	v, _ := amount.Round(int32(scale)).Float64()
	return f.printer.Sprint(currency.Symbol(f.unit.Amount(v)))
}

// Currency código ISO configurado.
func (f *Formatter) Currency() string {
	return f.unit.String()
}
