// Package inventory contiene las reglas de stock por talla (servicio de dominio).
package inventory

import (
	"sort"
	"strings"

	"github.com/jhoicas/streetwear-admin-api/internal/domain"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/entity"
)

// TotalStock suma las cantidades de todas las filas de un producto.
func TotalStock(levels []*entity.StockLevel) int {
	total := 0
	for _, l := range levels {
		total += l.Quantity
	}
	return total
}

// MissingSizes devuelve las tallas declaradas que aún no tienen fila de stock,
// en el orden declarado. Las filas de tallas retiradas del producto no se tocan.
func MissingSizes(sizes []string, existing []*entity.StockLevel) []string {
	have := make(map[string]struct{}, len(existing))
	for _, l := range existing {
		have[l.Size] = struct{}{}
	}
	var missing []string
	for _, s := range sizes {
		if _, ok := have[s]; ok {
			continue
		}
		have[s] = struct{}{}
		missing = append(missing, s)
	}
	return missing
}

// LowStock filtra las filas en o por debajo de su umbral. No mira si el producto está activo.
func LowStock(levels []*entity.StockLevel) []*entity.StockLevel {
	out := make([]*entity.StockLevel, 0)
	for _, l := range levels {
		if l.IsLow() {
			out = append(out, l)
		}
	}
	return out
}

// SortBySizes ordena las filas según el orden de tallas del producto;
// las tallas que ya no están declaradas van al final, por nombre.
func SortBySizes(levels []*entity.StockLevel, sizes []string) {
	pos := make(map[string]int, len(sizes))
	for i, s := range sizes {
		pos[s] = i
	}
	sort.SliceStable(levels, func(i, j int) bool {
		pi, okI := pos[levels[i].Size]
		pj, okJ := pos[levels[j].Size]
		switch {
		case okI && okJ:
			return pi < pj
		case okI != okJ:
			return okI
		default:
			return levels[i].Size < levels[j].Size
		}
	})
}

// ValidateQuantity cantidad absoluta de stock (no negativa).
func ValidateQuantity(quantity int) error {
	if quantity < 0 {
		return domain.ValidationError("la cantidad de stock no puede ser negativa")
	}
	return nil
}

// ValidateThreshold umbral de stock bajo (no negativo).
func ValidateThreshold(threshold int) error {
	if threshold < 0 {
		return domain.ValidationError("el umbral de stock bajo no puede ser negativo")
	}
	return nil
}

// NormalizeSizes recorta espacios y valida que no haya tallas vacías ni repetidas.
func NormalizeSizes(sizes []string) ([]string, error) {
	if len(sizes) == 0 {
		return nil, domain.ValidationError("el producto debe declarar al menos una talla")
	}
	seen := make(map[string]struct{}, len(sizes))
	out := make([]string, 0, len(sizes))
	for _, s := range sizes {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, domain.ValidationError("las tallas no pueden estar vacías")
		}
		if _, dup := seen[s]; dup {
			return nil, domain.ValidationError("talla repetida: " + s)
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out, nil
}
