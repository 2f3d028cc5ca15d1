package ports

import "github.com/jhoicas/streetwear-admin-api/internal/domain/entity"

// PackingSlipGenerator genera el PDF de la hoja de empaque de un pedido.
type PackingSlipGenerator interface {
	Generate(order *entity.OrderWithItems) ([]byte, error)
}
