package ports

import (
	"context"

	"github.com/jhoicas/streetwear-admin-api/pkg/logger"
)

// Tags de invalidación de caché consumidos por el storefront y el panel.
const (
	TagActiveProducts = "storefront-active-products"
	TagAdminOrders    = "admin-orders"
	TagAdminDashboard = "admin-dashboard"
)

// ProductTag tag de la página de un producto.
func ProductTag(productID string) string {
	return "storefront-product-" + productID
}

// OrderTag tag del detalle de un pedido en el panel.
func OrderTag(orderID string) string {
	return "admin-order-" + orderID
}

// Revalidator publica tags de invalidación después del commit.
// Es best effort: un error se registra en log y no revierte la mutación.
type Revalidator interface {
	Revalidate(ctx context.Context, tags ...string) error
}

// RevalidateAfterCommit publica los tags y solo registra el error: la mutación ya quedó confirmada.
func RevalidateAfterCommit(ctx context.Context, r Revalidator, log *logger.Logger, tags ...string) {
	if r == nil || len(tags) == 0 {
		return
	}
	if err := r.Revalidate(ctx, tags...); err != nil {
		log.Warn().Err(err).Strs("tags", tags).Msg("revalidación fallida")
	}
}
