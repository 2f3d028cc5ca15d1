package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/streetwear-admin-api/internal/application/analytics"
)

// DashboardHandler maneja el endpoint del dashboard de administración.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats devuelve contadores, ingresos, inversión y pedidos recientes.
// GET /api/admin/dashboard
//
// Respuesta: DashboardStatsDTO. Los montos son strings decimales; una tienda vacía
// devuelve ceros y recentOrders [].
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetDashboardStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
