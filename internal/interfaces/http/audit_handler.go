package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/streetwear-admin-api/internal/application/audit"
)

// AuditHandler consulta del log de auditoría.
type AuditHandler struct {
	uc *audit.AuditUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *audit.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List godoc
// @Summary      Log de auditoría, más reciente primero
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        entity    query  string  false  "Entidad (Order, StockLevel, Product, Investment)"
// @Param        entityId  query  string  false  "ID de la entidad"
// @Param        limit     query  int     false  "Límite"  default(50)
// @Success      200       {object}  dto.AuditLogListResponse
// @Router       /api/admin/audit-logs [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListAuditLog(c.UserContext(), c.Query("entity"), c.Query("entityId"), c.QueryInt("limit", 0))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
