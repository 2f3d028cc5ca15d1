package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/streetwear-admin-api/internal/application/dto"
	appinventory "github.com/jhoicas/streetwear-admin-api/internal/application/inventory"
	"github.com/jhoicas/streetwear-admin-api/internal/domain"
)

// StockHandler endpoints del ledger de stock por talla.
type StockHandler struct {
	uc *appinventory.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *appinventory.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// ListByProduct godoc
// @Summary      Stock por talla de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}   dto.StockLevelResponse
// @Router       /api/admin/products/{id}/stock [get]
func (h *StockHandler) ListByProduct(c *fiber.Ctx) error {
	out, err := h.uc.GetStockLevelsByProductID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Agregar una talla al stock del producto
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.CreateStockLevelRequest  true  "Talla"
// @Success      201   {object}  dto.StockLevelResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/products/{id}/stock [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockLevelRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateStockLevel(c.UserContext(), c.Params("id"), in.Size)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ProductStock godoc
// @Summary      Disponibilidad por talla (total y agotado)
// @Tags         storefront
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/storefront/products/{id}/stock [get]
func (h *StockHandler) ProductStock(c *fiber.Ctx) error {
	out, err := h.uc.GetProductStock(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdateQuantity godoc
// @Summary      Fijar la cantidad de una talla
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del stock level"
// @Param        body  body  dto.UpdateStockRequest  true  "Nueva cantidad"
// @Success      200   {object}  dto.StockLevelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/stock/{id} [patch]
func (h *StockHandler) UpdateQuantity(c *fiber.Ctx) error {
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Quantity == nil {
		return domain.ValidationError("quantity es requerido")
	}
	out, err := h.uc.UpdateStockLevel(c.UserContext(), GetActor(c), c.Params("id"), *in.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdateThreshold godoc
// @Summary      Cambiar el umbral de stock bajo
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del stock level"
// @Param        body  body  dto.UpdateThresholdRequest  true  "Nuevo umbral"
// @Success      200   {object}  dto.StockLevelResponse
// @Router       /api/admin/stock/{id}/threshold [patch]
func (h *StockHandler) UpdateThreshold(c *fiber.Ctx) error {
	var in dto.UpdateThresholdRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.LowThreshold == nil {
		return domain.ValidationError("lowThreshold es requerido")
	}
	out, err := h.uc.UpdateLowThreshold(c.UserContext(), GetActor(c), c.Params("id"), *in.LowThreshold)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Alerts godoc
// @Summary      Tallas con cantidad <= umbral
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockAlertResponse
// @Router       /api/admin/stock/alerts [get]
func (h *StockHandler) Alerts(c *fiber.Ctx) error {
	out, err := h.uc.GetLowStockAlerts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}
