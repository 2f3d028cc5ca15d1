package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/streetwear-admin-api/internal/application/usecase"
)

// StorefrontHandler lecturas públicas del catálogo activo con disponibilidad por talla.
type StorefrontHandler struct {
	uc *usecase.ProductUseCase
}

// NewStorefrontHandler construye el handler.
func NewStorefrontHandler(uc *usecase.ProductUseCase) *StorefrontHandler {
	return &StorefrontHandler{uc: uc}
}

// ListProducts GET /api/storefront/products
func (h *StorefrontHandler) ListProducts(c *fiber.Ctx) error {
	out, err := h.uc.ListActive(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetProduct GET /api/storefront/products/:id. Un producto inactivo responde 404.
func (h *StorefrontHandler) GetProduct(c *fiber.Ctx) error {
	out, err := h.uc.GetActive(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
