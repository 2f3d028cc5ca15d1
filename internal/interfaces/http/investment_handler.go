package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/streetwear-admin-api/internal/application/dto"
	"github.com/jhoicas/streetwear-admin-api/internal/application/usecase"
)

// InvestmentHandler CRUD de inversiones (gastos de capital del negocio).
type InvestmentHandler struct {
	uc *usecase.InvestmentUseCase
}

// NewInvestmentHandler construye el handler.
func NewInvestmentHandler(uc *usecase.InvestmentUseCase) *InvestmentHandler {
	return &InvestmentHandler{uc: uc}
}

// Create POST /api/admin/investments
func (h *InvestmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvestmentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/admin/investments
func (h *InvestmentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID GET /api/admin/investments/:id
func (h *InvestmentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update PUT /api/admin/investments/:id
func (h *InvestmentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInvestmentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete DELETE /api/admin/investments/:id
func (h *InvestmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
