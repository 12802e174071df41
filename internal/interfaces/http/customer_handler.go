package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/notify-renewals/internal/application/dto"
	"github.com/jhoicas/notify-renewals/internal/application/subscription"
	"github.com/jhoicas/notify-renewals/pkg/logger"
)

// CustomerHandler maneja las peticiones HTTP para clientes.
type CustomerHandler struct {
	uc  *subscription.CustomerUseCase
	log *logger.Logger
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *subscription.CustomerUseCase, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{uc: uc, log: log}
}

// Create POST /api/customers. Con ?chain=true devuelve además el siguiente borrador.
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if c.QueryBool("chain", false) {
		out, err := h.uc.CreateChained(c.UserContext(), in)
		if err != nil {
			return writeError(c, h.log, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update PUT /api/customers/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/customers/:id
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID GET /api/customers/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// List GET /api/customers
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Defaults GET /api/customers/defaults
func (h *CustomerHandler) Defaults(c *fiber.Ctx) error {
	return c.JSON(h.uc.Defaults())
}

// PreviewRenewal POST /api/customers/renewal-preview
func (h *CustomerHandler) PreviewRenewal(c *fiber.Ctx) error {
	var in dto.RenewalPreviewRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.PreviewRenewal(in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
