package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/notify-renewals/internal/application/dto"
	"github.com/jhoicas/notify-renewals/internal/application/reminder"
	"github.com/jhoicas/notify-renewals/pkg/logger"
)

// ReminderHandler expone el recordatorio diario.
type ReminderHandler struct {
	uc  *reminder.UseCase
	log *logger.Logger
}

// NewReminderHandler construye el handler.
func NewReminderHandler(uc *reminder.UseCase, log *logger.Logger) *ReminderHandler {
	return &ReminderHandler{uc: uc, log: log}
}

// Activate POST /api/reminder con {"hour":"9","minute":"30"}.
func (h *ReminderHandler) Activate(c *fiber.Ctx) error {
	var in dto.ActivateReminderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Activate(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Status GET /api/reminder
func (h *ReminderHandler) Status(c *fiber.Ctx) error {
	out, err := h.uc.Status(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Diagnostics GET /api/reminder/diagnostics
func (h *ReminderHandler) Diagnostics(c *fiber.Ctx) error {
	out, err := h.uc.Diagnostics(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// OpenBatterySettings POST /api/reminder/settings/battery
func (h *ReminderHandler) OpenBatterySettings(c *fiber.Ctx) error {
	if err := h.uc.OpenBatteryOptimizationSettings(c.UserContext()); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// OpenPowerSettings POST /api/reminder/settings/power
func (h *ReminderHandler) OpenPowerSettings(c *fiber.Ctx) error {
	if err := h.uc.OpenPowerManagerSettings(c.UserContext()); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
