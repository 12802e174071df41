package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/notify-renewals/internal/application/livequery"
	"github.com/jhoicas/notify-renewals/internal/application/reminder"
	"github.com/jhoicas/notify-renewals/internal/application/subscription"
	"github.com/jhoicas/notify-renewals/internal/application/usecase"
	"github.com/jhoicas/notify-renewals/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC  *usecase.CompanyUseCase
	CustomerUC *subscription.CustomerUseCase
	ReportUC   *subscription.ReportUseCase
	ReminderUC *reminder.UseCase
	Hub        *livequery.Hub
	Log        *logger.Logger

	// Streams se cancela antes de apagar el servidor para cerrar los streams SSE.
	Streams context.Context
	// StreamHeartbeat intervalo del keep-alive SSE; cero usa DefaultStreamHeartbeat.
	StreamHeartbeat time.Duration
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log.Component("http")
	app.Use(RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC, log)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)

	// /defaults y /renewal-preview antes de /:id
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, log)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/defaults", customerHandler.Defaults)
	customers.Post("/renewal-preview", customerHandler.PreviewRenewal)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	renewals := api.Group("/renewals")
	renewalHandler := NewRenewalHandler(deps.Streams, deps.CustomerUC, deps.ReportUC, deps.Hub, deps.StreamHeartbeat, log)
	renewals.Get("/", renewalHandler.Query)
	renewals.Get("/today", renewalHandler.Today)
	renewals.Get("/today/stream", renewalHandler.StreamToday)
	renewals.Get("/report", renewalHandler.Report)

	rem := api.Group("/reminder")
	reminderHandler := NewReminderHandler(deps.ReminderUC, log)
	rem.Get("/", reminderHandler.Status)
	rem.Post("/", reminderHandler.Activate)
	rem.Get("/diagnostics", reminderHandler.Diagnostics)
	rem.Post("/settings/battery", reminderHandler.OpenBatterySettings)
	rem.Post("/settings/power", reminderHandler.OpenPowerSettings)
}
