package http

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/jhoicas/notify-renewals/internal/application/dto"
	"github.com/jhoicas/notify-renewals/internal/application/livequery"
	"github.com/jhoicas/notify-renewals/internal/application/subscription"
	"github.com/jhoicas/notify-renewals/internal/domain"
	"github.com/jhoicas/notify-renewals/pkg/logger"
)

// DefaultStreamHeartbeat intervalo del comentario keep-alive del stream SSE.
const DefaultStreamHeartbeat = 15 * time.Second

// RenewalHandler expone las consultas de renovación, su stream en vivo y el informe PDF.
type RenewalHandler struct {
	customers *subscription.CustomerUseCase
	reports   *subscription.ReportUseCase
	hub       *livequery.Hub
	log       *logger.Logger

	// streams termina cuando el servidor se apaga; cierra todos los streams abiertos.
	streams   context.Context
	heartbeat time.Duration
}

// NewRenewalHandler construye el handler. streams acota la vida de los streams SSE.
func NewRenewalHandler(
	streams context.Context,
	customers *subscription.CustomerUseCase,
	reports *subscription.ReportUseCase,
	hub *livequery.Hub,
	heartbeat time.Duration,
	log *logger.Logger,
) *RenewalHandler {
	if streams == nil {
		streams = context.Background()
	}
	if heartbeat <= 0 {
		heartbeat = DefaultStreamHeartbeat
	}
	return &RenewalHandler{
		customers: customers,
		reports:   reports,
		hub:       hub,
		log:       log,
		streams:   streams,
		heartbeat: heartbeat,
	}
}

// Today GET /api/renewals/today
func (h *RenewalHandler) Today(c *fiber.Ctx) error {
	out, err := h.customers.RenewalsToday(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Query GET /api/renewals?date=YYYY-MM-DD o ?from=...&to=...
func (h *RenewalHandler) Query(c *fiber.Ctx) error {
	var (
		out *dto.RenewalListResponse
		err error
	)
	switch {
	case c.Query("date") != "":
		out, err = h.customers.RenewalsOn(c.UserContext(), c.Query("date"))
	case c.Query("from") != "" || c.Query("to") != "":
		out, err = h.customers.RenewalsBetween(c.UserContext(), c.Query("from"), c.Query("to"))
	default:
		err = domain.NewValidationError("date", "Date o From y To son requeridos")
	}
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// StreamToday GET /api/renewals/today/stream (Server-Sent Events).
// Envía la lista de hoy al conectar y otra vez tras cada cambio en clientes. Un comentario
// periódico detecta clientes desconectados; el stream termina también al apagar el servidor.
func (h *RenewalHandler) StreamToday(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithCancel(h.streams)
		defer cancel()

		snaps := h.customers.WatchRenewalsToday(ctx, h.hub)
		ticker := time.NewTicker(h.heartbeat)
		defer ticker.Stop()

		for {
			select {
			case snap, ok := <-snaps:
				if !ok {
					return
				}
				event, payload := "renewals", any(snap.Data)
				if snap.Err != nil {
					h.log.Error().Err(snap.Err).Msg("stream de renovaciones")
					event, payload = "error", dto.ErrorResponse{Code: "INTERNAL", Message: internalMessage}
				}
				if err := writeEvent(w, event, payload); err != nil {
					return
				}
			case <-ticker.C:
				if _, err := w.WriteString(": ping\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					// cliente desconectado
					return
				}
			}
		}
	}))
	return nil
}

// Report GET /api/renewals/report?from=&to= devuelve el PDF del rango.
func (h *RenewalHandler) Report(c *fiber.Ctx) error {
	from, to := c.Query("from"), c.Query("to")
	if from == "" && to == "" {
		today := h.customers.Today()
		from, to = today, today
	}
	doc, err := h.reports.Generate(c.UserContext(), from, to)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="renovaciones_%s_%s.pdf"`, from, to))
	return c.Send(doc)
}

func writeEvent(w *bufio.Writer, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	return w.Flush()
}
