package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/notify-renewals/pkg/logger"
)

// RequestLogger devuelve un middleware Fiber que registra cada petición con zerolog.
// El stream SSE se registra al abrirse, no al cerrarse.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		ev := log.Debug()
		if status >= fiber.StatusInternalServerError {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("petición")
		return err
	}
}
