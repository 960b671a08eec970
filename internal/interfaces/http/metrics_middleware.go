package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Backoffice-api/internal/infrastructure/telemetry"
)

// MetricsMiddleware registra cada request por método, ruta (patrón, no path concreto) y status.
func MetricsMiddleware(m *telemetry.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()
		if err != nil {
			// el status final lo decide el ErrorHandler; se resuelve aquí para medirlo
			if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
			err = nil
		}

		m.ObserveHTTP(c.Method(), c.Route().Path, c.Response().StatusCode(), time.Since(start))
		return err
	}
}
