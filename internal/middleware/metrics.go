package middleware

import (
	"storefront/internal/metrics"

	"github.com/gofiber/fiber/v2"
)

// Metrics counts every request by method, matched route and status. Errors
// are rendered here so the final status is known.
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		m.Request(c.Method(), c.Route().Path, c.Response().StatusCode())
		return nil
	}
}
