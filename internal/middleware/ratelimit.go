package middleware

import (
	"math"
	"strconv"

	"storefront/internal/throttle"

	"github.com/gofiber/fiber/v2"
)

// RateLimit rejects clients that exceed limiter with 429, keyed by IP.
func RateLimit(limiter *throttle.KeyedLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, retryAfter := limiter.Allow(c.IP())
		if !ok {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			return fiber.NewError(fiber.StatusTooManyRequests, "Request was throttled.")
		}
		return c.Next()
	}
}
