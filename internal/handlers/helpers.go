package handlers

import (
	"strconv"

	"storefront/internal/apperrors"

	"github.com/gofiber/fiber/v2"
)

// paramID reads a numeric route parameter. Anything unparsable is reported
// as a missing resource.
func paramID(c *fiber.Ctx, name, resource string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewNotFound(resource, raw)
	}
	return uint(id), nil
}

func noContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
