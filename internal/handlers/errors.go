package handlers

import (
	"errors"

	"storefront/internal/apperrors"
	"storefront/pkg/logging"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// StatusOf maps an error kind to its HTTP status.
func StatusOf(kind apperrors.Kind) int {
	switch kind {
	case apperrors.Validation, apperrors.InvalidUID, apperrors.InvalidToken:
		return fiber.StatusBadRequest
	case apperrors.Unauthorized:
		return fiber.StatusUnauthorized
	case apperrors.Forbidden:
		return fiber.StatusForbidden
	case apperrors.NotFound:
		return fiber.StatusNotFound
	case apperrors.Conflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler renders every error returned by a handler. Unclassified
// errors become a bare 500; their details only reach the log.
func ErrorHandler(logger logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
		}

		var appErr *apperrors.Error
		if !errors.As(err, &appErr) || appErr.Kind == apperrors.Internal {
			logging.LogError(logger, "request failed", err, logrus.Fields{
				"method": c.Method(),
				"path":   c.Path(),
			})
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
		}

		body := fiber.Map{"message": appErr.Message}
		if appErr.Fields != nil {
			body["errors"] = appErr.Fields
		}
		return c.Status(StatusOf(appErr.Kind)).JSON(body)
	}
}
