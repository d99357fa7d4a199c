package middleware

import (
	"strings"

	"storefront/internal/apperrors"
	"storefront/internal/policy"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const actorKey = "actor"

// Authenticate resolves the request actor from an optional Bearer access
// token. Requests without an Authorization header continue anonymously;
// a malformed or invalid token is rejected with 401.
func Authenticate(authService *services.AuthService, users repositories.UserRepository, logger logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			c.Locals(actorKey, policy.Anonymous())
			return c.Next()
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return apperrors.NewUnauthorized("Authorization header must contain two space-delimited values")
		}

		userID, err := authService.ValidateToken(parts[1], services.AccessToken)
		if err != nil {
			return err
		}
		user, err := users.GetByID(c.UserContext(), userID)
		if err != nil {
			if apperrors.KindOf(err) == apperrors.NotFound {
				return apperrors.NewUnauthorized("User not found")
			}
			return err
		}
		if !user.IsActive {
			return apperrors.NewUnauthorized("User is inactive")
		}

		logger.WithField("user_id", user.ID).Debug("request authenticated")
		c.Locals(actorKey, policy.Actor{
			UserID:        user.ID,
			Email:         user.Email,
			Authenticated: true,
			IsSuperuser:   user.IsSuperuser,
			Groups:        user.GroupNames(),
		})
		return c.Next()
	}
}

// ActorFrom returns the actor stored by Authenticate, or the anonymous
// actor when the middleware did not run.
func ActorFrom(c *fiber.Ctx) policy.Actor {
	if actor, ok := c.Locals(actorKey).(policy.Actor); ok {
		return actor
	}
	return policy.Anonymous()
}
