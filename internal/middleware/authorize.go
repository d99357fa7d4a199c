package middleware

import (
	"storefront/internal/apperrors"
	"storefront/internal/metrics"
	"storefront/internal/policy"

	"github.com/gofiber/fiber/v2"
)

// Authorizer checks actions against the policy table and counts denials.
type Authorizer struct {
	policy  *policy.Policy
	metrics *metrics.Metrics
}

// NewAuthorizer creates an Authorizer. m may be nil.
func NewAuthorizer(p *policy.Policy, m *metrics.Metrics) *Authorizer {
	return &Authorizer{policy: p, metrics: m}
}

// Check authorizes action for the request actor against resource.
func (a *Authorizer) Check(c *fiber.Ctx, action string, resource *policy.Resource) error {
	err := a.policy.Authorize(action, ActorFrom(c), resource)
	if err != nil {
		status := fiber.StatusForbidden
		if apperrors.KindOf(err) == apperrors.Unauthorized {
			status = fiber.StatusUnauthorized
		}
		a.metrics.Denied(action, status)
	}
	return err
}

// Require is Check as a route middleware, for actions that do not depend
// on the target object.
func (a *Authorizer) Require(action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.Check(c, action, nil); err != nil {
			return err
		}
		return c.Next()
	}
}
