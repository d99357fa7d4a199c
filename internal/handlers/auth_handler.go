package handlers

import (
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for session tokens.
type AuthHandler struct {
	authService *services.AuthService
	validate    *Validator
	limit       fiber.Handler
}

// NewAuthHandler creates a new AuthHandler. limit guards the login route.
func NewAuthHandler(authService *services.AuthService, validate *Validator, limit fiber.Handler) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validate,
		limit:       limit,
	}
}

// RegisterRoutes registers the token routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	jwtRoutes := router.Group("/jwt")
	jwtRoutes.Post("/create", h.limit, h.HandleCreate)
	jwtRoutes.Post("/refresh", h.HandleRefresh)
	jwtRoutes.Post("/verify", h.HandleVerify)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleCreate exchanges credentials for an access/refresh pair.
func (h *AuthHandler) HandleCreate(c *fiber.Ctx) error {
	var req LoginRequest
	if err := h.validate.Parse(c, &req); err != nil {
		return err
	}
	pair, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(pair)
}

type refreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// HandleRefresh issues a new access token from a refresh token.
func (h *AuthHandler) HandleRefresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := h.validate.Parse(c, &req); err != nil {
		return err
	}
	access, err := h.authService.Refresh(c.UserContext(), req.Refresh)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"access": access})
}

type verifyRequest struct {
	Token string `json:"token" validate:"required"`
}

// HandleVerify reports whether a token is valid.
func (h *AuthHandler) HandleVerify(c *fiber.Ctx) error {
	var req verifyRequest
	if err := h.validate.Parse(c, &req); err != nil {
		return err
	}
	if err := h.authService.Verify(req.Token); err != nil {
		return err
	}
	return c.JSON(fiber.Map{})
}
