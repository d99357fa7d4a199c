package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/policy"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service  *services.CategoryService
	authz    *middleware.Authorizer
	validate *Validator
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService, authz *middleware.Authorizer, validate *Validator) *CategoryHandler {
	return &CategoryHandler{service: service, authz: authz, validate: validate}
}

// RegisterRoutes registers the /categories routes.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	r := router.Group("/categories")
	r.Get("/", h.authz.Require(policy.CategoryList), h.HandleList)
	r.Post("/", h.authz.Require(policy.CategoryCreate), h.HandleCreate)
	r.Get("/:id<int>", h.authz.Require(policy.CategoryRetrieve), h.HandleGet)
	r.Put("/:id<int>", h.authz.Require(policy.CategoryUpdate), h.HandleUpdate)
	r.Patch("/:id<int>", h.authz.Require(policy.CategoryUpdate), h.HandleUpdate)
	r.Delete("/:id<int>", h.authz.Require(policy.CategoryDestroy), h.HandleDelete)
}

func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	categories, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) HandleGet(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "category")
	if err != nil {
		return err
	}
	category, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(category)
}

type createCategoryRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=255"`
	Description string `json:"description" validate:"max=500"`
}

func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	var req createCategoryRequest
	if err := h.validate.Parse(c, &req); err != nil {
		return err
	}
	category, err := h.service.Create(c.UserContext(), req.Title, req.Description)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

type updateCategoryRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=3,max=255"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

func (h *CategoryHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "category")
	if err != nil {
		return err
	}
	var req updateCategoryRequest
	if err := h.validate.Parse(c, &req); err != nil {
		return err
	}
	category, err := h.service.Update(c.UserContext(), id, req.Title, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(category)
}

// HandleDelete removes a category; one that still has products answers 409.
func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "category")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return noContent(c)
}
