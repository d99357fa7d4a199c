package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/policy"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for anonymous carts.
type CartHandler struct {
	service  *services.CartService
	authz    *middleware.Authorizer
	validate *Validator
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService, authz *middleware.Authorizer, validate *Validator) *CartHandler {
	return &CartHandler{service: service, authz: authz, validate: validate}
}

// RegisterRoutes registers the /carts routes.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	r := router.Group("/carts")
	r.Post("/", h.authz.Require(policy.CartCreate), h.HandleCreate)
	r.Get("/:id", h.authz.Require(policy.CartRetrieve), h.HandleGet)
	r.Delete("/:id", h.authz.Require(policy.CartDestroy), h.HandleDelete)
	r.Post("/:id/items", h.authz.Require(policy.CartItemAdd), h.HandleAddItem)
	r.Patch("/:id/items/:item_id<int>", h.authz.Require(policy.CartItemUpdate), h.HandleUpdateItem)
	r.Delete("/:id/items/:item_id<int>", h.authz.Require(policy.CartItemRemove), h.HandleRemoveItem)
}

func (h *CartHandler) HandleCreate(c *fiber.Ctx) error {
	cart, err := h.service.CreateCart(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(services.NewCartView(cart))
}

// HandleGet returns a cart with line and grand totals.
func (h *CartHandler) HandleGet(c *fiber.Ctx) error {
	cart, err := h.service.GetCart(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(services.NewCartView(cart))
}

func (h *CartHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.DeleteCart(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return noContent(c)
}

type addItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required"`
}

// HandleAddItem adds a product to a cart, merging with an existing line.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req addItemRequest
	if err := h.validate.Parse(c, &req); err != nil {
		return err
	}
	item, err := h.service.AddItem(c.UserContext(), c.Params("id"), req.ProductID, req.Quantity)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(services.NewCartItemView(item))
}

type updateItemRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	itemID, err := paramID(c, "item_id", "cart item")
	if err != nil {
		return err
	}
	var req updateItemRequest
	if err := h.validate.Parse(c, &req); err != nil {
		return err
	}
	item, err := h.service.UpdateItem(c.UserContext(), c.Params("id"), itemID, req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(services.NewCartItemView(item))
}

func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	itemID, err := paramID(c, "item_id", "cart item")
	if err != nil {
		return err
	}
	if err := h.service.RemoveItem(c.UserContext(), c.Params("id"), itemID); err != nil {
		return err
	}
	return noContent(c)
}
