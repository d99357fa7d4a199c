package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/policy"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AddressHandler handles HTTP requests for the caller's addresses.
type AddressHandler struct {
	service  *services.AddressService
	authz    *middleware.Authorizer
	validate *Validator
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(service *services.AddressService, authz *middleware.Authorizer, validate *Validator) *AddressHandler {
	return &AddressHandler{service: service, authz: authz, validate: validate}
}

// RegisterRoutes registers the /addresses routes.
func (h *AddressHandler) RegisterRoutes(router fiber.Router) {
	r := router.Group("/addresses")
	r.Get("/", h.authz.Require(policy.AddressList), h.HandleList)
	r.Post("/", h.authz.Require(policy.AddressCreate), h.HandleCreate)
	r.Get("/:id<int>", h.HandleGet)
	r.Put("/:id<int>", h.HandleUpdate)
	r.Patch("/:id<int>", h.HandleUpdate)
	r.Delete("/:id<int>", h.HandleDelete)
}

// owned loads an address and checks action against its owner.
func (h *AddressHandler) owned(c *fiber.Ctx, action string) (*models.Address, error) {
	id, err := paramID(c, "id", "address")
	if err != nil {
		return nil, err
	}
	// anonymous callers are rejected before the lookup
	if !middleware.ActorFrom(c).Authenticated {
		return nil, h.authz.Check(c, action, nil)
	}
	address, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return nil, err
	}
	if err := h.authz.Check(c, action, policy.Owned(address.UserID)); err != nil {
		return nil, err
	}
	return address, nil
}

func (h *AddressHandler) HandleList(c *fiber.Ctx) error {
	addresses, err := h.service.List(c.UserContext(), middleware.ActorFrom(c).UserID)
	if err != nil {
		return err
	}
	return c.JSON(addresses)
}

type addressRequest struct {
	Province *string `json:"province" validate:"required,min=1,max=255"`
	City     *string `json:"city" validate:"required,min=1,max=255"`
	Street   *string `json:"street" validate:"required,min=1,max=255"`
}

type addressPatchRequest struct {
	Province *string `json:"province" validate:"omitempty,min=1,max=255"`
	City     *string `json:"city" validate:"omitempty,min=1,max=255"`
	Street   *string `json:"street" validate:"omitempty,min=1,max=255"`
}

func (r addressPatchRequest) input() services.AddressInput {
	return services.AddressInput{Province: r.Province, City: r.City, Street: r.Street}
}

func (h *AddressHandler) HandleCreate(c *fiber.Ctx) error {
	var req addressRequest
	if err := h.validate.Parse(c, &req); err != nil {
		return err
	}
	address, err := h.service.Create(c.UserContext(), middleware.ActorFrom(c).UserID, addressPatchRequest(req).input())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(address)
}

func (h *AddressHandler) HandleGet(c *fiber.Ctx) error {
	address, err := h.owned(c, policy.AddressRetrieve)
	if err != nil {
		return err
	}
	return c.JSON(address)
}

func (h *AddressHandler) HandleUpdate(c *fiber.Ctx) error {
	address, err := h.owned(c, policy.AddressUpdate)
	if err != nil {
		return err
	}
	var in services.AddressInput
	if c.Method() == fiber.MethodPut {
		var req addressRequest
		if err := h.validate.Parse(c, &req); err != nil {
			return err
		}
		in = addressPatchRequest(req).input()
	} else {
		var req addressPatchRequest
		if err := h.validate.Parse(c, &req); err != nil {
			return err
		}
		in = req.input()
	}
	updated, err := h.service.Update(c.UserContext(), address, in)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *AddressHandler) HandleDelete(c *fiber.Ctx) error {
	address, err := h.owned(c, policy.AddressDestroy)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), address.ID); err != nil {
		return err
	}
	return noContent(c)
}
