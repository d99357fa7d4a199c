package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/policy"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// GroupHandler handles group and permission administration requests.
type GroupHandler struct {
	groups   *services.GroupService
	authz    *middleware.Authorizer
	validate *Validator
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groups *services.GroupService, authz *middleware.Authorizer, validate *Validator) *GroupHandler {
	return &GroupHandler{groups: groups, authz: authz, validate: validate}
}

// RegisterRoutes registers the /groups and /permissions routes.
func (h *GroupHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/permissions", h.authz.Require(policy.PermissionList), h.HandlePermissions)

	r := router.Group("/groups")
	r.Get("/", h.authz.Require(policy.GroupList), h.HandleList)
	r.Post("/", h.authz.Require(policy.GroupCreate), h.HandleCreate)
	r.Get("/:id<int>", h.authz.Require(policy.GroupRetrieve), h.HandleGet)
	r.Get("/:id<int>/users", h.authz.Require(policy.GroupRetrieve), h.HandleMembers)
	r.Put("/:id<int>", h.authz.Require(policy.GroupUpdate), h.HandleUpdate)
	r.Patch("/:id<int>", h.authz.Require(policy.GroupUpdate), h.HandleUpdate)
	r.Delete("/:id<int>", h.authz.Require(policy.GroupDestroy), h.HandleDelete)
}

func (h *GroupHandler) HandlePermissions(c *fiber.Ctx) error {
	perms, err := h.groups.Permissions(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(perms)
}

func (h *GroupHandler) HandleList(c *fiber.Ctx) error {
	groups, err := h.groups.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(groups)
}

func (h *GroupHandler) HandleGet(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "group")
	if err != nil {
		return err
	}
	group, err := h.groups.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(group)
}

// HandleMembers lists the users of a group.
func (h *GroupHandler) HandleMembers(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "group")
	if err != nil {
		return err
	}
	members, err := h.groups.Members(c.UserContext(), id)
	if err != nil {
		return err
	}
	out := make([]services.UserSummary, 0, len(members))
	for i := range members {
		out = append(out, services.NewUserSummary(&members[i]))
	}
	return c.JSON(out)
}

type createGroupRequest struct {
	Name        string `json:"name" validate:"required,max=150"`
	Permissions []uint `json:"permissions"`
}

// HandleCreate creates a group. Current superusers become its members.
func (h *GroupHandler) HandleCreate(c *fiber.Ctx) error {
	var req createGroupRequest
	if err := h.validate.Parse(c, &req); err != nil {
		return err
	}
	group, err := h.groups.Create(c.UserContext(), req.Name, req.Permissions)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

type updateGroupRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=150"`
	Permissions *[]uint `json:"permissions"`
}

// HandleUpdate renames a group and replaces its permissions when given.
func (h *GroupHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "group")
	if err != nil {
		return err
	}
	var req updateGroupRequest
	if err := h.validate.Parse(c, &req); err != nil {
		return err
	}
	var permissionIDs []uint
	if req.Permissions != nil {
		permissionIDs = append([]uint{}, *req.Permissions...)
	}
	group, err := h.groups.Update(c.UserContext(), id, req.Name, permissionIDs)
	if err != nil {
		return err
	}
	return c.JSON(group)
}

func (h *GroupHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "group")
	if err != nil {
		return err
	}
	if err := h.groups.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return noContent(c)
}
