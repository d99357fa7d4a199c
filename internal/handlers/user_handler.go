package handlers

import (
	"time"

	"storefront/internal/middleware"
	"storefront/internal/policy"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles account and user administration requests.
type UserHandler struct {
	users    *services.UserService
	resets   *services.PasswordResetService
	authz    *middleware.Authorizer
	validate *Validator
	limit    fiber.Handler
}

// NewUserHandler creates a new UserHandler. limit guards the password
// reset routes.
func NewUserHandler(users *services.UserService, resets *services.PasswordResetService, authz *middleware.Authorizer, validate *Validator, limit fiber.Handler) *UserHandler {
	return &UserHandler{users: users, resets: resets, authz: authz, validate: validate, limit: limit}
}

// RegisterRoutes registers the /users routes.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	r := router.Group("/users")
	r.Post("/", h.authz.Require(policy.UserCreate), h.HandleSignup)
	r.Get("/", h.authz.Require(policy.UserList), h.HandleList)

	me := h.authz.Require(policy.UserMe)
	r.Get("/me", me, h.HandleGetMe)
	r.Put("/me", me, h.HandleUpdateMe)
	r.Patch("/me", me, h.HandleUpdateMe)
	r.Delete("/me", me, h.HandleDeleteMe)

	r.Post("/change_password", h.authz.Require(policy.UserChangePassword), h.HandleChangePassword)
	r.Post("/change_email", h.authz.Require(policy.UserChangeEmail), h.HandleChangeEmail)
	r.Post("/reset_password", h.limit, h.authz.Require(policy.UserResetPassword), h.HandleResetPassword)
	r.Post("/reset_password_confirm", h.limit, h.authz.Require(policy.UserResetPasswordConfirm), h.HandleResetPasswordConfirm)

	r.Get("/:id<int>", h.authz.Require(policy.UserRetrieve), h.HandleRetrieve)
	r.Put("/:id<int>", h.authz.Require(policy.UserUpdate), h.HandleSetGroups)
	r.Patch("/:id<int>", h.authz.Require(policy.UserUpdate), h.HandleSetGroups)
	r.Delete("/:id<int>", h.authz.Require(policy.UserDestroy), h.HandleDeactivate)
}

type signupRequest struct {
	Email      string `json:"email" validate:"required,email,max=255"`
	Password   string `json:"password" validate:"required"`
	RePassword string `json:"re_password" validate:"required"`
}

// HandleSignup registers a new account.
func (h *UserHandler) HandleSignup(c *fiber.Ctx) error {
	var req signupRequest
	if err := h.validate.Parse(c, &req); err != nil {
		return err
	}
	if _, err := h.users.Signup(c.UserContext(), services.SignupInput{
		Email:      req.Email,
		Password:   req.Password,
		RePassword: req.RePassword,
	}); err != nil {
		return err
	}
	return noContent(c)
}

// HandleList lists every user, superusers included.
func (h *UserHandler) HandleList(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]services.UserSummary, 0, len(users))
	for i := range users {
		out = append(out, services.NewUserSummary(&users[i]))
	}
	return c.JSON(out)
}

func (h *UserHandler) HandleGetMe(c *fiber.Ctx) error {
	user, err := h.users.Me(c.UserContext(), middleware.ActorFrom(c).UserID)
	if err != nil {
		return err
	}
	return c.JSON(services.NewProfileView(user))
}

type profileRequest struct {
	FirstName      *string `json:"first_name" validate:"omitempty,max=255"`
	LastName       *string `json:"last_name" validate:"omitempty,max=255"`
	BirthDate      *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	NationalNumber *string `json:"national_number" validate:"omitempty,nationalnumber"`
}

// HandleUpdateMe changes the caller's profile fields.
func (h *UserHandler) HandleUpdateMe(c *fiber.Ctx) error {
	var req profileRequest
	if err := h.validate.Parse(c, &req); err != nil {
		return err
	}
	in := services.ProfileInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		NationalNumber: req.NationalNumber,
	}
	if req.BirthDate != nil {
		date, err := time.Parse(time.DateOnly, *req.BirthDate)
		if err != nil {
			return err
		}
		in.BirthDate = &date
	}
	if _, err := h.users.UpdateMe(c.UserContext(), middleware.ActorFrom(c).UserID, in); err != nil {
		return err
	}
	return noContent(c)
}

type currentPasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
}

// HandleDeleteMe deletes the caller's account after a password check.
func (h *UserHandler) HandleDeleteMe(c *fiber.Ctx) error {
	var req currentPasswordRequest
	if err := h.validate.Parse(c, &req); err != nil {
		return err
	}
	if err := h.users.DeleteMe(c.UserContext(), middleware.ActorFrom(c).UserID, req.CurrentPassword); err != nil {
		return err
	}
	return noContent(c)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
	ReNewPassword   string `json:"re_new_password" validate:"required"`
}

func (h *UserHandler) HandleChangePassword(c *fiber.Ctx) error {
	var req changePasswordRequest
	if err := h.validate.Parse(c, &req); err != nil {
		return err
	}
	if err := h.users.ChangePassword(c.UserContext(), middleware.ActorFrom(c).UserID, services.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ReNewPassword:   req.ReNewPassword,
	}); err != nil {
		return err
	}
	return noContent(c)
}

type changeEmailRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewEmail        string `json:"new_email" validate:"required,email,max=255"`
}

func (h *UserHandler) HandleChangeEmail(c *fiber.Ctx) error {
	var req changeEmailRequest
	if err := h.validate.Parse(c, &req); err != nil {
		return err
	}
	if err := h.users.ChangeEmail(c.UserContext(), middleware.ActorFrom(c).UserID, req.CurrentPassword, req.NewEmail); err != nil {
		return err
	}
	return noContent(c)
}

type resetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleResetPassword answers 204 whether or not the email is registered.
func (h *UserHandler) HandleResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := h.validate.Parse(c, &req); err != nil {
		return err
	}
	if err := h.resets.RequestReset(c.UserContext(), req.Email); err != nil {
		return err
	}
	return noContent(c)
}

type resetPasswordConfirmRequest struct {
	UID           string `json:"uid" validate:"required"`
	Token         string `json:"token" validate:"required"`
	NewPassword   string `json:"new_password" validate:"required"`
	ReNewPassword string `json:"re_new_password" validate:"required"`
}

func (h *UserHandler) HandleResetPasswordConfirm(c *fiber.Ctx) error {
	var req resetPasswordConfirmRequest
	if err := h.validate.Parse(c, &req); err != nil {
		return err
	}
	if err := h.resets.ConfirmReset(c.UserContext(), services.ConfirmResetInput{
		UID:           req.UID,
		Token:         req.Token,
		NewPassword:   req.NewPassword,
		ReNewPassword: req.ReNewPassword,
	}); err != nil {
		return err
	}
	return noContent(c)
}

func (h *UserHandler) HandleRetrieve(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "user")
	if err != nil {
		return err
	}
	user, err := h.users.Retrieve(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(services.NewUserSummary(user))
}

type groupRef struct {
	ID uint `json:"id" validate:"required"`
}

type setGroupsRequest struct {
	Groups []groupRef `json:"groups" validate:"dive"`
}

// HandleSetGroups replaces the group memberships of a user.
func (h *UserHandler) HandleSetGroups(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "user")
	if err != nil {
		return err
	}
	var req setGroupsRequest
	if err := h.validate.Parse(c, &req); err != nil {
		return err
	}
	ids := make([]uint, 0, len(req.Groups))
	for _, g := range req.Groups {
		ids = append(ids, g.ID)
	}
	if _, err := h.users.SetGroups(c.UserContext(), id, ids); err != nil {
		return err
	}
	return noContent(c)
}

// HandleDeactivate disables a user account. Rows are never removed here.
func (h *UserHandler) HandleDeactivate(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "user")
	if err != nil {
		return err
	}
	if err := h.users.Deactivate(c.UserContext(), id); err != nil {
		return err
	}
	return noContent(c)
}
