package handlers

import (
	"time"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/policy"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CommentHandler handles HTTP requests for product comments.
type CommentHandler struct {
	service  *services.CommentService
	authz    *middleware.Authorizer
	validate *Validator
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(service *services.CommentService, authz *middleware.Authorizer, validate *Validator) *CommentHandler {
	return &CommentHandler{service: service, authz: authz, validate: validate}
}

// RegisterRoutes registers the comment routes nested under a product.
func (h *CommentHandler) RegisterRoutes(router fiber.Router) {
	r := router.Group("/products/:product_id<int>/comments")
	r.Get("/", h.authz.Require(policy.CommentList), h.HandleList)
	r.Post("/", h.authz.Require(policy.CommentCreate), h.HandleCreate)
	r.Delete("/:id<int>", h.HandleDelete)
}

type commentView struct {
	ID              uint      `json:"id"`
	UserID          uint      `json:"user_id"`
	Name            string    `json:"name"`
	Body            string    `json:"body"`
	DatetimeCreated time.Time `json:"datetime_created"`
}

func newCommentView(comment *models.Comment) commentView {
	return commentView{
		ID:              comment.ID,
		UserID:          comment.UserID,
		Name:            comment.User.FullName(),
		Body:            comment.Body,
		DatetimeCreated: comment.CreatedAt,
	}
}

// HandleList lists the approved comments of a product.
func (h *CommentHandler) HandleList(c *fiber.Ctx) error {
	productID, err := paramID(c, "product_id", "product")
	if err != nil {
		return err
	}
	comments, err := h.service.List(c.UserContext(), productID)
	if err != nil {
		return err
	}
	out := make([]commentView, 0, len(comments))
	for i := range comments {
		out = append(out, newCommentView(&comments[i]))
	}
	return c.JSON(out)
}

type commentRequest struct {
	Body string `json:"body" validate:"required"`
}

// HandleCreate adds a comment authored by the caller.
func (h *CommentHandler) HandleCreate(c *fiber.Ctx) error {
	productID, err := paramID(c, "product_id", "product")
	if err != nil {
		return err
	}
	var req commentRequest
	if err := h.validate.Parse(c, &req); err != nil {
		return err
	}
	comment, err := h.service.Create(c.UserContext(), productID, middleware.ActorFrom(c).UserID, req.Body)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(newCommentView(comment))
}

// HandleDelete removes a comment. Only its author or a superuser may.
func (h *CommentHandler) HandleDelete(c *fiber.Ctx) error {
	productID, err := paramID(c, "product_id", "product")
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "comment")
	if err != nil {
		return err
	}
	if !middleware.ActorFrom(c).Authenticated {
		return h.authz.Check(c, policy.CommentDestroy, nil)
	}
	comment, err := h.service.Get(c.UserContext(), productID, id)
	if err != nil {
		return err
	}
	if err := h.authz.Check(c, policy.CommentDestroy, policy.Owned(comment.UserID)); err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), productID, id); err != nil {
		return err
	}
	return noContent(c)
}
