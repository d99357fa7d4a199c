package handlers

import (
	"net/url"
	"strconv"
	"time"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/policy"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	authz    *middleware.Authorizer
	validate *Validator
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, authz *middleware.Authorizer, validate *Validator) *ProductHandler {
	return &ProductHandler{service: service, authz: authz, validate: validate}
}

// RegisterRoutes registers the /products routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	r := router.Group("/products")
	r.Get("/", h.authz.Require(policy.ProductList), h.HandleList)
	r.Post("/", h.authz.Require(policy.ProductCreate), h.HandleCreate)
	r.Get("/:id<int>", h.authz.Require(policy.ProductRetrieve), h.HandleGet)
	r.Put("/:id<int>", h.authz.Require(policy.ProductUpdate), h.HandleUpdate)
	r.Patch("/:id<int>", h.authz.Require(policy.ProductUpdate), h.HandleUpdate)
	r.Delete("/:id<int>", h.authz.Require(policy.ProductDestroy), h.HandleDelete)
}

// ProductView is the representation of a product with its category title.
type ProductView struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	CategoryID       uint      `json:"category_id"`
	Slug             string    `json:"slug"`
	Description      string    `json:"description"`
	Price            float64   `json:"price"`
	Inventory        int       `json:"inventory"`
	DatetimeCreated  time.Time `json:"datetime_created"`
	DatetimeModified time.Time `json:"datetime_modified"`
}

func newProductView(p *models.Product) ProductView {
	return ProductView{
		ID:               p.ID,
		Name:             p.Name,
		Category:         p.Category.Title,
		CategoryID:       p.CategoryID,
		Slug:             p.Slug,
		Description:      p.Description,
		Price:            p.Price,
		Inventory:        p.Inventory,
		DatetimeCreated:  p.CreatedAt,
		DatetimeModified: p.UpdatedAt,
	}
}

// ProductListResponse is one page of products.
type ProductListResponse struct {
	Count    int64         `json:"count"`
	Next     *string       `json:"next"`
	Previous *string       `json:"previous"`
	Results  []ProductView `json:"results"`
}

// pageURL returns the current URL with the page query parameter replaced.
// Page 1 is rendered without the parameter.
func pageURL(c *fiber.Ctx, page int) *string {
	query := url.Values{}
	for k, v := range c.Queries() {
		query.Set(k, v)
	}
	query.Del("page")
	if page > 1 {
		query.Set("page", strconv.Itoa(page))
	}
	link := c.BaseURL() + c.Path()
	if encoded := query.Encode(); encoded != "" {
		link += "?" + encoded
	}
	return &link
}

// HandleList lists products with search, ordering and page-number pagination.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	page := 1
	if raw := c.Query("page"); raw != "" {
		// anything unparsable becomes 0 and is rejected as an invalid page
		page, _ = strconv.Atoi(raw)
	}
	result, err := h.service.ListProducts(c.UserContext(), c.Query("search"), c.Query("ordering"), page)
	if err != nil {
		return err
	}

	resp := ProductListResponse{Count: result.Count, Results: make([]ProductView, 0, len(result.Products))}
	for i := range result.Products {
		resp.Results = append(resp.Results, newProductView(&result.Products[i]))
	}
	if result.HasNext {
		resp.Next = pageURL(c, page+1)
	}
	if result.HasPrev {
		resp.Previous = pageURL(c, page-1)
	}
	return c.JSON(resp)
}

func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "product")
	if err != nil {
		return err
	}
	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(newProductView(product))
}

type productRequest struct {
	Name        *string  `json:"name" validate:"required,min=1,max=255"`
	CategoryID  *uint    `json:"category_id" validate:"required"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"required,gt=0,lt=10000,price"`
	Inventory   *int     `json:"inventory" validate:"required,gte=0"`
}

type productPatchRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=255"`
	CategoryID  *uint    `json:"category_id"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0,lt=10000,price"`
	Inventory   *int     `json:"inventory" validate:"omitempty,gte=0"`
}

func (r productPatchRequest) input() services.ProductInput {
	return services.ProductInput{
		Name:        r.Name,
		CategoryID:  r.CategoryID,
		Description: r.Description,
		Price:       r.Price,
		Inventory:   r.Inventory,
	}
}

// HandleCreate creates a product; its slug is derived from the name.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var req productRequest
	if err := h.validate.Parse(c, &req); err != nil {
		return err
	}
	product, err := h.service.CreateProduct(c.UserContext(), productPatchRequest(req).input())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(newProductView(product))
}

// HandleUpdate replaces (PUT) or patches (PATCH) a product.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "product")
	if err != nil {
		return err
	}
	var in services.ProductInput
	if c.Method() == fiber.MethodPut {
		var req productRequest
		if err := h.validate.Parse(c, &req); err != nil {
			return err
		}
		in = productPatchRequest(req).input()
	} else {
		var req productPatchRequest
		if err := h.validate.Parse(c, &req); err != nil {
			return err
		}
		in = req.input()
	}
	product, err := h.service.UpdateProduct(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(newProductView(product))
}

func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "product")
	if err != nil {
		return err
	}
	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return err
	}
	return noContent(c)
}
