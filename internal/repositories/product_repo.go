package repositories

import (
	"context"

	"storefront/internal/models"
)

// ProductQuery filters, orders and pages the product list.
type ProductQuery struct {
	Search   string
	Ordering string // id, -id, inventory, -inventory
	Offset   int
	Limit    int
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(ctx context.Context, q ProductQuery) ([]models.Product, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
}

// CategoryWithCount is a category and the number of its products.
type CategoryWithCount struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	NumOfProducts int64  `json:"num_of_products"`
}

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	List(ctx context.Context) ([]CategoryWithCount, error)
	GetByID(ctx context.Context, id uint) (*CategoryWithCount, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uint) error
}
