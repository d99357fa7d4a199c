package services

import (
	"context"
	"fmt"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"
)

// ProductPageSize is the number of products per list page.
const ProductPageSize = 10

// ProductInput is a full product payload. Nil fields of an update are left
// unchanged.
type ProductInput struct {
	Name        *string
	CategoryID  *uint
	Description *string
	Price       *float64
	Inventory   *int
}

// ProductPage is one page of the product list.
type ProductPage struct {
	Count    int64
	Page     int
	HasNext  bool
	HasPrev  bool
	Products []models.Product
}

// ProductService handles business logic related to products.
type ProductService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	logger       logrus.FieldLogger
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository, logger logrus.FieldLogger) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// ListProducts returns one page of products matching search, in the given order.
func (s *ProductService) ListProducts(ctx context.Context, search, ordering string, page int) (*ProductPage, error) {
	if page < 1 {
		return nil, apperrors.Wrap(apperrors.NotFound, "Invalid page.", nil)
	}
	products, total, err := s.productRepo.List(ctx, repositories.ProductQuery{
		Search:   search,
		Ordering: ordering,
		Offset:   (page - 1) * ProductPageSize,
		Limit:    ProductPageSize,
	})
	if err != nil {
		return nil, err
	}
	if page > 1 && len(products) == 0 {
		return nil, apperrors.Wrap(apperrors.NotFound, "Invalid page.", nil)
	}
	return &ProductPage{
		Count:    total,
		Page:     page,
		HasNext:  int64(page*ProductPageSize) < total,
		HasPrev:  page > 1,
		Products: products,
	}, nil
}

// GetProductByID retrieves a single product with its category.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

// CreateProduct creates a new product. The slug is derived from the name.
func (s *ProductService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	product := &models.Product{}
	if err := s.apply(ctx, product, in); err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"product_id": product.ID, "slug": product.Slug}).Info("product created")
	return s.productRepo.GetByID(ctx, product.ID)
}

// UpdateProduct changes the given fields of a product and refreshes its slug.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, in ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, product, in); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(ctx, id)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	return s.productRepo.Delete(ctx, id)
}

func (s *ProductService) apply(ctx context.Context, product *models.Product, in ProductInput) error {
	if in.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *in.CategoryID); err != nil {
			if apperrors.KindOf(err) == apperrors.NotFound {
				return apperrors.FieldError("category", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", *in.CategoryID))
			}
			return err
		}
		product.CategoryID = *in.CategoryID
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Inventory != nil {
		product.Inventory = *in.Inventory
	}
	product.Slug = slug.Make(product.Name)
	return nil
}
