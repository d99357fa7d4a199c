package services

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/sirupsen/logrus"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	categories repositories.CategoryRepository
	logger     logrus.FieldLogger
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categories repositories.CategoryRepository, logger logrus.FieldLogger) *CategoryService {
	return &CategoryService{categories: categories, logger: logger}
}

func (s *CategoryService) List(ctx context.Context) ([]repositories.CategoryWithCount, error) {
	return s.categories.List(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*repositories.CategoryWithCount, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, title, description string) (*repositories.CategoryWithCount, error) {
	category := &models.Category{Title: title, Description: description}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return &repositories.CategoryWithCount{ID: category.ID, Title: category.Title, Description: category.Description}, nil
}

// Update changes the non-nil fields of a category.
func (s *CategoryService) Update(ctx context.Context, id uint, title, description *string) (*repositories.CategoryWithCount, error) {
	current, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	category := &models.Category{ID: id, Title: current.Title, Description: current.Description}
	if title != nil {
		category.Title = *title
	}
	if description != nil {
		category.Description = *description
	}
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	current.Title, current.Description = category.Title, category.Description
	return current, nil
}

// Delete removes a category without products.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithField("category_id", id).Info("category deleted")
	return nil
}
