package repositories

import (
	"context"
	"fmt"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

func (r *GORMCategoryRepository) withCounts(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("categories").
		Select("categories.id, categories.title, categories.description, (SELECT COUNT(*) FROM products WHERE products.category_id = categories.id) AS num_of_products")
}

// List returns all categories with their product counts.
func (r *GORMCategoryRepository) List(ctx context.Context) ([]CategoryWithCount, error) {
	var categories []CategoryWithCount
	if err := r.withCounts(ctx).Order("categories.id").Scan(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves one category with its product count.
func (r *GORMCategoryRepository) GetByID(ctx context.Context, id uint) (*CategoryWithCount, error) {
	var categories []CategoryWithCount
	if err := r.withCounts(ctx).Where("categories.id = ?", id).Limit(1).Scan(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get category %d: %w", id, err)
	}
	if len(categories) == 0 {
		return nil, apperrors.NewNotFound("category", id)
	}
	return &categories[0], nil
}

// Create creates a new category.
func (r *GORMCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// Update saves an existing category.
func (r *GORMCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	res := r.db.WithContext(ctx).Model(category).Select("title", "description").Updates(category)
	if res.Error != nil {
		return fmt.Errorf("failed to update category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFound("category", category.ID)
	}
	return nil
}

// Delete removes a category that has no products. The product check and
// the delete run in one transaction.
func (r *GORMCategoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			return translate(err, "category", id)
		}

		var products int64
		if err := tx.Model(&models.Product{}).Where("category_id = ?", id).Count(&products).Error; err != nil {
			return fmt.Errorf("failed to count products of category %d: %w", id, err)
		}
		if products > 0 {
			return apperrors.NewConflict("There is some products relating this category. Please remove them first")
		}

		if err := tx.Delete(&category).Error; err != nil {
			return translate(err, "category", id)
		}
		return nil
	})
}
