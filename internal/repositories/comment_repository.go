package repositories

import (
	"context"
	"fmt"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines the interface for product comment data access.
type CommentRepository interface {
	ListApproved(ctx context.Context, productID uint) ([]models.Comment, error)
	GetByID(ctx context.Context, productID, id uint) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, productID, id uint) error
}

// GORMCommentRepository is a GORM implementation of CommentRepository.
type GORMCommentRepository struct {
	db *gorm.DB
}

// NewGORMCommentRepository creates a new instance of GORMCommentRepository.
func NewGORMCommentRepository(db *gorm.DB) *GORMCommentRepository {
	return &GORMCommentRepository{db: db}
}

// ListApproved returns the approved comments of a product, oldest first.
func (r *GORMCommentRepository) ListApproved(ctx context.Context, productID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("product_id = ? AND status = ?", productID, models.CommentApproved).
		Order("id").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments of product %d: %w", productID, err)
	}
	return comments, nil
}

func (r *GORMCommentRepository) GetByID(ctx context.Context, productID, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("product_id = ?", productID).
		First(&comment, id).Error
	if err != nil {
		return nil, translate(err, "comment", id)
	}
	return &comment, nil
}

func (r *GORMCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.Status == "" {
		comment.Status = models.CommentApproved
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error; err != nil {
		return translate(err, "comment", comment.ID)
	}
	return nil
}

func (r *GORMCommentRepository) Delete(ctx context.Context, productID, id uint) error {
	res := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete comment %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFound("comment", id)
	}
	return nil
}
