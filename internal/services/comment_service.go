package services

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/sirupsen/logrus"
)

// CommentService handles product comments.
type CommentService struct {
	comments repositories.CommentRepository
	products repositories.ProductRepository
	logger   logrus.FieldLogger
}

// NewCommentService creates a new CommentService.
func NewCommentService(comments repositories.CommentRepository, products repositories.ProductRepository, logger logrus.FieldLogger) *CommentService {
	return &CommentService{comments: comments, products: products, logger: logger}
}

// List returns the approved comments of an existing product.
func (s *CommentService) List(ctx context.Context, productID uint) ([]models.Comment, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.comments.ListApproved(ctx, productID)
}

func (s *CommentService) Get(ctx context.Context, productID, id uint) (*models.Comment, error) {
	return s.comments.GetByID(ctx, productID, id)
}

// Create adds a comment written by userID.
func (s *CommentService) Create(ctx context.Context, productID, userID uint, body string) (*models.Comment, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	comment := &models.Comment{ProductID: productID, UserID: userID, Body: body, Status: models.CommentApproved}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.comments.GetByID(ctx, productID, comment.ID)
}

func (s *CommentService) Delete(ctx context.Context, productID, id uint) error {
	if err := s.comments.Delete(ctx, productID, id); err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{"product_id": productID, "comment_id": id}).Info("comment deleted")
	return nil
}
