package repositories

import (
	"context"
	"time"

	"storefront/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetActiveByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, user *models.User, hash string) error
	TouchLastLogin(ctx context.Context, user *models.User, at time.Time) error
	SetGroups(ctx context.Context, userID uint, groupIDs []uint) (*models.User, error)
	Delete(ctx context.Context, id uint) error
}
