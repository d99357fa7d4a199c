package repositories

import (
	"context"

	"storefront/internal/models"
)

// GroupRepository defines the interface for group and permission data access.
type GroupRepository interface {
	List(ctx context.Context) ([]models.Group, error)
	GetByID(ctx context.Context, id uint) (*models.Group, error)
	Create(ctx context.Context, name string, permissionIDs []uint) (*models.Group, error)
	Update(ctx context.Context, id uint, name *string, permissionIDs []uint, replacePermissions bool) (*models.Group, error)
	Delete(ctx context.Context, id uint) error
	AddSuperusers(ctx context.Context, id uint) error
	Members(ctx context.Context, id uint) ([]models.User, error)
	ListPermissions(ctx context.Context) ([]models.Permission, error)
}
