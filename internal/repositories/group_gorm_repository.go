package repositories

import (
	"context"
	"fmt"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMGroupRepository is a GORM implementation of GroupRepository.
type GORMGroupRepository struct {
	db *gorm.DB
}

// NewGORMGroupRepository creates a new instance of GORMGroupRepository.
func NewGORMGroupRepository(db *gorm.DB) *GORMGroupRepository {
	return &GORMGroupRepository{db: db}
}

// List returns all groups with their permissions, ordered by id.
func (r *GORMGroupRepository) List(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	if err := r.db.WithContext(ctx).Preload("Permissions").Order("id").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// GetByID retrieves a group with its permissions.
func (r *GORMGroupRepository) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).Preload("Permissions").First(&group, id).Error; err != nil {
		return nil, translate(err, "group", id)
	}
	return &group, nil
}

// Create inserts the group, attaches its permissions and adds every
// existing superuser as a member, all in one transaction.
func (r *GORMGroupRepository) Create(ctx context.Context, name string, permissionIDs []uint) (*models.Group, error) {
	group := models.Group{Name: name}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&group).Error; err != nil {
			return translate(err, "group", name)
		}

		perms, err := loadPermissions(tx, permissionIDs)
		if err != nil {
			return err
		}
		if len(perms) > 0 {
			if err := tx.Model(&group).Association("Permissions").Append(perms); err != nil {
				return fmt.Errorf("failed to attach permissions to group %d: %w", group.ID, err)
			}
		}
		group.Permissions = perms

		return addSuperusers(tx, &group)
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// addSuperusers makes every superuser a member of group.
func addSuperusers(tx *gorm.DB, group *models.Group) error {
	var superusers []models.User
	if err := tx.Where("is_superuser = ?", true).Find(&superusers).Error; err != nil {
		return fmt.Errorf("failed to load superusers: %w", err)
	}
	if len(superusers) == 0 {
		return nil
	}
	if err := tx.Model(group).Association("Users").Append(superusers); err != nil {
		return fmt.Errorf("failed to add superusers to group %d: %w", group.ID, err)
	}
	return nil
}

// AddSuperusers makes every current superuser a member of an existing
// group. Existing memberships are left untouched.
func (r *GORMGroupRepository) AddSuperusers(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var group models.Group
		if err := tx.First(&group, id).Error; err != nil {
			return translate(err, "group", id)
		}
		return addSuperusers(tx, &group)
	})
}

// Update renames the group and, when replacePermissions is set, replaces
// its permission set.
func (r *GORMGroupRepository) Update(ctx context.Context, id uint, name *string, permissionIDs []uint, replacePermissions bool) (*models.Group, error) {
	var group models.Group
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&group, id).Error; err != nil {
			return translate(err, "group", id)
		}
		if name != nil && *name != group.Name {
			if err := tx.Model(&group).Update("name", *name).Error; err != nil {
				return translate(err, "group", *name)
			}
		}
		if replacePermissions {
			perms, err := loadPermissions(tx, permissionIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&group).Association("Permissions").Replace(perms); err != nil {
				return fmt.Errorf("failed to replace permissions of group %d: %w", id, err)
			}
		}
		return tx.Preload("Permissions").First(&group, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// Delete removes a group unless it still has members other than the
// superusers, who belong to every group.
func (r *GORMGroupRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var group models.Group
		if err := tx.First(&group, id).Error; err != nil {
			return translate(err, "group", id)
		}

		var members int64
		err := tx.Table("user_groups").
			Joins("JOIN users ON users.id = user_groups.user_id").
			Where("user_groups.group_id = ? AND users.is_superuser = ?", id, false).
			Count(&members).Error
		if err != nil {
			return fmt.Errorf("failed to count members of group %d: %w", id, err)
		}
		if members > 0 {
			return apperrors.NewConflict(fmt.Sprintf("The %s group includes some admin users! Please remove them first.", group.Name))
		}

		if err := tx.Select("Permissions", "Users").Delete(&group).Error; err != nil {
			return fmt.Errorf("failed to delete group %d: %w", id, err)
		}
		return nil
	})
}

// Members lists the users of a group.
func (r *GORMGroupRepository) Members(ctx context.Context, id uint) ([]models.User, error) {
	group := models.Group{ID: id}
	var users []models.User
	if err := r.db.WithContext(ctx).Model(&group).Order("users.id").Association("Users").Find(&users); err != nil {
		return nil, fmt.Errorf("failed to list members of group %d: %w", id, err)
	}
	return users, nil
}

// ListPermissions returns every permission ordered by id.
func (r *GORMGroupRepository) ListPermissions(ctx context.Context) ([]models.Permission, error) {
	var perms []models.Permission
	if err := r.db.WithContext(ctx).Order("id").Find(&perms).Error; err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	return perms, nil
}

func loadPermissions(tx *gorm.DB, ids []uint) ([]models.Permission, error) {
	perms := make([]models.Permission, 0, len(ids))
	if len(ids) == 0 {
		return perms, nil
	}
	if err := tx.Where("id IN ?", ids).Find(&perms).Error; err != nil {
		return nil, fmt.Errorf("failed to load permissions: %w", err)
	}
	have := make(map[uint]bool, len(perms))
	for _, p := range perms {
		have[p.ID] = true
	}
	for _, id := range ids {
		if !have[id] {
			return nil, apperrors.FieldError("permissions", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
		}
	}
	return perms, nil
}
