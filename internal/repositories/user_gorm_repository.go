package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error; err != nil {
		return translate(err, "user", user.Email)
	}
	if len(user.Groups) > 0 {
		if err := r.db.WithContext(ctx).Model(user).Association("Groups").Append(user.Groups); err != nil {
			return fmt.Errorf("failed to attach groups to user %d: %w", user.ID, err)
		}
	}
	return nil
}

// GetByID retrieves a user and its groups.
func (r *GORMUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Groups").First(&user, id).Error; err != nil {
		return nil, translate(err, "user", id)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email regardless of its active flag.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Groups").
		First(&user, "LOWER(email) = ?", strings.ToLower(email)).Error
	if err != nil {
		return nil, translate(err, "user", email)
	}
	return &user, nil
}

// GetActiveByEmail retrieves an active user by email.
func (r *GORMUserRepository) GetActiveByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Groups").
		Where("is_active = ?", true).
		First(&user, "LOWER(email) = ?", strings.ToLower(email)).Error
	if err != nil {
		return nil, translate(err, "user", email)
	}
	return &user, nil
}

// List returns every user ordered by id.
func (r *GORMUserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Preload("Groups").Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Update saves the user's columns. Group membership is not touched.
func (r *GORMUserRepository) Update(ctx context.Context, user *models.User) error {
	res := r.db.WithContext(ctx).Omit(clause.Associations).Save(user)
	if res.Error != nil {
		return translate(res.Error, "user", user.ID)
	}
	return nil
}

// UpdatePassword stores a new password hash.
func (r *GORMUserRepository) UpdatePassword(ctx context.Context, user *models.User, hash string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Update("password", hash)
	if res.Error != nil {
		return fmt.Errorf("failed to update password of user %d: %w", user.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFound("user", user.ID)
	}
	user.Password = hash
	return nil
}

// TouchLastLogin records a successful login.
func (r *GORMUserRepository) TouchLastLogin(ctx context.Context, user *models.User, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Update("last_login", at)
	if res.Error != nil {
		return fmt.Errorf("failed to update last login of user %d: %w", user.ID, res.Error)
	}
	user.LastLogin = &at
	return nil
}

// SetGroups replaces the user's group set and recomputes IsAdmin in one
// transaction. Unknown group ids fail the whole operation.
func (r *GORMUserRepository) SetGroups(ctx context.Context, userID uint, groupIDs []uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			return translate(err, "user", userID)
		}

		groups := make([]models.Group, 0, len(groupIDs))
		if len(groupIDs) > 0 {
			if err := tx.Where("id IN ?", groupIDs).Find(&groups).Error; err != nil {
				return fmt.Errorf("failed to load groups: %w", err)
			}
			if missing := missingIDs(groupIDs, groups); len(missing) > 0 {
				return apperrors.FieldError("groups", fmt.Sprintf("Invalid group ids %v - objects do not exist.", missing))
			}
		}

		if err := tx.Model(&user).Association("Groups").Replace(groups); err != nil {
			return fmt.Errorf("failed to replace groups of user %d: %w", userID, err)
		}

		user.IsAdmin = len(groups) > 0 || user.IsSuperuser
		if err := tx.Model(&user).Update("is_admin", user.IsAdmin).Error; err != nil {
			return fmt.Errorf("failed to update admin flag of user %d: %w", userID, err)
		}
		user.Groups = groups
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes a user row and its memberships.
func (r *GORMUserRepository) Delete(ctx context.Context, id uint) error {
	user := models.User{ID: id}
	res := r.db.WithContext(ctx).Select("Groups").Delete(&user)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFound("user", id)
	}
	return nil
}

func missingIDs(want []uint, found []models.Group) []uint {
	have := make(map[uint]bool, len(found))
	for _, g := range found {
		have[g.ID] = true
	}
	var missing []uint
	for _, id := range want {
		if !have[id] {
			missing = append(missing, id)
		}
	}
	return missing
}
