package main

import (
	"context"
	"fmt"

	"storefront/internal/apperrors"
	"storefront/internal/config"
	"storefront/internal/models"
	"storefront/internal/passwords"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	entities = []string{"user", "group", "category", "product", "comment", "cart", "address"}
	verbs    = []string{"add", "change", "delete", "view"}

	// catalogEntities are managed by the Product Management group.
	catalogEntities = map[string]bool{"category": true, "product": true}
)

// seedPermissions makes sure every entity has its four permissions and
// returns the ids of the catalog ones.
func seedPermissions(ctx context.Context, db *gorm.DB) ([]uint, error) {
	var catalog []uint
	for _, entity := range entities {
		for _, verb := range verbs {
			perm := models.Permission{
				Codename: verb + "_" + entity,
				Name:     fmt.Sprintf("Can %s %s", verb, entity),
			}
			if err := db.WithContext(ctx).Where(models.Permission{Codename: perm.Codename}).FirstOrCreate(&perm).Error; err != nil {
				return nil, fmt.Errorf("failed to seed permission %s: %w", perm.Codename, err)
			}
			if catalogEntities[entity] {
				catalog = append(catalog, perm.ID)
			}
		}
	}
	return catalog, nil
}

// seedSuperuser creates the configured superuser, or refreshes its flags
// and password when it already exists.
func seedSuperuser(ctx context.Context, users repositories.UserRepository, email, password string) (*models.User, error) {
	hash, err := passwords.Hash(password)
	if err != nil {
		return nil, err
	}

	user, err := users.GetByEmail(ctx, email)
	switch {
	case apperrors.KindOf(err) == apperrors.NotFound:
		user = &models.User{
			Email:       models.NormalizeEmail(email),
			Password:    hash,
			IsActive:    true,
			IsAdmin:     true,
			IsSuperuser: true,
		}
		return user, users.Create(ctx, user)
	case err != nil:
		return nil, err
	}

	user.Password = hash
	user.IsActive, user.IsAdmin, user.IsSuperuser = true, true, true
	return user, users.Update(ctx, user)
}

// seedCatalogGroup creates the Product Management group, or resets its
// permissions when it exists.
func seedCatalogGroup(ctx context.Context, groups *services.GroupService, permissionIDs []uint) (*models.Group, error) {
	existing, err := groups.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, g := range existing {
		if g.Name == models.ProductManagementGroup {
			return groups.Update(ctx, g.ID, nil, permissionIDs)
		}
	}
	return groups.Create(ctx, models.ProductManagementGroup, permissionIDs)
}

// syncSuperusers adds the current superusers to every group. Groups
// created before a superuser existed would otherwise lock it out of
// group-based actions.
func syncSuperusers(ctx context.Context, groups *services.GroupService) error {
	existing, err := groups.List(ctx)
	if err != nil {
		return err
	}
	for _, g := range existing {
		if err := groups.AddSuperusers(ctx, g.ID); err != nil {
			return fmt.Errorf("failed to add superusers to group %s: %w", g.Name, err)
		}
	}
	return nil
}

func seed(ctx context.Context, db *gorm.DB, cfg *config.Config, logger logrus.FieldLogger) error {
	catalog, err := seedPermissions(ctx, db)
	if err != nil {
		return err
	}
	logger.WithField("permissions", len(entities)*len(verbs)).Info("permissions seeded")

	if cfg.SeedSuperuserPassword == "" {
		logger.Warn("SEED_SUPERUSER_PASSWORD not set; skipping superuser")
	} else {
		user, err := seedSuperuser(ctx, repositories.NewGORMUserRepository(db), cfg.SeedSuperuserEmail, cfg.SeedSuperuserPassword)
		if err != nil {
			return fmt.Errorf("failed to seed superuser: %w", err)
		}
		logger.WithFields(logrus.Fields{"user_id": user.ID, "email": user.Email}).Info("superuser seeded")
	}

	groups := services.NewGroupService(repositories.NewGORMGroupRepository(db), logger)
	group, err := seedCatalogGroup(ctx, groups, catalog)
	if err != nil {
		return fmt.Errorf("failed to seed %s group: %w", models.ProductManagementGroup, err)
	}
	logger.WithField("group_id", group.ID).Info("catalog group seeded")
	return syncSuperusers(ctx, groups)
}
