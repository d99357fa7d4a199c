package services

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/sirupsen/logrus"
)

// GroupService handles group and permission administration.
type GroupService struct {
	groups repositories.GroupRepository
	logger logrus.FieldLogger
}

// NewGroupService creates a new GroupService.
func NewGroupService(groups repositories.GroupRepository, logger logrus.FieldLogger) *GroupService {
	return &GroupService{groups: groups, logger: logger}
}

func (s *GroupService) List(ctx context.Context) ([]models.Group, error) {
	return s.groups.List(ctx)
}

func (s *GroupService) Get(ctx context.Context, id uint) (*models.Group, error) {
	return s.groups.GetByID(ctx, id)
}

// Create adds a group with the given permissions. Every superuser becomes
// a member.
func (s *GroupService) Create(ctx context.Context, name string, permissionIDs []uint) (*models.Group, error) {
	group, err := s.groups.Create(ctx, name, permissionIDs)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"group_id": group.ID, "name": group.Name}).Info("group created")
	return group, nil
}

// Update renames a group and, when permissionIDs is not nil, replaces its
// permission set.
func (s *GroupService) Update(ctx context.Context, id uint, name *string, permissionIDs []uint) (*models.Group, error) {
	return s.groups.Update(ctx, id, name, permissionIDs, permissionIDs != nil)
}

// Delete removes a group that has no staff members left.
func (s *GroupService) Delete(ctx context.Context, id uint) error {
	if err := s.groups.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithField("group_id", id).Info("group deleted")
	return nil
}

// AddSuperusers makes every current superuser a member of the group.
func (s *GroupService) AddSuperusers(ctx context.Context, id uint) error {
	return s.groups.AddSuperusers(ctx, id)
}

// Members lists the users of a group.
func (s *GroupService) Members(ctx context.Context, id uint) ([]models.User, error) {
	if _, err := s.groups.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.groups.Members(ctx, id)
}

func (s *GroupService) Permissions(ctx context.Context) ([]models.Permission, error) {
	return s.groups.ListPermissions(ctx)
}
