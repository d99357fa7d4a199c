package repositories_test

import (
	"context"
	"testing"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRepository_CreateAddsExactlyTheSuperusers(t *testing.T) {
	db := newDB(t)
	repo := repositories.NewGORMGroupRepository(db)
	ctx := context.Background()

	root := createUser(t, db, "root@example.com", true)
	other := createUser(t, db, "other-root@example.com", true)
	createUser(t, db, "customer@example.com", false)

	group, err := repo.Create(ctx, "Support", nil)
	require.NoError(t, err)

	members, err := repo.Members(ctx, group.ID)
	require.NoError(t, err)
	ids := make([]uint, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	assert.ElementsMatch(t, []uint{root.ID, other.ID}, ids)
}

func TestGroupRepository_AddSuperusersToExistingGroup(t *testing.T) {
	db := newDB(t)
	repo := repositories.NewGORMGroupRepository(db)
	ctx := context.Background()

	first := createUser(t, db, "root@example.com", true)
	group, err := repo.Create(ctx, "Support", nil)
	require.NoError(t, err)
	late := createUser(t, db, "late-root@example.com", true)

	require.NoError(t, repo.AddSuperusers(ctx, group.ID))
	require.NoError(t, repo.AddSuperusers(ctx, group.ID))

	members, err := repo.Members(ctx, group.ID)
	require.NoError(t, err)
	ids := make([]uint, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	assert.ElementsMatch(t, []uint{first.ID, late.ID}, ids)

	assert.ErrorIs(t, repo.AddSuperusers(ctx, 4242), apperrors.ErrNotFound)
}

func TestGroupRepository_CreateWithPermissions(t *testing.T) {
	db := newDB(t)
	repo := repositories.NewGORMGroupRepository(db)
	ctx := context.Background()

	perm := models.Permission{Name: "Can add product", Codename: "add_product"}
	require.NoError(t, db.Create(&perm).Error)

	group, err := repo.Create(ctx, "Catalog", []uint{perm.ID})
	require.NoError(t, err)
	assert.Len(t, group.Permissions, 1)

	_, err = repo.Create(ctx, "Broken", []uint{perm.ID, 77})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGroupRepository_DuplicateName(t *testing.T) {
	db := newDB(t)
	repo := repositories.NewGORMGroupRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, "Support", nil)
	require.NoError(t, err)
	_, err = repo.Create(ctx, "Support", nil)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestGroupRepository_Update(t *testing.T) {
	db := newDB(t)
	repo := repositories.NewGORMGroupRepository(db)
	ctx := context.Background()

	perm := models.Permission{Name: "Can view product", Codename: "view_product"}
	require.NoError(t, db.Create(&perm).Error)
	group, err := repo.Create(ctx, "Support", []uint{perm.ID})
	require.NoError(t, err)

	name := "Helpdesk"
	updated, err := repo.Update(ctx, group.ID, &name, nil, false)
	require.NoError(t, err)
	assert.Equal(t, "Helpdesk", updated.Name)
	assert.Len(t, updated.Permissions, 1)

	updated, err = repo.Update(ctx, group.ID, nil, []uint{}, true)
	require.NoError(t, err)
	assert.Empty(t, updated.Permissions)

	_, err = repo.Update(ctx, 999, &name, nil, false)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGroupRepository_DeleteBlockedByStaffMembers(t *testing.T) {
	db := newDB(t)
	groups := repositories.NewGORMGroupRepository(db)
	users := repositories.NewGORMUserRepository(db)
	ctx := context.Background()

	createUser(t, db, "root@example.com", true)
	staff := createUser(t, db, "staff@example.com", false)
	group, err := groups.Create(ctx, "Support", nil)
	require.NoError(t, err)
	_, err = users.SetGroups(ctx, staff.ID, []uint{group.ID})
	require.NoError(t, err)

	err = groups.Delete(ctx, group.ID)
	require.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, err.Error(), "The Support group includes some admin users!")

	_, err = users.SetGroups(ctx, staff.ID, nil)
	require.NoError(t, err)
	require.NoError(t, groups.Delete(ctx, group.ID))

	_, err = groups.GetByID(ctx, group.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
