package services_test

import (
	"context"
	"testing"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64) *models.Product {
	t.Helper()
	category := &models.Category{Title: "Books"}
	require.NoError(t, db.Create(category).Error)
	product := &models.Product{Name: name, CategoryID: category.ID, Price: price, Inventory: 10}
	require.NoError(t, db.Omit("Category").Create(product).Error)
	return product
}

func TestCategoryService_DeleteKeepsCategoryWithProducts(t *testing.T) {
	db := newDB(t)
	svc := services.NewCategoryService(repositories.NewGORMCategoryRepository(db), logging.Discard())
	ctx := context.Background()

	product := seedProduct(t, db, "Go", 10)

	err := svc.Delete(ctx, product.CategoryID)
	require.ErrorIs(t, err, apperrors.ErrConflict)

	category, err := svc.Get(ctx, product.CategoryID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), category.NumOfProducts)
}

func TestCategoryService_PartialUpdate(t *testing.T) {
	db := newDB(t)
	svc := services.NewCategoryService(repositories.NewGORMCategoryRepository(db), logging.Discard())
	ctx := context.Background()

	created, err := svc.Create(ctx, "Books", "Paper")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, nil, ptr("Printed"))
	require.NoError(t, err)
	assert.Equal(t, "Books", updated.Title)
	assert.Equal(t, "Printed", updated.Description)

	_, err = svc.Update(ctx, 404, ptr("x"), nil)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGroupService_UpdateKeepsPermissionsWhenOmitted(t *testing.T) {
	db := newDB(t)
	svc := services.NewGroupService(repositories.NewGORMGroupRepository(db), logging.Discard())
	ctx := context.Background()

	perm := models.Permission{Name: "Can add product", Codename: "add_product"}
	require.NoError(t, db.Create(&perm).Error)
	group, err := svc.Create(ctx, "Catalog", []uint{perm.ID})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, group.ID, ptr("Catalogue"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Catalogue", updated.Name)
	assert.Len(t, updated.Permissions, 1)

	_, err = svc.Members(ctx, 404)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGroupService_CreateAddsSuperusers(t *testing.T) {
	db := newDB(t)
	svc := services.NewGroupService(repositories.NewGORMGroupRepository(db), logging.Discard())
	ctx := context.Background()

	root := createSuperuser(t, db, "root@example.com")
	createUser(t, db, "customer@example.com", strongPassword)

	group, err := svc.Create(ctx, "Support", nil)
	require.NoError(t, err)
	members, err := svc.Members(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, root.ID, members[0].ID)
}

func TestCommentService(t *testing.T) {
	db := newDB(t)
	svc := services.NewCommentService(repositories.NewGORMCommentRepository(db), repositories.NewGORMProductRepository(db), logging.Discard())
	ctx := context.Background()

	product := seedProduct(t, db, "Go", 10)
	author := createUser(t, db, "jane@example.com", strongPassword)

	comment, err := svc.Create(ctx, product.ID, author.ID, "Great book")
	require.NoError(t, err)
	assert.Equal(t, models.CommentApproved, comment.Status)
	assert.Equal(t, author.ID, comment.User.ID)

	list, err := svc.List(ctx, product.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.List(ctx, product.ID+100)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = svc.Create(ctx, product.ID+100, author.ID, "x")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, product.ID, comment.ID))
}

func TestCartService(t *testing.T) {
	db := newDB(t)
	svc := services.NewCartService(repositories.NewGORMCartRepository(db), repositories.NewGORMProductRepository(db), logging.Discard())
	ctx := context.Background()

	product := seedProduct(t, db, "Go", 12.5)
	cart, err := svc.CreateCart(ctx)
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, cart.ID, product.ID, 2)
	require.NoError(t, err)
	item, err := svc.AddItem(ctx, cart.ID, product.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, uint16(3), item.Quantity)

	_, err = svc.AddItem(ctx, cart.ID, product.ID, 0)
	assert.Contains(t, fieldErrors(t, err), "quantity")
	_, err = svc.AddItem(ctx, cart.ID, product.ID, services.MaxCartItemQuantity)
	assert.Contains(t, fieldErrors(t, err), "quantity")
	_, err = svc.AddItem(ctx, cart.ID, product.ID+100, 1)
	assert.Contains(t, fieldErrors(t, err), "product_id")
	_, err = svc.AddItem(ctx, "3f0b8a3e-0000-4000-8000-000000000000", product.ID, 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	loaded, err := svc.GetCart(ctx, cart.ID)
	require.NoError(t, err)
	view := services.NewCartView(loaded)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 37.5, view.Items[0].TotalPrice)
	assert.Equal(t, 37.5, view.TotalPrice)

	_, err = svc.UpdateItem(ctx, cart.ID, item.ID, 1)
	require.NoError(t, err)
	require.NoError(t, svc.RemoveItem(ctx, cart.ID, item.ID))
	require.NoError(t, svc.DeleteCart(ctx, cart.ID))
}

func TestAddressService(t *testing.T) {
	db := newDB(t)
	svc := services.NewAddressService(repositories.NewGORMAddressRepository(db))
	ctx := context.Background()
	owner := createUser(t, db, "jane@example.com", strongPassword)

	address, err := svc.Create(ctx, owner.ID, services.AddressInput{Province: ptr("Tehran"), City: ptr("Tehran"), Street: ptr("Azadi")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, address, services.AddressInput{Street: ptr("Enghelab")})
	require.NoError(t, err)
	assert.Equal(t, "Tehran", updated.City)
	assert.Equal(t, "Enghelab", updated.Street)

	list, err := svc.List(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, address.ID))
	_, err = svc.Get(ctx, address.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
