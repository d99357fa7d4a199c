package repositories_test

import (
	"context"
	"testing"

	"storefront/internal/database"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string, superuser bool) *models.User {
	t.Helper()
	user := &models.User{Email: email, IsSuperuser: superuser, IsAdmin: superuser}
	require.NoError(t, repositories.NewGORMUserRepository(db).Create(context.Background(), user))
	return user
}

func createCategory(t *testing.T, db *gorm.DB, title string) *models.Category {
	t.Helper()
	category := &models.Category{Title: title}
	require.NoError(t, repositories.NewGORMCategoryRepository(db).Create(context.Background(), category))
	return category
}

func createProduct(t *testing.T, db *gorm.DB, categoryID uint, name string, inventory int) *models.Product {
	t.Helper()
	product := &models.Product{Name: name, CategoryID: categoryID, Price: 9.5, Inventory: inventory}
	require.NoError(t, repositories.NewGORMProductRepository(db).Create(context.Background(), product))
	return product
}
