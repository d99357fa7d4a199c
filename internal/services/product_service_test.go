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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, q repositories.ProductQuery) ([]models.Product, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// MockCategoryRepository is a mock implementation of repositories.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]repositories.CategoryWithCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repositories.CategoryWithCount), args.Error(1)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id uint) (*repositories.CategoryWithCount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.CategoryWithCount), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func ptr[T any](v T) *T { return &v }

func TestProductService_ListProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, new(MockCategoryRepository), logging.Discard())

	expected := []models.Product{{ID: 11, Name: "Go 11"}, {ID: 12, Name: "Go 12"}, {ID: 13, Name: "Go 13"}}
	mockRepo.On("List", mock.Anything, repositories.ProductQuery{Search: "go", Ordering: "-id", Offset: 10, Limit: 10}).
		Return(expected, int64(13), nil).Once()

	page, err := service.ListProducts(context.Background(), "go", "-id", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(13), page.Count)
	assert.Equal(t, expected, page.Products)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrev)
	mockRepo.AssertExpectations(t)
}

func TestProductService_ListProductsInvalidPage(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, new(MockCategoryRepository), logging.Discard())

	_, err := service.ListProducts(context.Background(), "", "", 0)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	mockRepo.On("List", mock.Anything, mock.Anything).Return([]models.Product{}, int64(3), nil).Once()
	_, err = service.ListProducts(context.Background(), "", "", 5)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	mockRepo.On("List", mock.Anything, mock.Anything).Return([]models.Product{}, int64(0), nil).Once()
	page, err := service.ListProducts(context.Background(), "", "", 1)
	require.NoError(t, err)
	assert.Zero(t, page.Count)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	service := services.NewProductService(mockRepo, mockCategories, logging.Discard())

	mockCategories.On("GetByID", mock.Anything, uint(1)).Return(&repositories.CategoryWithCount{ID: 1, Title: "Books"}, nil).Once()
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
		return p.Slug == "go-in-action" && p.CategoryID == 1 && p.Price == 12.5
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Product).ID = 5
	}).Return(nil).Once()
	mockRepo.On("GetByID", mock.Anything, uint(5)).Return(&models.Product{ID: 5, Slug: "go-in-action"}, nil).Once()

	product, err := service.CreateProduct(context.Background(), services.ProductInput{
		Name: ptr("Go in Action"), CategoryID: ptr(uint(1)), Price: ptr(12.5), Inventory: ptr(3),
	})
	require.NoError(t, err)
	assert.Equal(t, uint(5), product.ID)
	mockRepo.AssertExpectations(t)
	mockCategories.AssertExpectations(t)
}

func TestProductService_CreateProductUnknownCategory(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	service := services.NewProductService(mockRepo, mockCategories, logging.Discard())

	mockCategories.On("GetByID", mock.Anything, uint(9)).Return(nil, apperrors.NewNotFound("category", 9)).Once()

	_, err := service.CreateProduct(context.Background(), services.ProductInput{Name: ptr("Lamp"), CategoryID: ptr(uint(9))})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, fieldErrors(t, err), "category")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductService_UpdateProductRefreshesSlug(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, new(MockCategoryRepository), logging.Discard())

	existing := &models.Product{ID: 2, Name: "Old name", Slug: "old-name", CategoryID: 1, Inventory: 4}
	mockRepo.On("GetByID", mock.Anything, uint(2)).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
		return p.Slug == "brand-new-name" && p.Inventory == 4
	})).Return(nil).Once()

	_, err := service.UpdateProduct(context.Background(), 2, services.ProductInput{Name: ptr("Brand New Name")})
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, new(MockCategoryRepository), logging.Discard())

	mockRepo.On("Delete", mock.Anything, uint(1)).Return(nil).Once()
	assert.NoError(t, service.DeleteProduct(context.Background(), 1))

	mockRepo.On("Delete", mock.Anything, uint(99)).Return(apperrors.NewNotFound("product", 99)).Once()
	assert.ErrorIs(t, service.DeleteProduct(context.Background(), 99), apperrors.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
