package service

import (
	"context"
	"errors"
	"testing"

	"fasttrack/internal/cache"
	"fasttrack/internal/model"
	"fasttrack/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_ListProducts_CachesUnfiltered(t *testing.T) {
	ctx := context.Background()
	mockProductRepo := new(MockProductRepository)
	views := cache.New()
	service := NewCatalogService(mockProductRepo, views, zerolog.Nop())

	products := []model.Product{{ID: 1, Name: "Milk"}, {ID: 2, Name: "Bread"}}
	filter := repository.ProductFilter{}

	// Only the first call should hit the repository.
	mockProductRepo.On("List", ctx, filter).Return(products, nil).Once()

	first, err := service.ListProducts(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, products, first)

	second, err := service.ListProducts(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, products, second)

	mockProductRepo.AssertExpectations(t)
}

func TestCatalogService_ListProducts_FilteredBypassesCache(t *testing.T) {
	ctx := context.Background()
	mockProductRepo := new(MockProductRepository)
	views := cache.New()
	views.Set(cache.KeyCatalog, []model.Product{{ID: 99, Name: "Stale"}})
	service := NewCatalogService(mockProductRepo, views, zerolog.Nop())

	filters := []repository.ProductFilter{
		{DepartmentSlug: "dairy"},
		{Search: "milk"},
	}
	for _, filter := range filters {
		mockProductRepo.On("List", ctx, filter).Return([]model.Product{{ID: 1}}, nil).Once()

		products, err := service.ListProducts(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, []model.Product{{ID: 1}}, products)
	}

	mockProductRepo.AssertExpectations(t)
}

func TestCatalogService_ListProducts_AllSlugMeansUnfiltered(t *testing.T) {
	ctx := context.Background()
	mockProductRepo := new(MockProductRepository)
	views := cache.New()
	cached := []model.Product{{ID: 5, Name: "Cached"}}
	views.Set(cache.KeyCatalog, cached)
	service := NewCatalogService(mockProductRepo, views, zerolog.Nop())

	products, err := service.ListProducts(ctx, repository.ProductFilter{DepartmentSlug: "all"})

	require.NoError(t, err)
	assert.Equal(t, cached, products)
	mockProductRepo.AssertNotCalled(t, "List")
}

func TestCatalogService_ListProducts_RepoError(t *testing.T) {
	ctx := context.Background()
	mockProductRepo := new(MockProductRepository)
	service := NewCatalogService(mockProductRepo, cache.New(), zerolog.Nop())

	mockProductRepo.On("List", ctx, repository.ProductFilter{}).Return(nil, errors.New("connection refused"))

	products, err := service.ListProducts(ctx, repository.ProductFilter{})

	require.Error(t, err)
	assert.Nil(t, products)
}

func TestCatalogService_GetProduct(t *testing.T) {
	ctx := context.Background()
	mockProductRepo := new(MockProductRepository)
	service := NewCatalogService(mockProductRepo, cache.New(), zerolog.Nop())

	product := &model.Product{ID: 1, Name: "Milk"}
	mockProductRepo.On("GetByID", ctx, int64(1)).Return(product, nil)

	got, err := service.GetProduct(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, product, got)
}

func TestCatalogService_GetProduct_NotFound(t *testing.T) {
	ctx := context.Background()
	mockProductRepo := new(MockProductRepository)
	service := NewCatalogService(mockProductRepo, cache.New(), zerolog.Nop())

	mockProductRepo.On("GetByID", ctx, int64(404)).Return(nil, nil)

	got, err := service.GetProduct(ctx, 404)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestCatalogService_ListDepartments_Caches(t *testing.T) {
	ctx := context.Background()
	mockProductRepo := new(MockProductRepository)
	views := cache.New()
	service := NewCatalogService(mockProductRepo, views, zerolog.Nop())

	departments := []model.Department{{ID: 1, Name: "Dairy", Slug: "dairy"}}
	mockProductRepo.On("ListDepartments", ctx).Return(departments, nil).Once()

	first, err := service.ListDepartments(ctx)
	require.NoError(t, err)
	assert.Equal(t, departments, first)

	second, err := service.ListDepartments(ctx)
	require.NoError(t, err)
	assert.Equal(t, departments, second)

	mockProductRepo.AssertExpectations(t)
}
