package service

import (
	"context"
	"errors"
	"testing"

	"fasttrack/internal/cache"
	"fasttrack/internal/events"
	"fasttrack/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var staffSession = model.Session{Role: model.RoleStaff, UserID: "staff-1", Email: "staff@fasttrack.test"}

func TestInventoryService_CreateProduct_Success(t *testing.T) {
	ctx := context.Background()
	mockProductRepo := new(MockProductRepository)
	publisher := &recordingPublisher{}
	views := cache.New()
	views.Set(cache.KeyCatalog, []model.Product{})

	service := NewInventoryService(mockProductRepo, views, publisher, zerolog.Nop())

	var captured *model.Product
	mockProductRepo.On("Create", ctx, mock.AnythingOfType("*model.Product")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*model.Product)
			captured.ID = 42
		}).
		Return(nil)

	result := service.CreateProduct(ctx, staffSession, &CreateProductRequest{
		Name:  "Olive Oil",
		Price: "18.50",
		Stock: "30",
	})

	require.True(t, result.Success)
	require.NotNil(t, captured)
	assert.Equal(t, 18.50, captured.Price)
	assert.Equal(t, 30, captured.StockQuantity)
	assert.Equal(t, model.DefaultImageURL, captured.ImageURL)
	assert.Nil(t, captured.DepartmentID)

	_, ok := views.Get(cache.KeyCatalog)
	assert.False(t, ok)

	published := publisher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.TypeProductCreated, published[0].Type)
	assert.Equal(t, "42", published[0].EntityID)
}

func TestInventoryService_CreateProduct_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     *CreateProductRequest
		message string
	}{
		{"missing name", &CreateProductRequest{Price: "1", Stock: "1"}, "Name, price, and stock are required."},
		{"missing price", &CreateProductRequest{Name: "X", Stock: "1"}, "Name, price, and stock are required."},
		{"missing stock", &CreateProductRequest{Name: "X", Price: "1"}, "Name, price, and stock are required."},
		{"non-numeric price", &CreateProductRequest{Name: "X", Price: "abc", Stock: "1"}, "Please enter a valid price."},
		{"negative price", &CreateProductRequest{Name: "X", Price: "-1", Stock: "1"}, "Please enter a valid price."},
		{"non-numeric stock", &CreateProductRequest{Name: "X", Price: "1", Stock: "abc"}, "Please enter a valid stock quantity."},
		{"negative stock", &CreateProductRequest{Name: "X", Price: "1", Stock: "-5"}, "Please enter a valid stock quantity."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockProductRepo := new(MockProductRepository)
			service := NewInventoryService(mockProductRepo, cache.New(), events.NewNopPublisher(), zerolog.Nop())

			result := service.CreateProduct(context.Background(), staffSession, tt.req)

			assert.False(t, result.Success)
			assert.Equal(t, tt.message, result.Message)
			mockProductRepo.AssertNotCalled(t, "Create")
		})
	}
}

func TestInventoryService_CreateProduct_ZeroPriceAllowed(t *testing.T) {
	ctx := context.Background()
	mockProductRepo := new(MockProductRepository)
	service := NewInventoryService(mockProductRepo, cache.New(), events.NewNopPublisher(), zerolog.Nop())

	mockProductRepo.On("Create", ctx, mock.AnythingOfType("*model.Product")).Return(nil)

	result := service.CreateProduct(ctx, staffSession, &CreateProductRequest{
		Name:  "Sample",
		Price: "0",
		Stock: "0",
	})

	assert.True(t, result.Success)
	mockProductRepo.AssertExpectations(t)
}

func TestInventoryService_RequiresStaff(t *testing.T) {
	sessions := []struct {
		name    string
		session model.Session
	}{
		{"guest", model.Guest},
		{"customer", model.Session{Role: model.RoleCustomer, UserID: "c1", Email: "c@example.com"}},
	}

	for _, tt := range sessions {
		t.Run(tt.name, func(t *testing.T) {
			mockProductRepo := new(MockProductRepository)
			service := NewInventoryService(mockProductRepo, cache.New(), events.NewNopPublisher(), zerolog.Nop())
			ctx := context.Background()

			create := service.CreateProduct(ctx, tt.session, &CreateProductRequest{Name: "X", Price: "1", Stock: "1"})
			restock := service.RestockProduct(ctx, tt.session, &RestockRequest{ProductID: "1", Quantity: "1"})
			remove := service.DeleteProduct(ctx, tt.session, 1)

			for _, result := range []model.ActionResult{create, restock, remove} {
				assert.False(t, result.Success)
				assert.Equal(t, "Unauthorized. Admin access required.", result.Message)
			}
			mockProductRepo.AssertNotCalled(t, "Create")
			mockProductRepo.AssertNotCalled(t, "IncrementStock")
			mockProductRepo.AssertNotCalled(t, "Delete")
		})
	}
}

func TestInventoryService_RestockProduct_Success(t *testing.T) {
	ctx := context.Background()
	mockProductRepo := new(MockProductRepository)
	publisher := &recordingPublisher{}
	service := NewInventoryService(mockProductRepo, cache.New(), publisher, zerolog.Nop())

	product := &model.Product{ID: 7, Name: "Milk", StockQuantity: 4}
	mockProductRepo.On("GetByID", ctx, int64(7)).Return(product, nil)
	mockProductRepo.On("IncrementStock", ctx, int64(7), 6).Return(10, nil)

	result := service.RestockProduct(ctx, staffSession, &RestockRequest{ProductID: "7", Quantity: "6"})

	require.True(t, result.Success)
	assert.Equal(t, `Added 6 units to "Milk". New stock: 10`, result.Message)

	published := publisher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.TypeProductRestocked, published[0].Type)
	mockProductRepo.AssertExpectations(t)
}

func TestInventoryService_RestockProduct_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     *RestockRequest
		message string
	}{
		{"missing product", &RestockRequest{Quantity: "5"}, "Product and quantity are required."},
		{"missing quantity", &RestockRequest{ProductID: "1"}, "Product and quantity are required."},
		{"non-numeric id", &RestockRequest{ProductID: "abc", Quantity: "5"}, "Product not found."},
		{"non-numeric quantity", &RestockRequest{ProductID: "1", Quantity: "abc"}, "Please enter a valid quantity greater than 0."},
		{"zero quantity", &RestockRequest{ProductID: "1", Quantity: "0"}, "Please enter a valid quantity greater than 0."},
		{"negative quantity", &RestockRequest{ProductID: "1", Quantity: "-3"}, "Please enter a valid quantity greater than 0."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockProductRepo := new(MockProductRepository)
			service := NewInventoryService(mockProductRepo, cache.New(), events.NewNopPublisher(), zerolog.Nop())

			result := service.RestockProduct(context.Background(), staffSession, tt.req)

			assert.False(t, result.Success)
			assert.Equal(t, tt.message, result.Message)
			mockProductRepo.AssertNotCalled(t, "IncrementStock")
		})
	}
}

func TestInventoryService_RestockProduct_NotFound(t *testing.T) {
	ctx := context.Background()
	mockProductRepo := new(MockProductRepository)
	service := NewInventoryService(mockProductRepo, cache.New(), events.NewNopPublisher(), zerolog.Nop())

	mockProductRepo.On("GetByID", ctx, int64(99)).Return(nil, nil)

	result := service.RestockProduct(ctx, staffSession, &RestockRequest{ProductID: "99", Quantity: "5"})

	assert.False(t, result.Success)
	assert.Equal(t, "Product not found.", result.Message)
	mockProductRepo.AssertNotCalled(t, "IncrementStock")
}

func TestInventoryService_DeleteProduct_Success(t *testing.T) {
	ctx := context.Background()
	mockProductRepo := new(MockProductRepository)
	publisher := &recordingPublisher{}
	views := cache.New()
	views.Set(cache.KeyCatalog, []model.Product{{ID: 3}})

	service := NewInventoryService(mockProductRepo, views, publisher, zerolog.Nop())

	mockProductRepo.On("Delete", ctx, int64(3)).Return(nil)

	result := service.DeleteProduct(ctx, staffSession, 3)

	require.True(t, result.Success)
	assert.Equal(t, "Product deleted successfully.", result.Message)

	_, ok := views.Get(cache.KeyCatalog)
	assert.False(t, ok)

	published := publisher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.TypeProductDeleted, published[0].Type)
	assert.Equal(t, "3", published[0].EntityID)
}

func TestInventoryService_DeleteProduct_NotFound(t *testing.T) {
	ctx := context.Background()
	mockProductRepo := new(MockProductRepository)
	service := NewInventoryService(mockProductRepo, cache.New(), events.NewNopPublisher(), zerolog.Nop())

	mockProductRepo.On("Delete", ctx, int64(404)).Return(model.ErrProductNotFound)

	result := service.DeleteProduct(ctx, staffSession, 404)

	assert.False(t, result.Success)
	assert.Equal(t, "Product not found.", result.Message)
}

func TestInventoryService_DeleteProduct_RepoError(t *testing.T) {
	ctx := context.Background()
	mockProductRepo := new(MockProductRepository)
	service := NewInventoryService(mockProductRepo, cache.New(), events.NewNopPublisher(), zerolog.Nop())

	mockProductRepo.On("Delete", ctx, int64(3)).Return(errors.New("connection refused"))

	result := service.DeleteProduct(ctx, staffSession, 3)

	assert.False(t, result.Success)
	assert.Equal(t, "Failed to delete product.", result.Message)
}
