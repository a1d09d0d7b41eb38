package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"fasttrack/internal/cache"
	"fasttrack/internal/events"
	"fasttrack/internal/model"
	"fasttrack/internal/repository"

	"github.com/rs/zerolog"
)

// inventoryService implements InventoryService.
type inventoryService struct {
	productRepo repository.ProductRepository
	views       *cache.ViewCache
	publisher   events.Publisher
	logger      zerolog.Logger
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(
	productRepo repository.ProductRepository,
	views *cache.ViewCache,
	publisher events.Publisher,
	logger zerolog.Logger,
) InventoryService {
	return &inventoryService{
		productRepo: productRepo,
		views:       views,
		publisher:   publisher,
		logger:      logger.With().Str("service", "inventory").Logger(),
	}
}

// CreateProduct validates and inserts a new catalogue product.
func (s *inventoryService) CreateProduct(ctx context.Context, session model.Session, req *CreateProductRequest) model.ActionResult {
	if !session.IsStaff() {
		s.logger.Warn().Str("role", session.Role.String()).Msg("non-staff create product attempt")
		return model.Failure(model.ErrUnauthorised)
	}

	if req == nil || req.Name == "" || req.Price == "" || req.Stock == "" {
		return model.ActionResult{Success: false, Message: "Name, price, and stock are required."}
	}

	price, err := strconv.ParseFloat(req.Price, 64)
	if err != nil || price < 0 {
		return model.Failure(model.ErrInvalidPrice)
	}

	stock, err := strconv.Atoi(req.Stock)
	if err != nil || stock < 0 {
		return model.Failure(model.ErrInvalidStock)
	}

	product := &model.Product{
		Name:          req.Name,
		Price:         price,
		StockQuantity: stock,
		ImageURL:      req.ImageURL,
		CreatedAt:     time.Now(),
	}
	if product.ImageURL == "" {
		product.ImageURL = model.DefaultImageURL
	}
	if req.DepartmentID != "" {
		deptID, err := strconv.ParseInt(req.DepartmentID, 10, 64)
		if err != nil {
			return model.ActionResult{Success: false, Message: "Please select a valid department."}
		}
		product.DepartmentID = &deptID
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("name", req.Name).Msg("product creation failed")
		return model.ActionResult{Success: false, Message: "Failed to create product. Please try again."}
	}

	s.invalidateAndPublish(ctx, events.TypeProductCreated, product.ID)

	s.logger.Info().
		Int64("product_id", product.ID).
		Str("name", product.Name).
		Msg("product created")

	return model.ActionResult{
		Success: true,
		Message: fmt.Sprintf("Product %q created successfully!", product.Name),
	}
}

// RestockProduct atomically adds stock to an existing product. The reported
// new stock level is the pre-update snapshot plus the added quantity, a
// display estimate; the atomic update's outcome is authoritative.
func (s *inventoryService) RestockProduct(ctx context.Context, session model.Session, req *RestockRequest) model.ActionResult {
	if !session.IsStaff() {
		s.logger.Warn().Str("role", session.Role.String()).Msg("non-staff restock attempt")
		return model.Failure(model.ErrUnauthorised)
	}

	if req == nil || req.ProductID == "" || req.Quantity == "" {
		return model.ActionResult{Success: false, Message: "Product and quantity are required."}
	}

	productID, err := strconv.ParseInt(req.ProductID, 10, 64)
	if err != nil {
		return model.Failure(model.ErrProductNotFound)
	}

	quantity, err := strconv.Atoi(req.Quantity)
	if err != nil || quantity <= 0 {
		return model.Failure(model.ErrInvalidQuantity)
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", productID).Msg("restock lookup failed")
		return model.ActionResult{Success: false, Message: "Failed to update stock. Please try again."}
	}
	if product == nil {
		return model.Failure(model.ErrProductNotFound)
	}

	if _, err := s.productRepo.IncrementStock(ctx, productID, quantity); err != nil {
		s.logger.Error().Err(err).Int64("product_id", productID).Msg("restock failed")
		return model.ActionResult{Success: false, Message: "Failed to update stock. Please try again."}
	}

	s.invalidateAndPublish(ctx, events.TypeProductRestocked, productID)

	newStock := product.StockQuantity + quantity

	s.logger.Info().
		Int64("product_id", productID).
		Int("added", quantity).
		Int("estimated_stock", newStock).
		Msg("product restocked")

	return model.ActionResult{
		Success: true,
		Message: fmt.Sprintf("Added %d units to %q. New stock: %d", quantity, product.Name, newStock),
	}
}

// DeleteProduct removes a product row. Order items referencing it keep
// their product ID and may render as "Unknown Item" afterwards.
func (s *inventoryService) DeleteProduct(ctx context.Context, session model.Session, productID int64) model.ActionResult {
	if !session.IsStaff() {
		s.logger.Warn().Str("role", session.Role.String()).Msg("non-staff delete product attempt")
		return model.Failure(model.ErrUnauthorised)
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		if err == model.ErrProductNotFound {
			return model.Failure(model.ErrProductNotFound)
		}
		s.logger.Error().Err(err).Int64("product_id", productID).Msg("product deletion failed")
		return model.ActionResult{Success: false, Message: "Failed to delete product."}
	}

	s.invalidateAndPublish(ctx, events.TypeProductDeleted, productID)

	s.logger.Info().Int64("product_id", productID).Msg("product deleted")

	return model.ActionResult{Success: true, Message: "Product deleted successfully."}
}

// invalidateAndPublish purges catalogue-dependent views after a confirmed
// write and fans the change out to other instances.
func (s *inventoryService) invalidateAndPublish(ctx context.Context, eventType string, productID int64) {
	s.views.Invalidate(cache.KeyCatalog)
	s.publisher.Publish(ctx, events.Event{
		Type:     eventType,
		EntityID: strconv.FormatInt(productID, 10),
	})
}
