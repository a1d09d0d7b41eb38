package service

import (
	"context"
	"fmt"

	"fasttrack/internal/cache"
	"fasttrack/internal/model"
	"fasttrack/internal/repository"

	"github.com/rs/zerolog"
)

// catalogService implements CatalogService with a read-through view cache
// over the unfiltered listings.
type catalogService struct {
	productRepo repository.ProductRepository
	views       *cache.ViewCache
	logger      zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(productRepo repository.ProductRepository, views *cache.ViewCache, logger zerolog.Logger) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		views:       views,
		logger:      logger.With().Str("service", "catalog").Logger(),
	}
}

// ListProducts retrieves products matching the filter. The unfiltered
// listing is served from the view cache until an inventory mutation or a
// checkout invalidates it.
func (s *catalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	unfiltered := (filter.DepartmentSlug == "" || filter.DepartmentSlug == "all") && filter.Search == ""

	if unfiltered {
		if v, ok := s.views.Get(cache.KeyCatalog); ok {
			if products, ok := v.([]model.Product); ok {
				s.logger.Debug().Int("count", len(products)).Msg("catalog served from cache")
				return products, nil
			}
		}
	}

	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if unfiltered {
		s.views.Set(cache.KeyCatalog, products)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Str("department", filter.DepartmentSlug).
		Str("search", filter.Search).
		Msg("retrieved products")

	return products, nil
}

// GetProduct retrieves a single product by ID.
func (s *catalogService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// ListDepartments retrieves all departments through the view cache.
func (s *catalogService) ListDepartments(ctx context.Context) ([]model.Department, error) {
	if v, ok := s.views.Get(cache.KeyDepartments); ok {
		if departments, ok := v.([]model.Department); ok {
			return departments, nil
		}
	}

	departments, err := s.productRepo.ListDepartments(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list departments")
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	s.views.Set(cache.KeyDepartments, departments)

	return departments, nil
}
