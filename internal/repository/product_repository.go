package repository

import (
	"context"
	"fmt"
	"time"

	"fasttrack/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = "id, name, price, stock_quantity, image_url, department_id, expiry_date, created_at"

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Price, &p.StockQuantity, &p.ImageURL, &p.DepartmentID, &p.ExpiryDate, &p.CreatedAt)
}

// List retrieves products matching the filter, newest first.
func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE 1=1
	`
	args := []any{}

	if filter.DepartmentSlug != "" && filter.DepartmentSlug != "all" {
		args = append(args, filter.DepartmentSlug)
		query += fmt.Sprintf(" AND department_id = (SELECT id FROM departments WHERE slug = $%d)", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).
			Str("department", filter.DepartmentSlug).
			Str("search", filter.Search).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`

	var p model.Product
	err := scanProduct(r.pool.QueryRow(ctx, query, id), &p)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// Create inserts a new product and fills in its generated ID.
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (name, price, stock_quantity, image_url, department_id, expiry_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		p.Name, p.Price, p.StockQuantity, p.ImageURL, p.DepartmentID, p.ExpiryDate, p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		r.logger.Error().Err(err).Str("name", p.Name).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Int64("product_id", p.ID).Str("name", p.Name).Msg("product created")

	return nil
}

// Delete removes a product row by ID.
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Int64("product_id", id).Msg("product not found for delete")
		return model.ErrProductNotFound
	}

	return nil
}

// IncrementStock atomically adds qty to the product's stock level. The whole
// read-modify-write happens inside this single UPDATE, so concurrent restocks
// cannot lose updates.
func (r *productRepository) IncrementStock(ctx context.Context, id int64, qty int) (int, error) {
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity + $2
		WHERE id = $1
		RETURNING stock_quantity
	`

	var newStock int
	err := r.pool.QueryRow(ctx, query, id, qty).Scan(&newStock)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("product_id", id).Msg("product not found for restock")
			return 0, model.ErrProductNotFound
		}
		r.logger.Error().Err(err).Int64("product_id", id).Int("quantity", qty).Msg("failed to increment stock")
		return 0, fmt.Errorf("failed to increment stock: %w", err)
	}

	r.logger.Debug().
		Int64("product_id", id).
		Int("added", qty).
		Int("new_stock", newStock).
		Msg("stock incremented")

	return newStock, nil
}

// Count returns the total number of products.
func (r *productRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// CountBelowStock counts products with stock below the threshold.
func (r *productRepository) CountBelowStock(ctx context.Context, threshold int) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE stock_quantity < $1`, threshold,
	).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Int("threshold", threshold).Msg("failed to count low-stock products")
		return 0, fmt.Errorf("failed to count low-stock products: %w", err)
	}
	return count, nil
}

// ListBelowStock lists products with stock below the threshold, ascending by
// stock, capped at limit.
func (r *productRepository) ListBelowStock(ctx context.Context, threshold, limit int) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE stock_quantity < $1
		ORDER BY stock_quantity ASC, id ASC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, threshold, limit)
	if err != nil {
		r.logger.Error().Err(err).Int("threshold", threshold).Msg("failed to query low-stock products")
		return nil, fmt.Errorf("failed to query low-stock products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// CountExpiringWithin counts products whose expiry date falls between now and
// now+window.
func (r *productRepository) CountExpiringWithin(ctx context.Context, window time.Duration) (int, error) {
	now := time.Now()

	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE expiry_date IS NOT NULL AND expiry_date BETWEEN $1 AND $2`,
		now, now.Add(window),
	).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count expiring products")
		return 0, fmt.Errorf("failed to count expiring products: %w", err)
	}
	return count, nil
}

// ListDepartments retrieves all departments ordered by name.
func (r *productRepository) ListDepartments(ctx context.Context) ([]model.Department, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, slug FROM departments ORDER BY name`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query departments")
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	var departments []model.Department
	for rows.Next() {
		var d model.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Slug); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan department row")
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating department rows")
		return nil, fmt.Errorf("error iterating departments: %w", err)
	}

	return departments, nil
}
