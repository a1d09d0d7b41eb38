package model

import (
	"encoding/json"
	"time"
)

// DefaultImageURL is used when a product is created without an image.
const DefaultImageURL = "https://placehold.co/400x400?text=Product"

// Product represents a catalogue product.
type Product struct {
	ID            int64      `json:"id" db:"id"`
	Name          string     `json:"name" db:"name"`
	Price         float64    `json:"price" db:"price"`
	StockQuantity int        `json:"stock_quantity" db:"stock_quantity"`
	ImageURL      string     `json:"image_url" db:"image_url"`
	DepartmentID  *int64     `json:"department_id" db:"department_id"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty" db:"expiry_date"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// Department represents a product department used for catalogue filtering.
type Department struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Slug string `json:"slug" db:"slug"`
}

// ProductSnapshot is the subset of product fields carried inside a cart entry.
// It is a point-in-time copy, not a live reference to the catalogue row.
type ProductSnapshot struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	ImageURL      string  `json:"image_url,omitempty"`
}

// UnmarshalJSON coerces missing or null numeric fields to zero and clamps
// negatives, so downstream code can rely on price >= 0 and stock >= 0
// without re-checking at every consumption site.
func (s *ProductSnapshot) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID            int64    `json:"id"`
		Name          *string  `json:"name"`
		Price         *float64 `json:"price"`
		StockQuantity *int     `json:"stock_quantity"`
		ImageURL      string   `json:"image_url"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.ID = raw.ID
	s.ImageURL = raw.ImageURL
	if raw.Name != nil {
		s.Name = *raw.Name
	}
	s.Price = 0
	if raw.Price != nil && *raw.Price > 0 {
		s.Price = *raw.Price
	}
	s.StockQuantity = 0
	if raw.StockQuantity != nil && *raw.StockQuantity > 0 {
		s.StockQuantity = *raw.StockQuantity
	}
	return nil
}

// Snapshot copies the fields of a live product into a cart snapshot.
func (p *Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		ImageURL:      p.ImageURL,
	}
}
