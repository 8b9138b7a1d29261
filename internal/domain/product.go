// Package domain holds the catalog's core types and pure logic.
// Nothing in this package performs I/O.
package domain

import (
	"fmt"
	"time"
)

// Image is one product image reference. The first image of a product is its
// canonical preview image.
type Image struct {
	StorageID string `json:"storage_id"`
	URL       string `json:"url"`
}

// Product is a catalog entry. ID is immutable once created. Slug is unique
// across live products and derived from Name; it is recomputed only when
// Name changes or the slug is missing.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Category    string    `json:"category"`
	Brand       string    `json:"brand"`
	Images      []Image   `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks the client-provided fields.
func (p *Product) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Price < 1 {
		return fmt.Errorf("price must be at least 1")
	}
	if p.Category == "" {
		return fmt.Errorf("category is required")
	}
	if p.Brand == "" {
		return fmt.Errorf("brand is required")
	}
	return nil
}

// MainImageURL returns the canonical preview image URL, or "" when the
// product has no images.
func (p *Product) MainImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}
