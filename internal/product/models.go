package product

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a product id or name has no row.
var ErrNotFound = errors.New("product not found")

// Product is the catalog entry. Optional columns are pointers or
// omitempty-strings so the JSON matches what the storefront expects.
type Product struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Brand        string    `json:"brand,omitempty"`
	Description  string    `json:"description,omitempty"`
	Price        float64   `json:"price"`
	Stock        int       `json:"stock"`
	Category     string    `json:"category,omitempty"`
	Rank         *float64  `json:"rank,omitempty"`
	Ingredients  string    `json:"ingredients,omitempty"`
	Combination  *bool     `json:"combination,omitempty"`
	Dry          *bool     `json:"dry,omitempty"`
	Normal       *bool     `json:"normal,omitempty"`
	Oily         *bool     `json:"oily,omitempty"`
	Sensitive    *bool     `json:"sensitive,omitempty"`
	MainImageURL string    `json:"mainImageUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateProductRequest is the POST body for a new catalog entry.
type CreateProductRequest struct {
	Name         string   `json:"name" validate:"required,max=255"`
	Brand        string   `json:"brand"`
	Description  string   `json:"description"`
	Price        float64  `json:"price" validate:"gte=0"`
	Stock        int      `json:"stock" validate:"gte=0"`
	Category     string   `json:"category"`
	Rank         *float64 `json:"rank"`
	Ingredients  string   `json:"ingredients"`
	Combination  *bool    `json:"combination"`
	Dry          *bool    `json:"dry"`
	Normal       *bool    `json:"normal"`
	Oily         *bool    `json:"oily"`
	Sensitive    *bool    `json:"sensitive"`
	MainImageURL string   `json:"mainImageUrl"`
}

// UpdateProductRequest is the PUT body. Every field is optional; only the
// fields present are written.
type UpdateProductRequest struct {
	Name         *string  `json:"name" validate:"omitempty,max=255"`
	Brand        *string  `json:"brand"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock        *int     `json:"stock" validate:"omitempty,gte=0"`
	Category     *string  `json:"category"`
	Rank         *float64 `json:"rank"`
	Ingredients  *string  `json:"ingredients"`
	Combination  *bool    `json:"combination"`
	Dry          *bool    `json:"dry"`
	Normal       *bool    `json:"normal"`
	Oily         *bool    `json:"oily"`
	Sensitive    *bool    `json:"sensitive"`
	MainImageURL *string  `json:"mainImageUrl"`
}

// IsEmpty reports whether the update carries no fields at all.
func (r UpdateProductRequest) IsEmpty() bool {
	return r.Name == nil && r.Brand == nil && r.Description == nil &&
		r.Price == nil && r.Stock == nil && r.Category == nil &&
		r.Rank == nil && r.Ingredients == nil && r.Combination == nil &&
		r.Dry == nil && r.Normal == nil && r.Oily == nil &&
		r.Sensitive == nil && r.MainImageURL == nil
}

// ListParams filters and pages the catalog listing.
type ListParams struct {
	Query    string
	Category string
	Limit    int
	Offset   int
	SortBy   string
	SortDesc bool
}
