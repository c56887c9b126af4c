// Package catalog resolves the product listing: effective prices, category
// and search filters, price-aware sorting, and the projected display records
// served to the storefront.
package catalog

import (
	"time"

	"github.com/delegance/storefront-backend/pkg/enums"
	"github.com/google/uuid"
)

// PseudoCategoryUnderPrice is a price rule, not a category row: it selects
// products whose effective price is at or under the configured threshold.
const PseudoCategoryUnderPrice = "under-25"

// Query is one catalog listing request. Empty fields mean "no filter";
// filters are combined with AND.
type Query struct {
	Category string
	Search   string
	Tag      string
	Sort     enums.SortKey
}

// Product is a catalog row as read from storage.
type Product struct {
	ID          uuid.UUID
	Slug        string
	Title       string
	Description *string
	ListPrice   float64
	SalePrice   *float64
	Tags        []string
	CreatedAt   time.Time
}

// Resolved annotates a product with its effective price. Every filter and
// sort downstream compares this value, never the list price.
type Resolved struct {
	Product
	EffectivePrice float64
}

// OnSale reports whether the product carries a discount worth badging:
// a sale price that is present and differs from the list price.
func (r Resolved) OnSale() bool {
	return r.SalePrice != nil && *r.SalePrice != r.ListPrice
}

// Item is the projected listing record.
type Item struct {
	ID       uuid.UUID    `json:"id"`
	Slug     string       `json:"slug"`
	Title    string       `json:"title"`
	Price    float64      `json:"price"`
	Image    *string      `json:"image"`
	Badge    *enums.Badge `json:"badge,omitempty"`
	Category *string      `json:"category,omitempty"`
}

// Detail is the projected product-page record.
type Detail struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Price       float64   `json:"price"`
	Image       *string   `json:"image"`
}
