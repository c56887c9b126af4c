package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/delegance/storefront-backend/pkg/config"
	"github.com/delegance/storefront-backend/pkg/enums"
	"github.com/delegance/storefront-backend/pkg/errors"
	"github.com/delegance/storefront-backend/pkg/logger"
	"github.com/delegance/storefront-backend/pkg/metrics"
	"github.com/google/uuid"
)

// Reader is the storage surface the service composes.
type Reader interface {
	CategoryIDBySlug(ctx context.Context, slug string) (*uuid.UUID, error)
	ListActiveProducts(ctx context.Context, categoryID *uuid.UUID, sort enums.SortKey) ([]Product, error)
	ProductBySlug(ctx context.Context, slug string) (*Product, error)
	FirstMediaByProduct(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

// Service serves catalog listings and product pages.
type Service interface {
	ListProducts(ctx context.Context, query Query) ([]Item, error)
	ProductBySlug(ctx context.Context, slug string) (*Detail, error)
}

type service struct {
	reader  Reader
	shop    config.ShopConfig
	logger  *logger.Logger
	metrics *metrics.Storefront
}

// NewService wires the catalog service. Metrics may be nil.
func NewService(reader Reader, shop config.ShopConfig, logg *logger.Logger, m *metrics.Storefront) (Service, error) {
	if reader == nil {
		return nil, fmt.Errorf("catalog reader is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{reader: reader, shop: shop, logger: logg, metrics: m}, nil
}

// ListProducts resolves one listing query. Unknown category slugs yield an
// empty listing, never the unfiltered catalog and never an error; storage
// failures propagate as dependency errors.
func (s *service) ListProducts(ctx context.Context, query Query) ([]Item, error) {
	started := time.Now()
	defer func() { s.metrics.ObserveCatalogQuery(time.Since(started)) }()

	var categoryID *uuid.UUID
	if query.Category != "" && query.Category != PseudoCategoryUnderPrice {
		id, err := s.reader.CategoryIDBySlug(ctx, query.Category)
		if err != nil {
			return nil, errors.Wrap(errors.CodeDependency, err, "resolving category")
		}
		if id == nil {
			return []Item{}, nil
		}
		categoryID = id
	}

	products, err := s.reader.ListActiveProducts(ctx, categoryID, query.Sort)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "listing products")
	}

	resolved := Resolve(products, query, s.shop.UnderPriceThreshold)
	if len(resolved) == 0 {
		return []Item{}, nil
	}

	ids := make([]uuid.UUID, 0, len(resolved))
	for _, candidate := range resolved {
		ids = append(ids, candidate.ID)
	}
	images, err := s.reader.FirstMediaByProduct(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "listing product media")
	}

	var category *string
	if query.Category != "" {
		category = &query.Category
	}

	items := make([]Item, 0, len(resolved))
	for _, candidate := range resolved {
		item := Item{
			ID:       candidate.ID,
			Slug:     candidate.Slug,
			Title:    candidate.Title,
			Price:    candidate.EffectivePrice,
			Category: category,
		}
		if url, ok := images[candidate.ID]; ok {
			item.Image = &url
		}
		if candidate.OnSale() {
			badge := enums.BadgeSale
			item.Badge = &badge
		}
		items = append(items, item)
	}
	return items, nil
}

// ProductBySlug resolves one product page, or (nil, nil) when the slug does
// not match an active product.
func (s *service) ProductBySlug(ctx context.Context, slug string) (*Detail, error) {
	product, err := s.reader.ProductBySlug(ctx, slug)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "reading product")
	}
	if product == nil {
		return nil, nil
	}

	images, err := s.reader.FirstMediaByProduct(ctx, []uuid.UUID{product.ID})
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "reading product media")
	}

	effective := product.ListPrice
	if product.SalePrice != nil {
		effective = *product.SalePrice
	}

	detail := &Detail{
		ID:          product.ID,
		Slug:        product.Slug,
		Title:       product.Title,
		Description: product.Description,
		Price:       effective,
	}
	if url, ok := images[product.ID]; ok {
		detail.Image = &url
	}
	return detail, nil
}
