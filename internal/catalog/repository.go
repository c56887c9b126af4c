package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/delegance/storefront-backend/pkg/db"
	"github.com/delegance/storefront-backend/pkg/db/models"
	"github.com/delegance/storefront-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository composes the two catalog reads the pipeline needs: active
// products (optionally scoped to a category id) and the first-position
// media row per product. It never joins the two; the service stitches them.
type Repository struct {
	client *db.Client
}

// NewRepository wires the repository to the shared db client.
func NewRepository(client *db.Client) (*Repository, error) {
	if client == nil {
		return nil, fmt.Errorf("db client is required")
	}
	return &Repository{client: client}, nil
}

// CategoryIDBySlug resolves a category slug to its id. An unknown slug
// returns (nil, nil); callers turn that into an empty listing.
func (r *Repository) CategoryIDBySlug(ctx context.Context, slug string) (*uuid.UUID, error) {
	var category models.Category
	err := r.client.DB().WithContext(ctx).
		Select("id").
		Where("slug = ?", slug).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolving category slug: %w", err)
	}
	return &category.ID, nil
}

// ListActiveProducts reads active products, optionally scoped to one
// category. The storage-side order is a pre-sort only; price sorts are
// re-applied in code over effective prices.
func (r *Repository) ListActiveProducts(ctx context.Context, categoryID *uuid.UUID, sort enums.SortKey) ([]Product, error) {
	query := r.client.DB().WithContext(ctx).
		Model(&models.Product{}).
		Where("is_active = ?", true)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	switch sort {
	case enums.SortKeyPriceAsc:
		query = query.Order("price ASC")
	case enums.SortKeyPriceDesc:
		query = query.Order("price DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var rows []models.Product
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, productFromRow(row))
	}
	return products, nil
}

// ProductBySlug reads one active product, or (nil, nil) when absent.
func (r *Repository) ProductBySlug(ctx context.Context, slug string) (*Product, error) {
	var row models.Product
	err := r.client.DB().WithContext(ctx).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading product by slug: %w", err)
	}
	product := productFromRow(row)
	return &product, nil
}

// FirstMediaByProduct returns the lowest-position image url per product for
// the given id batch.
func (r *Repository) FirstMediaByProduct(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	first := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return first, nil
	}

	var rows []models.ProductMedia
	err := r.client.DB().WithContext(ctx).
		Where("product_id IN ?", ids).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing product media: %w", err)
	}

	for _, row := range rows {
		if _, seen := first[row.ProductID]; !seen {
			first[row.ProductID] = row.URL
		}
	}
	return first, nil
}

func productFromRow(row models.Product) Product {
	return Product{
		ID:          row.ID,
		Slug:        row.Slug,
		Title:       row.Title,
		Description: row.Description,
		ListPrice:   row.Price,
		SalePrice:   row.SalePrice,
		Tags:        row.Tags,
		CreatedAt:   row.CreatedAt,
	}
}
