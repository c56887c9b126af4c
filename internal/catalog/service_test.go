package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/delegance/storefront-backend/pkg/config"
	pkgerrors "github.com/delegance/storefront-backend/pkg/errors"
	"github.com/delegance/storefront-backend/pkg/enums"
	"github.com/delegance/storefront-backend/pkg/logger"
	"github.com/google/uuid"
)

type stubReader struct {
	categories map[string]uuid.UUID
	products   []Product
	images     map[uuid.UUID]string
	detail     *Product

	categoryErr error
	listErr     error
	mediaErr    error
	detailErr   error

	listedCategoryID *uuid.UUID
}

func (s *stubReader) CategoryIDBySlug(_ context.Context, slug string) (*uuid.UUID, error) {
	if s.categoryErr != nil {
		return nil, s.categoryErr
	}
	if id, ok := s.categories[slug]; ok {
		return &id, nil
	}
	return nil, nil
}

func (s *stubReader) ListActiveProducts(_ context.Context, categoryID *uuid.UUID, _ enums.SortKey) ([]Product, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	s.listedCategoryID = categoryID
	return s.products, nil
}

func (s *stubReader) ProductBySlug(context.Context, string) (*Product, error) {
	if s.detailErr != nil {
		return nil, s.detailErr
	}
	return s.detail, nil
}

func (s *stubReader) FirstMediaByProduct(context.Context, []uuid.UUID) (map[uuid.UUID]string, error) {
	if s.mediaErr != nil {
		return nil, s.mediaErr
	}
	return s.images, nil
}

func newTestService(t *testing.T, reader *stubReader) Service {
	t.Helper()
	svc, err := NewService(reader, config.ShopConfig{UnderPriceThreshold: 25}, logger.New(logger.Options{}), nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestListProducts_ProjectsBadgeAndImage(t *testing.T) {
	saleID := uuid.New()
	plainID := uuid.New()
	sale := 20.0
	reader := &stubReader{
		products: []Product{
			{ID: saleID, Slug: "couples-pack", Title: "Couples Pack", ListPrice: 30, SalePrice: &sale, CreatedAt: time.Now()},
			{ID: plainID, Slug: "summer-set", Title: "Summer Set", ListPrice: 18, CreatedAt: time.Now().Add(-time.Hour)},
		},
		images: map[uuid.UUID]string{saleID: "https://cdn.example.com/couples.jpg"},
	}
	svc := newTestService(t, reader)

	items, err := svc.ListProducts(context.Background(), Query{Sort: enums.SortKeyNew})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected two items, got %d", len(items))
	}

	onSale := items[0]
	if onSale.Price != 20 {
		t.Fatalf("expected effective price 20, got %v", onSale.Price)
	}
	if onSale.Badge == nil || *onSale.Badge != enums.BadgeSale {
		t.Fatalf("expected sale badge, got %v", onSale.Badge)
	}
	if onSale.Image == nil || *onSale.Image != "https://cdn.example.com/couples.jpg" {
		t.Fatalf("expected first-position image, got %v", onSale.Image)
	}

	plain := items[1]
	if plain.Badge != nil {
		t.Fatalf("expected no badge, got %v", plain.Badge)
	}
	if plain.Image != nil {
		t.Fatalf("expected no image, got %v", plain.Image)
	}
}

func TestListProducts_UnknownCategoryIsEmptyNotError(t *testing.T) {
	reader := &stubReader{products: []Product{{ID: uuid.New(), Slug: "summer-set", Title: "Summer Set", ListPrice: 18}}}
	svc := newTestService(t, reader)

	items, err := svc.ListProducts(context.Background(), Query{Category: "no-such-category"})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("unknown category must yield empty listing, got %d items", len(items))
	}
	if reader.listedCategoryID != nil {
		t.Fatal("products must not be listed for an unknown category")
	}
}

func TestListProducts_PseudoCategorySkipsCategoryLookup(t *testing.T) {
	sale := 20.0
	reader := &stubReader{
		// No categories registered; the lookup would yield empty.
		products: []Product{
			{ID: uuid.New(), Slug: "couples-pack", Title: "Couples Pack", ListPrice: 30, SalePrice: &sale},
			{ID: uuid.New(), Slug: "deluxe-hamper", Title: "Deluxe Hamper", ListPrice: 45},
		},
		images: map[uuid.UUID]string{},
	}
	svc := newTestService(t, reader)

	items, err := svc.ListProducts(context.Background(), Query{Category: PseudoCategoryUnderPrice})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(items) != 1 || items[0].Slug != "couples-pack" {
		t.Fatalf("expected only the discounted product, got %+v", items)
	}
}

func TestListProducts_FetchFailurePropagates(t *testing.T) {
	reader := &stubReader{listErr: errors.New("connection refused")}
	svc := newTestService(t, reader)

	_, err := svc.ListProducts(context.Background(), Query{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !pkgerrors.Is(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestProductBySlug_Detail(t *testing.T) {
	id := uuid.New()
	sale := 19.5
	description := "A curated rose arrangement."
	reader := &stubReader{
		detail: &Product{ID: id, Slug: "gift-box-rose", Title: "Gift Box (Rose)", Description: &description, ListPrice: 22, SalePrice: &sale},
		images: map[uuid.UUID]string{id: "https://cdn.example.com/rose.jpg"},
	}
	svc := newTestService(t, reader)

	detail, err := svc.ProductBySlug(context.Background(), "gift-box-rose")
	if err != nil {
		t.Fatalf("ProductBySlug: %v", err)
	}
	if detail == nil || detail.Price != 19.5 {
		t.Fatalf("expected effective price 19.5, got %+v", detail)
	}
	if detail.Image == nil || *detail.Image != "https://cdn.example.com/rose.jpg" {
		t.Fatalf("expected image, got %v", detail.Image)
	}
}

func TestProductBySlug_MissingIsNilNotError(t *testing.T) {
	svc := newTestService(t, &stubReader{})
	detail, err := svc.ProductBySlug(context.Background(), "no-such-slug")
	if err != nil {
		t.Fatalf("ProductBySlug: %v", err)
	}
	if detail != nil {
		t.Fatalf("expected nil detail, got %+v", detail)
	}
}
