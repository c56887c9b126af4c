package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/delegance/storefront-backend/api/responses"
	"github.com/delegance/storefront-backend/api/validators"
	"github.com/delegance/storefront-backend/internal/catalog"
	pkgerrors "github.com/delegance/storefront-backend/pkg/errors"
	"github.com/delegance/storefront-backend/pkg/logger"
)

const maxListingLimit = 100

// ShopProducts serves the catalog listing. Query parameters mirror the
// storefront URL: c (category slug or the under-price rule), q (search),
// tag, sort, and an optional limit cap.
func ShopProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sort, err := validators.ParseSortKey(r, "sort")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, maxListingLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		query := catalog.Query{
			Category: strings.TrimSpace(r.URL.Query().Get("c")),
			Search:   strings.TrimSpace(r.URL.Query().Get("q")),
			Tag:      strings.TrimSpace(r.URL.Query().Get("tag")),
			Sort:     sort,
		}

		items, err := svc.ListProducts(ctx, query)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if limit > 0 && len(items) > limit {
			items = items[:limit]
		}
		responses.WriteSuccess(w, items)
	}
}

// ShopProductBySlug serves one product page.
func ShopProductBySlug(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		slug := chi.URLParam(r, "slug")

		detail, err := svc.ProductBySlug(ctx, slug)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if detail == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, detail)
	}
}
