package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/delegance/storefront-backend/api/middleware"
	"github.com/delegance/storefront-backend/api/responses"
	"github.com/delegance/storefront-backend/api/validators"
	"github.com/delegance/storefront-backend/internal/cart"
	pkgerrors "github.com/delegance/storefront-backend/pkg/errors"
	"github.com/delegance/storefront-backend/pkg/logger"
)

const maxPersonalizationLen = 200

type cartView struct {
	Items     []cart.LineItem `json:"items"`
	Subtotal  float64         `json:"subtotal"`
	ItemCount int             `json:"item_count"`
}

type addItemRequest struct {
	ID              string  `json:"id" validate:"required"`
	Slug            string  `json:"slug" validate:"required"`
	Title           string  `json:"title" validate:"required"`
	Price           float64 `json:"price" validate:"gte=0"`
	Qty             int     `json:"qty" validate:"omitempty,min=1,max=99"`
	Image           *string `json:"image,omitempty"`
	VariantLabel    *string `json:"variantLabel,omitempty"`
	Personalization *string `json:"personalization,omitempty"`
}

type setQtyRequest struct {
	Qty int `json:"qty" validate:"min=0,max=99"`
}

func sessionStore(ctx context.Context, manager *cart.Manager) (*cart.Store, error) {
	sessionID := middleware.SessionIDFromContext(ctx)
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session missing from request")
	}
	return manager.ForSession(ctx, sessionID), nil
}

func viewOf(store *cart.Store) cartView {
	return cartView{
		Items:     store.Items(),
		Subtotal:  store.Subtotal(),
		ItemCount: store.ItemCount(),
	}
}

// CartFetch returns the session's cart.
func CartFetch(manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		store, err := sessionStore(ctx, manager)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(store))
	}
}

// CartAddItem adds or merges one line. Quantity defaults to 1; the store
// itself never re-validates, so bounds are enforced here.
func CartAddItem(manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req addItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if req.Qty == 0 {
			req.Qty = 1
		}
		if req.Personalization != nil {
			trimmed := validators.SanitizeString(*req.Personalization, maxPersonalizationLen)
			req.Personalization = &trimmed
		}

		store, err := sessionStore(ctx, manager)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		store.AddItem(ctx, cart.LineItem{
			ID:              req.ID,
			Slug:            req.Slug,
			Title:           req.Title,
			Price:           req.Price,
			Image:           req.Image,
			VariantLabel:    req.VariantLabel,
			Personalization: req.Personalization,
		}, req.Qty)

		responses.WriteSuccessStatus(w, http.StatusCreated, viewOf(store))
	}
}

// CartSetQty replaces a line's quantity; zero removes the line.
func CartSetQty(manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req setQtyRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		store, err := sessionStore(ctx, manager)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		store.SetQty(ctx, chi.URLParam(r, "itemId"), req.Qty)
		responses.WriteSuccess(w, viewOf(store))
	}
}

// CartRemoveItem drops one line; removing an absent line still succeeds.
func CartRemoveItem(manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		store, err := sessionStore(ctx, manager)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		store.RemoveItem(ctx, chi.URLParam(r, "itemId"))
		responses.WriteSuccess(w, viewOf(store))
	}
}

// CartClear empties the cart.
func CartClear(manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		store, err := sessionStore(ctx, manager)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		store.Clear(ctx)
		responses.WriteSuccess(w, viewOf(store))
	}
}
