package controllers

import (
	"net/http"

	"github.com/delegance/storefront-backend/api/middleware"
	"github.com/delegance/storefront-backend/api/responses"
	"github.com/delegance/storefront-backend/api/validators"
	"github.com/delegance/storefront-backend/internal/cart"
	"github.com/delegance/storefront-backend/internal/checkout"
	"github.com/delegance/storefront-backend/pkg/enums"
	pkgerrors "github.com/delegance/storefront-backend/pkg/errors"
	"github.com/delegance/storefront-backend/pkg/logger"
)

const (
	maxNameLen  = 120
	maxNotesLen = 1000
)

type draftRequest struct {
	Name   string `json:"name" validate:"max=120"`
	Notes  string `json:"notes" validate:"max=1000"`
	Method string `json:"method" validate:"omitempty,oneof=pickup delivery"`
}

// DraftFetch returns the session's draft, or null when none was saved.
func DraftFetch(manager *checkout.DraftManager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID := middleware.SessionIDFromContext(ctx)
		if sessionID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing from request"))
			return
		}
		responses.WriteSuccess(w, manager.ForSession(sessionID).Load(ctx))
	}
}

// DraftSave overwrites the whole draft with the submitted fields. Autosave
// calls this on every edit, so the handler stays cheap.
func DraftSave(manager *checkout.DraftManager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req draftRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(ctx)
		if sessionID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing from request"))
			return
		}

		method := enums.DeliveryMethod(req.Method)
		saved := manager.ForSession(sessionID).Save(ctx, checkout.Draft{
			Name:   validators.SanitizeString(req.Name, maxNameLen),
			Notes:  validators.SanitizeString(req.Notes, maxNotesLen),
			Method: method,
		})
		responses.WriteSuccess(w, saved)
	}
}

// DraftClear deletes the draft; the cart is untouched.
func DraftClear(manager *checkout.DraftManager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID := middleware.SessionIDFromContext(ctx)
		if sessionID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing from request"))
			return
		}
		manager.ForSession(sessionID).Clear(ctx)
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

// CheckoutHandoff renders the WhatsApp confirmation and payment link for
// the current cart and draft. An empty cart cannot hand off, and a delivery
// draft below the minimum subtotal is rejected.
func CheckoutHandoff(cartManager *cart.Manager, draftManager *checkout.DraftManager, builder *checkout.Builder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID := middleware.SessionIDFromContext(ctx)
		if sessionID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing from request"))
			return
		}

		store := cartManager.ForSession(ctx, sessionID)
		items := store.Items()
		if len(items) == 0 {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty"))
			return
		}

		subtotal := store.Subtotal()
		draft := draftManager.ForSession(sessionID).Load(ctx)
		if draft != nil && draft.Method == enums.DeliveryMethodDelivery && !builder.DeliveryAllowed(subtotal) {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "delivery requires a higher subtotal").
				WithDetails(map[string]any{"subtotal": subtotal}))
			return
		}

		responses.WriteSuccess(w, builder.Build(items, subtotal, draft))
	}
}
