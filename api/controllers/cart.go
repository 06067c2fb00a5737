package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aureliajewels/storefront-api/api/responses"
	"github.com/aureliajewels/storefront-api/api/validators"
	cartsvc "github.com/aureliajewels/storefront-api/internal/cart"
	"github.com/aureliajewels/storefront-api/pkg/backend"
	pkgerrors "github.com/aureliajewels/storefront-api/pkg/errors"
	"github.com/aureliajewels/storefront-api/pkg/logger"
)

type cartView struct {
	Items    []backend.CartItem `json:"items"`
	Subtotal string             `json:"subtotal"`
}

type addCartItemRequest struct {
	ProductID string `json:"jewelry_item_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

// requestAuth reports a session based on the forwarded bearer token, so
// the reconciler's sign-in check works per request.
type requestAuth struct{ ctx context.Context }

func (a requestAuth) IsAuthenticated() bool {
	return backend.TokenFromContext(a.ctx) != ""
}

func newCartReconciler(r *http.Request, api cartsvc.API, logg *logger.Logger) (*cartsvc.Reconciler, error) {
	return cartsvc.NewReconciler(api, requestAuth{ctx: r.Context()}, logg)
}

func writeCart(w http.ResponseWriter, reconciler *cartsvc.Reconciler) {
	responses.WriteSuccess(w, cartView{
		Items:    reconciler.Items(),
		Subtotal: reconciler.Subtotal().StringFixed(2),
	})
}

// CartFetch returns the caller's cart with the display subtotal.
func CartFetch(api cartsvc.API, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		reconciler, err := newCartReconciler(r, api, logg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := reconciler.Fetch(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, reconciler)
	}
}

// CartAdd puts a product into the cart and returns the refreshed cart.
func CartAdd(api cartsvc.API, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reconciler, err := newCartReconciler(r, api, logg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := reconciler.Add(r.Context(), payload.ProductID, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, reconciler)
	}
}

// CartItemUpdate changes one line's quantity and returns the refreshed
// cart. Non-positive quantities are rejected before any backend call.
func CartItemUpdate(api cartsvc.API, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reconciler, err := newCartReconciler(r, api, logg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID := chi.URLParam(r, "id")
		if err := reconciler.UpdateQuantity(r.Context(), itemID, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, reconciler)
	}
}

// CartItemRemove deletes one line and returns the refreshed cart.
func CartItemRemove(api cartsvc.API, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		reconciler, err := newCartReconciler(r, api, logg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID := chi.URLParam(r, "id")
		if err := reconciler.Remove(r.Context(), itemID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, reconciler)
	}
}
