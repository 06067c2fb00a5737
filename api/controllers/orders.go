package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aureliajewels/storefront-api/api/responses"
	ordersvc "github.com/aureliajewels/storefront-api/internal/orders"
	"github.com/aureliajewels/storefront-api/pkg/backend"
	pkgerrors "github.com/aureliajewels/storefront-api/pkg/errors"
	"github.com/aureliajewels/storefront-api/pkg/logger"
)

type orderLineView struct {
	backend.OrderItem
	LineAmount string `json:"line_amount"`
}

type orderView struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	TotalAmount string          `json:"total_amount"`
	CreatedAt   string          `json:"created_at"`
	Items       []orderLineView `json:"items"`
}

func newOrderView(order backend.Order) orderView {
	view := orderView{
		ID:          order.ID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount.String(),
		CreatedAt:   order.CreatedAt,
		Items:       make([]orderLineView, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		view.Items = append(view.Items, orderLineView{
			OrderItem:  item,
			LineAmount: ordersvc.LineAmount(item).StringFixed(2),
		})
	}
	return view
}

// OrderPlace submits the checkout. The backend builds the order from the
// server-side cart, so there is no request body to decode.
func OrderPlace(svc *ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders unavailable"))
			return
		}

		order, err := svc.Place(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newOrderView(*order))
	}
}

// OrdersList returns the caller's order history.
func OrdersList(svc *ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders unavailable"))
			return
		}

		orders, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		views := make([]orderView, 0, len(orders))
		for _, order := range orders {
			views = append(views, newOrderView(order))
		}
		responses.WriteSuccess(w, views)
	}
}

// OrderFetch returns one order.
func OrderFetch(svc *ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders unavailable"))
			return
		}

		order, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderView(*order))
	}
}
