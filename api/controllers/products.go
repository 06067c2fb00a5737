package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aureliajewels/storefront-api/api/responses"
	catalogmodel "github.com/aureliajewels/storefront-api/internal/catalog"
	reviewsvc "github.com/aureliajewels/storefront-api/internal/reviews"
	"github.com/aureliajewels/storefront-api/pkg/backend"
	pkgerrors "github.com/aureliajewels/storefront-api/pkg/errors"
	"github.com/aureliajewels/storefront-api/pkg/logger"
)

type productView struct {
	Product       *backend.Product `json:"product"`
	Reviews       []backend.Review `json:"reviews"`
	AverageRating float64          `json:"average_rating"`
	Stars         int              `json:"stars"`
}

// ProductDetails serves one product with its reviews and rating aggregate.
// A review fetch failure degrades to an empty list rather than failing the
// page.
func ProductDetails(api catalogmodel.API, reviewsAPI reviewsvc.API, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api == nil || reviewsAPI == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		productID := chi.URLParam(r, "id")
		model, err := catalogmodel.NewModel(api, logg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := model.ProductDetails(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, err := reviewsAPI.Reviews(r.Context(), productID)
		if err != nil {
			logg.Warn(r.Context(), "review load failed")
			entries = nil
		}

		responses.WriteSuccess(w, productView{
			Product:       product,
			Reviews:       entries,
			AverageRating: reviewsvc.AverageRating(entries),
			Stars:         reviewsvc.StarCount(entries),
		})
	}
}
