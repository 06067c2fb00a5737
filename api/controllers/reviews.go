package controllers

import (
	"context"
	"net/http"

	"github.com/aureliajewels/storefront-api/api/responses"
	"github.com/aureliajewels/storefront-api/api/validators"
	reviewsvc "github.com/aureliajewels/storefront-api/internal/reviews"
	"github.com/aureliajewels/storefront-api/pkg/backend"
	pkgerrors "github.com/aureliajewels/storefront-api/pkg/errors"
	"github.com/aureliajewels/storefront-api/pkg/logger"
)

type createReviewRequest struct {
	ProductID string `json:"jewelry_item" validate:"required"`
	Rating    int    `json:"rating" validate:"required"`
	Comment   string `json:"comment"`
}

// requestTokens satisfies the review token-source contract with the
// caller's forwarded bearer token.
type requestTokens struct{}

func (requestTokens) AccessToken(ctx context.Context) (string, error) {
	token := backend.TokenFromContext(ctx)
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to leave a review")
	}
	return token, nil
}

// ReviewsList returns all reviews for one product.
func ReviewsList(api reviewsvc.API, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews unavailable"))
			return
		}

		productID := r.URL.Query().Get("product_id")
		svc, err := reviewsvc.NewService(api, requestTokens{}, nil, logg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entries, err := svc.Load(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"reviews":        entries,
			"average_rating": reviewsvc.AverageRating(entries),
			"stars":          reviewsvc.StarCount(entries),
		})
	}
}

// ReviewCreate validates and submits a review, echoing the stored record.
func ReviewCreate(api reviewsvc.API, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews unavailable"))
			return
		}

		var payload createReviewRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		svc, err := reviewsvc.NewService(api, requestTokens{}, nil, logg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		review, err := svc.Submit(r.Context(), payload.ProductID, payload.Rating, payload.Comment)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, review)
	}
}
