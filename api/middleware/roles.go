package middleware

import (
	"context"
	"net/http"

	"github.com/aureliajewels/storefront-api/api/responses"
	"github.com/aureliajewels/storefront-api/pkg/logger"
)

// OwnerGate checks the caller's role against the backend.
type OwnerGate interface {
	EnsureOwner(ctx context.Context) error
}

// RequireOwner blocks non-owner callers before the console handlers run.
func RequireOwner(gate OwnerGate, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := gate.EnsureOwner(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
