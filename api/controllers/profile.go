package controllers

import (
	"net/http"

	"github.com/aureliajewels/storefront-api/api/middleware"
	"github.com/aureliajewels/storefront-api/api/responses"
	"github.com/aureliajewels/storefront-api/api/validators"
	profilesvc "github.com/aureliajewels/storefront-api/internal/profile"
	"github.com/aureliajewels/storefront-api/pkg/backend"
	pkgerrors "github.com/aureliajewels/storefront-api/pkg/errors"
	"github.com/aureliajewels/storefront-api/pkg/logger"
)

type updateProfileRequest struct {
	PhoneNumber string `json:"phone_number"`
	DateOfBirth string `json:"date_of_birth"`
	Bio         string `json:"bio"`
}

type profileView struct {
	Subject string           `json:"subject,omitempty"`
	Profile *backend.Profile `json:"profile"`
	IsOwner bool             `json:"is_owner"`
}

// ProfileFetch returns the account details plus the owner flag that
// reveals the console link.
func ProfileFetch(svc *profilesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile unavailable"))
			return
		}

		profile, err := svc.Get(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profileView{
			Subject: middleware.UserIdentityFromContext(r.Context()),
			Profile: profile,
			IsOwner: svc.IsOwner(r.Context()),
		})
	}
}

// ProfileUpdate saves the editable account fields.
func ProfileUpdate(svc *profilesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile unavailable"))
			return
		}

		var payload updateProfileRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.Update(r.Context(), backend.Profile{
			PhoneNumber: payload.PhoneNumber,
			DateOfBirth: payload.DateOfBirth,
			Bio:         payload.Bio,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}
