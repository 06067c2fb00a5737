package controllers

import (
	"net/http"

	"github.com/aureliajewels/storefront-api/api/responses"
	"github.com/aureliajewels/storefront-api/api/validators"
	profilesvc "github.com/aureliajewels/storefront-api/internal/profile"
	"github.com/aureliajewels/storefront-api/pkg/backend"
	pkgerrors "github.com/aureliajewels/storefront-api/pkg/errors"
	"github.com/aureliajewels/storefront-api/pkg/logger"
)

type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// ContactSend relays the contact form through the backend mailer.
func ContactSend(svc *profilesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact unavailable"))
			return
		}

		var payload contactRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		err := svc.SendContactEmail(r.Context(), backend.EmailMessage{
			Name:    payload.Name,
			Email:   payload.Email,
			Phone:   payload.Phone,
			Subject: payload.Subject,
			Message: payload.Message,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "sent"})
	}
}
