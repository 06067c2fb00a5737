package controllers

import (
	"net/http"

	"github.com/aureliajewels/storefront-api/api/responses"
	noticesvc "github.com/aureliajewels/storefront-api/internal/notices"
	pkgerrors "github.com/aureliajewels/storefront-api/pkg/errors"
	"github.com/aureliajewels/storefront-api/pkg/logger"
)

// NoticesList returns all notices partitioned into the three banner
// groups.
func NoticesList(svc *noticesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notices unavailable"))
			return
		}

		groups, err := svc.Load(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, groups)
	}
}
