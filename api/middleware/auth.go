package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aureliajewels/storefront-api/api/responses"
	"github.com/aureliajewels/storefront-api/pkg/backend"
	pkgerrors "github.com/aureliajewels/storefront-api/pkg/errors"
	"github.com/aureliajewels/storefront-api/pkg/logger"
)

// Auth requires a bearer token and forwards it to the backend for every
// call made under this request. The token is not verified here; the
// backend rejects bad tokens and that rejection is surfaced as-is.
func Auth(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			ctx := backend.ContextWithToken(r.Context(), token)
			if subject := subjectOf(token); subject != "" {
				ctx = WithUserIdentity(ctx, subject)
				if logg != nil {
					ctx = logg.WithUserID(ctx, subject)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// subjectOf pulls the sub claim for log correlation. Unverified on
// purpose; opaque tokens simply yield no subject.
func subjectOf(token string) string {
	if strings.Count(token, ".") != 2 {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	subject, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return subject
}
