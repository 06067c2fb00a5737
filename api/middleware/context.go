package middleware

import "context"

type contextKey string

const ctxUserIdentity contextKey = "user_identity"

// UserIdentityFromContext returns the subject claim of the caller's token.
func UserIdentityFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserIdentity).(string); ok {
		return v
	}
	return ""
}

// WithUserIdentity injects the caller identity into the context.
func WithUserIdentity(ctx context.Context, subject string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserIdentity, subject)
}
