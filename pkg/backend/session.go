package backend

import (
	"context"
	"sync"
)

// Session holds the bearer token attached to outgoing backend requests.
// It replaces the ambient token-in-local-storage pattern with an explicit
// object injected into the client; once set, the token rides along on every
// request until Clear is called.
type Session struct {
	mu    sync.RWMutex
	token string
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) SetToken(token string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Clear() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}

// Authenticated reports whether a token is currently present.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

type tokenCtxKey struct{}

// ContextWithToken overrides the session token for calls made with this
// context. The gateway uses it to forward each caller's own bearer token.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenCtxKey{}, token)
}

// TokenFromContext returns the per-request token override, if any.
func TokenFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if token, ok := ctx.Value(tokenCtxKey{}).(string); ok {
		return token
	}
	return ""
}
