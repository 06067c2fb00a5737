// Package identity wraps the external identity provider. The storefront
// never verifies token signatures itself; the jewelry backend does that.
// This package only decides when a cached token is stale enough to refresh.
package identity

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aureliajewels/storefront-api/pkg/config"
	"github.com/aureliajewels/storefront-api/pkg/logger"
)

// ErrNotAuthenticated is returned when no session exists and a token is
// requested. Callers surface this as a sign-in prompt, never as a retry.
var ErrNotAuthenticated = errors.New("not authenticated")

// User is the provider-sourced profile shown in the account menu.
type User struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// TokenFetcher obtains a fresh access token from the provider. The silent
// refresh flow lives behind this so tests can swap it out.
type TokenFetcher func(ctx context.Context) (string, error)

// Provider is the identity collaborator contract: session state, the
// current user, silent token access, and logout.
type Provider interface {
	IsAuthenticated() bool
	User() (User, bool)
	AccessToken(ctx context.Context) (string, error)
	Logout()
}

// CachingProvider caches the bearer token and refreshes it through the
// fetcher when the JWT exp claim is within the configured leeway. The exp
// claim is parsed without signature verification on purpose.
type CachingProvider struct {
	mu      sync.Mutex
	token   string
	expires time.Time
	user    User
	signed  bool

	fetcher TokenFetcher
	leeway  time.Duration
	logger  *logger.Logger
	now     func() time.Time
}

func NewCachingProvider(cfg config.IdentityConfig, fetcher TokenFetcher, logg *logger.Logger) *CachingProvider {
	leeway := cfg.TokenLeeway
	if leeway <= 0 {
		leeway = 30 * time.Second
	}
	return &CachingProvider{
		fetcher: fetcher,
		leeway:  leeway,
		logger:  logg,
		now:     time.Now,
	}
}

// SignIn records a fresh session for the given user and token.
func (p *CachingProvider) SignIn(user User, token string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.user = user
	p.token = token
	p.expires = expiryOf(token)
	p.signed = true
}

func (p *CachingProvider) IsAuthenticated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.signed
}

func (p *CachingProvider) User() (User, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.user, p.signed
}

// AccessToken returns the cached token, refreshing it through the fetcher
// when it is missing or expires within the leeway window.
func (p *CachingProvider) AccessToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.signed {
		return "", ErrNotAuthenticated
	}
	if p.token != "" && !p.stale() {
		return p.token, nil
	}
	if p.fetcher == nil {
		return "", ErrNotAuthenticated
	}

	token, err := p.fetcher(ctx)
	if err != nil {
		if p.logger != nil {
			p.logger.Warn(ctx, "token refresh failed")
		}
		return "", err
	}
	p.token = token
	p.expires = expiryOf(token)
	return token, nil
}

// Logout drops the session. The next AccessToken call fails until SignIn.
func (p *CachingProvider) Logout() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = ""
	p.expires = time.Time{}
	p.user = User{}
	p.signed = false
}

// stale reports whether the cached token expires within the leeway window.
// Tokens without a readable exp claim are treated as non-expiring.
func (p *CachingProvider) stale() bool {
	if p.expires.IsZero() {
		return false
	}
	return !p.now().Add(p.leeway).Before(p.expires)
}

func expiryOf(token string) time.Time {
	if strings.Count(token, ".") != 2 {
		return time.Time{}
	}
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
