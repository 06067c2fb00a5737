package identity

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aureliajewels/storefront-api/pkg/config"
)

func tokenWithExp(t *testing.T, exp time.Time) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"RS256","typ":"JWT"}`))
	payload, err := json.Marshal(map[string]any{"exp": exp.Unix(), "sub": "user-1"})
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	body := base64.RawURLEncoding.EncodeToString(payload)
	return header + "." + body + ".sig"
}

func TestAccessTokenRequiresSignIn(t *testing.T) {
	t.Parallel()

	provider := NewCachingProvider(config.IdentityConfig{}, nil, nil)
	if provider.IsAuthenticated() {
		t.Fatal("fresh provider must not be authenticated")
	}
	if _, err := provider.AccessToken(context.Background()); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestAccessTokenReturnsCachedWhileFresh(t *testing.T) {
	t.Parallel()

	fetcherCalls := 0
	provider := NewCachingProvider(config.IdentityConfig{TokenLeeway: 30 * time.Second}, func(ctx context.Context) (string, error) {
		fetcherCalls++
		return "refreshed", nil
	}, nil)
	now := time.Unix(1700000000, 0)
	provider.now = func() time.Time { return now }

	provider.SignIn(User{Name: "Ada", Email: "ada@example.com"}, tokenWithExp(t, now.Add(time.Hour)))

	token, err := provider.AccessToken(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetcherCalls != 0 {
		t.Fatalf("expected no refresh for a fresh token, got %d calls", fetcherCalls)
	}
	if token == "" {
		t.Fatal("expected cached token")
	}
}

func TestAccessTokenRefreshesNearExpiry(t *testing.T) {
	t.Parallel()

	provider := NewCachingProvider(config.IdentityConfig{TokenLeeway: 30 * time.Second}, func(ctx context.Context) (string, error) {
		return "refreshed-token", nil
	}, nil)
	now := time.Unix(1700000000, 0)
	provider.now = func() time.Time { return now }

	provider.SignIn(User{Name: "Ada"}, tokenWithExp(t, now.Add(10*time.Second)))

	token, err := provider.AccessToken(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "refreshed-token" {
		t.Fatalf("expected refreshed token, got %q", token)
	}
}

func TestAccessTokenSurfacesRefreshFailure(t *testing.T) {
	t.Parallel()

	refreshErr := errors.New("provider down")
	provider := NewCachingProvider(config.IdentityConfig{}, func(ctx context.Context) (string, error) {
		return "", refreshErr
	}, nil)
	now := time.Unix(1700000000, 0)
	provider.now = func() time.Time { return now }

	provider.SignIn(User{}, tokenWithExp(t, now.Add(-time.Minute)))

	if _, err := provider.AccessToken(context.Background()); !errors.Is(err, refreshErr) {
		t.Fatalf("expected refresh error, got %v", err)
	}
}

func TestOpaqueTokenNeverRefreshes(t *testing.T) {
	t.Parallel()

	fetcherCalls := 0
	provider := NewCachingProvider(config.IdentityConfig{}, func(ctx context.Context) (string, error) {
		fetcherCalls++
		return "refreshed", nil
	}, nil)

	provider.SignIn(User{}, "opaque-session-token")

	token, err := provider.AccessToken(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "opaque-session-token" || fetcherCalls != 0 {
		t.Fatalf("expected opaque token passthrough, got %q after %d refreshes", token, fetcherCalls)
	}
}

func TestLogoutDropsSession(t *testing.T) {
	t.Parallel()

	provider := NewCachingProvider(config.IdentityConfig{}, nil, nil)
	provider.SignIn(User{Name: "Ada", Email: "ada@example.com", Picture: "pic"}, "opaque")

	if !provider.IsAuthenticated() {
		t.Fatal("expected authenticated session after sign-in")
	}
	if user, ok := provider.User(); !ok || user.Name != "Ada" {
		t.Fatalf("unexpected user %+v ok=%v", user, ok)
	}

	provider.Logout()

	if provider.IsAuthenticated() {
		t.Fatal("expected logout to drop the session")
	}
	if _, ok := provider.User(); ok {
		t.Fatal("expected no user after logout")
	}
	if _, err := provider.AccessToken(context.Background()); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated after logout, got %v", err)
	}
}
