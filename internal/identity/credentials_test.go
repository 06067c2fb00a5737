package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aureliajewels/storefront-api/pkg/config"
)

func TestClientCredentialsPostsGrant(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotBody credentialsRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding grant body: %v", err)
		}
		w.Write([]byte(`{"access_token":"svc-token","token_type":"Bearer"}`))
	}))
	defer server.Close()

	fetcher := ClientCredentials(config.IdentityConfig{
		Domain:       server.URL,
		ClientID:     "client-1",
		ClientSecret: "shhh",
		Audience:     "https://api.aurelia.example",
	}, server.Client())

	token, err := fetcher(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "svc-token" {
		t.Fatalf("unexpected token %q", token)
	}
	if gotPath != "/oauth/token" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotBody.GrantType != "client_credentials" || gotBody.ClientID != "client-1" || gotBody.Audience != "https://api.aurelia.example" {
		t.Fatalf("unexpected grant body %+v", gotBody)
	}
}

func TestClientCredentialsRejectsErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"access_denied"}`))
	}))
	defer server.Close()

	fetcher := ClientCredentials(config.IdentityConfig{Domain: server.URL, ClientID: "client-1"}, server.Client())
	if _, err := fetcher(context.Background()); err == nil {
		t.Fatal("expected error for non-200 token response")
	}
}

func TestTokenEndpointAddsScheme(t *testing.T) {
	t.Parallel()

	if got := tokenEndpoint("aurelia.eu.auth0.com"); got != "https://aurelia.eu.auth0.com/oauth/token" {
		t.Fatalf("unexpected endpoint %q", got)
	}
	if got := tokenEndpoint("http://localhost:9999/"); got != "http://localhost:9999/oauth/token" {
		t.Fatalf("unexpected endpoint %q", got)
	}
}
