package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aureliajewels/storefront-api/pkg/config"
)

type credentialsRequest struct {
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Audience     string `json:"audience,omitempty"`
}

type credentialsResponse struct {
	AccessToken string `json:"access_token"`
}

// ClientCredentials builds a fetcher running the machine-to-machine grant
// against the provider's token endpoint. Used for the storefront's own
// service credential, never for caller tokens.
func ClientCredentials(cfg config.IdentityConfig, httpClient *http.Client) TokenFetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	endpoint := tokenEndpoint(cfg.Domain)

	return func(ctx context.Context) (string, error) {
		payload, err := json.Marshal(credentialsRequest{
			GrantType:    "client_credentials",
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Audience:     cfg.Audience,
		})
		if err != nil {
			return "", fmt.Errorf("encoding token request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return "", fmt.Errorf("building token request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := httpClient.Do(req)
		if err != nil {
			return "", fmt.Errorf("requesting token: %w", err)
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("reading token response: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("token endpoint returned %d", resp.StatusCode)
		}

		var decoded credentialsResponse
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return "", fmt.Errorf("decoding token response: %w", err)
		}
		if decoded.AccessToken == "" {
			return "", fmt.Errorf("token endpoint returned no access token")
		}
		return decoded.AccessToken, nil
	}
}

func tokenEndpoint(domain string) string {
	domain = strings.TrimRight(strings.TrimSpace(domain), "/")
	if !strings.HasPrefix(domain, "http://") && !strings.HasPrefix(domain, "https://") {
		domain = "https://" + domain
	}
	return domain + "/oauth/token"
}
