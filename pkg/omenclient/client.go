// Package omenclient provides the main entry point for creating Omen API clients.
package omenclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/omenfeed-io/omen/internal/auth"
	"github.com/omenfeed-io/omen/internal/client"
	"github.com/omenfeed-io/omen/pkg/omen"
)

// New creates a new Omen API client from config. The base URL is normalized
// by trimming a trailing slash and defaulting to https when no scheme is
// present. AppName is required; credentials are optional at construction
// time and checked lazily on the first request.
func New(ctx context.Context, config *omen.Config) (omen.Client, error) {
	if config == nil {
		return nil, omen.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, omen.ErrBaseURLRequired
	}

	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	// Normalize into a copy so the caller's config is left untouched.
	normalized := *config
	normalized.BaseURL = baseURL

	apiClient, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return apiClient, nil
}

// NewWithToken creates a client authenticating with an API token. Pass
// "auto" as the token to discover it from the OMEN_TOKEN environment
// variable.
func NewWithToken(ctx context.Context, endpoint, appName, token string) (omen.Client, error) {
	return New(ctx, &omen.Config{
		BaseURL: endpoint,
		AppName: appName,
		Token:   token,
	})
}

// NewWithSignature creates a client that signs each request with the user's
// shared key instead of sending a token.
func NewWithSignature(ctx context.Context, endpoint, appName, username, userKey string) (omen.Client, error) {
	return New(ctx, &omen.Config{
		BaseURL:    endpoint,
		AppName:    appName,
		Authorizer: auth.NewSignatureAuthorizer(username, userKey),
	})
}
