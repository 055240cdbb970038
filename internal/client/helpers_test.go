package client

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/omenfeed-io/omen/internal/auth"
	"github.com/omenfeed-io/omen/internal/transport"
	"github.com/omenfeed-io/omen/pkg/omen"
)

// newTestTransport builds a transport client against a test server.
func newTestTransport(t *testing.T, baseURL string) *transport.Client {
	t.Helper()

	config := &omen.Config{
		BaseURL:    baseURL,
		Token:      "test-token",
		AppName:    "test-app",
		PlatformID: "test-platform",
	}

	httpClient, err := transport.NewClient(config, auth.Resolve(config))
	require.NoError(t, err)

	return httpClient
}

// newTestClient builds a full client against a test server.
func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	httpClient := newTestTransport(t, baseURL)

	client := &Client{httpClient: httpClient}
	client.entities = NewEntitiesClient(httpClient, nil, 0)
	client.alerts = NewAlertsClient(httpClient)
	client.fusion = NewFusionClient(httpClient)

	return client
}
