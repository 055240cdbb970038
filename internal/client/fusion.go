package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/omenfeed-io/omen/internal/transport"
	"github.com/omenfeed-io/omen/pkg/omen"
)

// FusionClient implements omen.FusionClient. Fusion files are served as CSV
// or plain text, so responses come back as the non-JSON wrappers.
type FusionClient struct {
	httpClient *transport.Client
}

// NewFusionClient creates a new fusion client.
func NewFusionClient(httpClient *transport.Client) *FusionClient {
	return &FusionClient{
		httpClient: httpClient,
	}
}

// GetFile implements omen.FusionClient.GetFile. The returned wrapper is
// *omen.CSVResponse for CSV content and *omen.TextResponse otherwise.
func (c *FusionClient) GetFile(ctx context.Context, path string) (omen.QueryResponse, error) {
	query := url.Values{"path": []string{path}}

	resp, err := c.httpClient.Query(ctx, &transport.Request{
		Method: http.MethodGet,
		Path:   "/fusion/files",
		Query:  query,
	}, false)
	if err != nil {
		return nil, fmt.Errorf("getting fusion file: %w", err)
	}

	return resp, nil
}
