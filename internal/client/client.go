package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/omenfeed-io/omen/internal/auth"
	"github.com/omenfeed-io/omen/internal/transport"
	"github.com/omenfeed-io/omen/pkg/omen"
)

// Client implements the omen.Client interface.
type Client struct {
	httpClient *transport.Client
	logger     omen.Logger

	entities omen.EntitiesClient
	alerts   omen.AlertsClient
	fusion   omen.FusionClient
}

// New creates a new Omen API client. Credentials are resolved once here;
// their absence is deferred to the first request.
func New(ctx context.Context, config *omen.Config) (*Client, error) {
	if config == nil {
		return nil, omen.ErrConfigRequired
	}

	authorizer := auth.Resolve(config)

	httpClient, err := transport.NewClient(config, authorizer)
	if err != nil {
		return nil, fmt.Errorf("creating transport: %w", err)
	}

	var cache omen.Cache
	if config.Cache != nil {
		cache, err = omen.NewCacheFromConfig(config.Cache)
		if err != nil {
			return nil, fmt.Errorf("creating cache: %w", err)
		}
	}

	client := &Client{
		httpClient: httpClient,
		logger:     config.Logger,
	}

	client.entities = NewEntitiesClient(httpClient, cache, config.Cache.EntryTTL())
	client.alerts = NewAlertsClient(httpClient)
	client.fusion = NewFusionClient(httpClient)

	return client, nil
}

// Entities implements omen.Client.Entities.
func (c *Client) Entities() omen.EntitiesClient {
	return c.entities
}

// Alerts implements omen.Client.Alerts.
func (c *Client) Alerts() omen.AlertsClient {
	return c.alerts
}

// Fusion implements omen.Client.Fusion.
func (c *Client) Fusion() omen.FusionClient {
	return c.fusion
}

// GetStatus implements omen.Client.GetStatus.
func (c *Client) GetStatus(ctx context.Context) (*omen.Status, error) {
	resp, err := c.httpClient.Get(ctx, "/status", nil)
	if err != nil {
		return nil, fmt.Errorf("getting status: %w", err)
	}

	var status omen.Status

	err = json.Unmarshal(resp.Body, &status)
	if err != nil {
		return nil, fmt.Errorf("parsing status response: %w", err)
	}

	return &status, nil
}

// GetUsage implements omen.Client.GetUsage.
func (c *Client) GetUsage(ctx context.Context) (*omen.Usage, error) {
	resp, err := c.httpClient.Get(ctx, "/usage", nil)
	if err != nil {
		return nil, fmt.Errorf("getting usage: %w", err)
	}

	var usage omen.Usage

	err = json.Unmarshal(resp.Body, &usage)
	if err != nil {
		return nil, fmt.Errorf("parsing usage response: %w", err)
	}

	return &usage, nil
}

// Query implements omen.Client.Query, the raw escape hatch.
func (c *Client) Query(ctx context.Context, method, path string, query url.Values, body any, expectJSON bool) (omen.QueryResponse, error) {
	return c.httpClient.Query(ctx, &transport.Request{
		Method: method,
		Path:   path,
		Query:  query,
		Body:   body,
	}, expectJSON)
}
