package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/omenfeed-io/omen/internal/transport"
	"github.com/omenfeed-io/omen/pkg/omen"
)

// AlertsClient implements omen.AlertsClient.
type AlertsClient struct {
	httpClient *transport.Client
}

// NewAlertsClient creates a new alerts client.
func NewAlertsClient(httpClient *transport.Client) *AlertsClient {
	return &AlertsClient{
		httpClient: httpClient,
	}
}

// ListRules implements omen.AlertsClient.ListRules.
func (c *AlertsClient) ListRules(ctx context.Context, params *omen.QueryParams) (*omen.AlertRuleList, error) {
	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, "/alerts/rules", query)
	if err != nil {
		return nil, fmt.Errorf("listing alert rules: %w", err)
	}

	var list omen.AlertRuleList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing alert rule list: %w", err)
	}

	return &list, nil
}

// Get implements omen.AlertsClient.Get.
func (c *AlertsClient) Get(ctx context.Context, id string) (*omen.Alert, error) {
	resp, err := c.httpClient.Get(ctx, "/alerts/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting alert: %w", err)
	}

	var alert omen.Alert

	err = json.Unmarshal(resp.Body, &alert)
	if err != nil {
		return nil, fmt.Errorf("parsing alert: %w", err)
	}

	return &alert, nil
}

// Search implements omen.AlertsClient.Search.
func (c *AlertsClient) Search(ctx context.Context, params *omen.QueryParams) (*omen.AlertList, error) {
	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, "/alerts/search", query)
	if err != nil {
		return nil, fmt.Errorf("searching alerts: %w", err)
	}

	var list omen.AlertList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing alert list: %w", err)
	}

	return &list, nil
}
