package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/omenfeed-io/omen/internal/transport"
	"github.com/omenfeed-io/omen/pkg/omen"
)

// EntitiesClient implements omen.EntitiesClient.
type EntitiesClient struct {
	httpClient *transport.Client
	cache      omen.Cache
	cacheTTL   time.Duration
}

// NewEntitiesClient creates a new entities client. The cache may be nil, in
// which case every lookup hits the API.
func NewEntitiesClient(httpClient *transport.Client, cache omen.Cache, cacheTTL time.Duration) *EntitiesClient {
	return &EntitiesClient{
		httpClient: httpClient,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

// Lookup implements omen.EntitiesClient.Lookup. Results are served from the
// cache when one is configured.
func (c *EntitiesClient) Lookup(ctx context.Context, kind, id string) (*omen.Entity, error) {
	path := "/entities/" + url.PathEscape(kind) + "/" + url.PathEscape(id)

	if c.cache != nil {
		entry, err := c.cache.Get(ctx, path)
		if err == nil {
			var cached omen.Entity

			err = json.Unmarshal(entry.Data, &cached)
			if err == nil {
				return &cached, nil
			}
			// Undecodable entry: fall through to the API.
			_ = c.cache.Delete(ctx, path)
		}
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("looking up entity: %w", err)
	}

	var entity omen.Entity

	err = json.Unmarshal(resp.Body, &entity)
	if err != nil {
		return nil, fmt.Errorf("parsing entity: %w", err)
	}

	if c.cache != nil {
		_ = c.cache.Set(ctx, path, &omen.CacheEntry{
			Data:      resp.Body,
			ExpiresAt: time.Now().Add(c.cacheTTL),
			ETag:      resp.Headers.Get("ETag"),
		})
	}

	return &entity, nil
}

// Search implements omen.EntitiesClient.Search.
func (c *EntitiesClient) Search(ctx context.Context, params *omen.QueryParams) (*omen.EntityList, error) {
	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, "/entities/search", query)
	if err != nil {
		return nil, fmt.Errorf("searching entities: %w", err)
	}

	var list omen.EntityList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing entity list: %w", err)
	}

	return &list, nil
}
