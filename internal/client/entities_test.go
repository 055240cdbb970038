package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omenfeed-io/omen/pkg/omen"
)

func TestEntitiesClient_Lookup(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/entities/IpAddress/1.2.3.4", request.URL.Path)

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(omen.Entity{
			ID:        "ip:1.2.3.4",
			Name:      "1.2.3.4",
			Type:      "IpAddress",
			RiskScore: 87,
			RiskLevel: "high",
		})
	}))
	defer server.Close()

	entities := NewEntitiesClient(newTestTransport(t, server.URL), nil, 0)

	entity, err := entities.Lookup(context.Background(), "IpAddress", "1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, "ip:1.2.3.4", entity.ID)
	assert.Equal(t, 87, entity.RiskScore)
}

func TestEntitiesClient_LookupCached(t *testing.T) {
	t.Parallel()

	hits := 0

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		hits++

		writer.Header().Set("Content-Type", "application/json")
		writer.Header().Set("ETag", "v1")
		_ = json.NewEncoder(writer).Encode(omen.Entity{ID: "ip:1.2.3.4", Type: "IpAddress"})
	}))
	defer server.Close()

	cache := omen.NewMemoryCache(10)
	entities := NewEntitiesClient(newTestTransport(t, server.URL), cache, time.Minute)

	ctx := context.Background()

	first, err := entities.Lookup(ctx, "IpAddress", "1.2.3.4")
	require.NoError(t, err)

	second, err := entities.Lookup(ctx, "IpAddress", "1.2.3.4")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, hits)
	assert.True(t, cache.Has(ctx, "/entities/IpAddress/1.2.3.4"))
}

func TestEntitiesClient_LookupError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(writer).Encode(map[string]string{"error": "entity not found"})
	}))
	defer server.Close()

	entities := NewEntitiesClient(newTestTransport(t, server.URL), nil, 0)

	_, err := entities.Lookup(context.Background(), "IpAddress", "255.255.255.255")
	require.Error(t, err)

	httpErr := &omen.HTTPError{}
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "entity not found", httpErr.Message)
}

func TestEntitiesClient_Search(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/entities/search", request.URL.Path)
		assert.Equal(t, "10", request.URL.Query().Get("limit"))
		assert.Equal(t, "IpAddress", request.URL.Query().Get("types"))

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(omen.EntityList{
			Counts: omen.ListCounts{Returned: 1, Total: 42},
			Data:   []omen.Entity{{ID: "ip:1.2.3.4"}},
		})
	}))
	defer server.Close()

	entities := NewEntitiesClient(newTestTransport(t, server.URL), nil, 0)

	params := omen.NewQueryParams().WithLimit(10).WithFilter("types", "IpAddress")

	list, err := entities.Search(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 42, list.Counts.Total)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "ip:1.2.3.4", list.Data[0].ID)
}
