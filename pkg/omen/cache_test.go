package omen_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omenfeed-io/omen/pkg/omen"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	t.Parallel()

	cache := omen.NewMemoryCache(10)
	ctx := context.Background()

	entry := &omen.CacheEntry{
		Data:      []byte("test data"),
		ExpiresAt: time.Now().Add(1 * time.Hour),
		ETag:      "abc123",
	}

	// Set entry
	err := cache.Set(ctx, "key1", entry)
	require.NoError(t, err)

	// Get entry
	retrieved, err := cache.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, retrieved.Data)
	assert.Equal(t, entry.ETag, retrieved.ETag)
}

func TestMemoryCache_GetNonExistent(t *testing.T) {
	t.Parallel()

	cache := omen.NewMemoryCache(10)
	ctx := context.Background()

	_, err := cache.Get(ctx, "nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, omen.ErrCacheKeyNotFound)
}

func TestMemoryCache_GetExpired(t *testing.T) {
	t.Parallel()

	cache := omen.NewMemoryCache(10)
	ctx := context.Background()

	entry := &omen.CacheEntry{
		Data:      []byte("test data"),
		ExpiresAt: time.Now().Add(-1 * time.Hour), // Already expired
	}

	err := cache.Set(ctx, "key1", entry)
	require.NoError(t, err)

	_, err = cache.Get(ctx, "key1")
	require.Error(t, err)
	assert.ErrorIs(t, err, omen.ErrCacheEntryStale)
}

func TestMemoryCache_Delete(t *testing.T) {
	t.Parallel()

	cache := omen.NewMemoryCache(10)
	ctx := context.Background()

	entry := &omen.CacheEntry{
		Data:      []byte("test data"),
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}

	err := cache.Set(ctx, "key1", entry)
	require.NoError(t, err)
	assert.True(t, cache.Has(ctx, "key1"))

	err = cache.Delete(ctx, "key1")
	require.NoError(t, err)

	assert.False(t, cache.Has(ctx, "key1"))
}

func TestMemoryCache_Clear(t *testing.T) {
	t.Parallel()

	cache := omen.NewMemoryCache(10)
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		entry := &omen.CacheEntry{
			Data:      []byte("test data"),
			ExpiresAt: time.Now().Add(1 * time.Hour),
		}
		_ = cache.Set(ctx, key, entry)
	}

	err := cache.Clear(ctx)
	require.NoError(t, err)

	assert.False(t, cache.Has(ctx, "a"))
	assert.False(t, cache.Has(ctx, "b"))
	assert.False(t, cache.Has(ctx, "c"))
}

func TestMemoryCache_MaxSize(t *testing.T) {
	t.Parallel()

	cache := omen.NewMemoryCache(2)
	ctx := context.Background()

	for i, key := range []string{"a", "b", "c"} {
		entry := &omen.CacheEntry{
			Data:      []byte("test data"),
			ExpiresAt: time.Now().Add(time.Duration(i+1) * time.Hour),
		}
		_ = cache.Set(ctx, key, entry)
	}

	// The entry closest to expiry is evicted to stay within bounds.
	assert.False(t, cache.Has(ctx, "a"))
	assert.True(t, cache.Has(ctx, "b"))
	assert.True(t, cache.Has(ctx, "c"))
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	cache := omen.NewNoOpCache()
	ctx := context.Background()

	err := cache.Set(ctx, "key1", &omen.CacheEntry{Data: []byte("x")})
	require.NoError(t, err)

	_, err = cache.Get(ctx, "key1")
	require.ErrorIs(t, err, omen.ErrCacheDisabled)
	assert.False(t, cache.Has(ctx, "key1"))
}

func TestNewCacheFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("nil config defaults to memory", func(t *testing.T) {
		t.Parallel()

		cache, err := omen.NewCacheFromConfig(nil)
		require.NoError(t, err)
		assert.IsType(t, &omen.MemoryCache{}, cache)
	})

	t.Run("none disables caching", func(t *testing.T) {
		t.Parallel()

		cache, err := omen.NewCacheFromConfig(&omen.CacheConfig{Type: omen.CacheTypeNone})
		require.NoError(t, err)
		assert.IsType(t, &omen.NoOpCache{}, cache)
	})

	t.Run("nats requires config", func(t *testing.T) {
		t.Parallel()

		_, err := omen.NewCacheFromConfig(&omen.CacheConfig{Type: omen.CacheTypeNATS})
		require.ErrorIs(t, err, omen.ErrNATSConfigRequired)
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		t.Parallel()

		_, err := omen.NewCacheFromConfig(&omen.CacheConfig{Type: "redis"})
		require.ErrorIs(t, err, omen.ErrUnsupportedCacheType)
	})
}

func TestSanitizeCacheKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{
			name:     "entity lookup path",
			key:      "/entities/ip/1.2.3.4",
			expected: "entities.ip.1.2.3.4",
		},
		{
			name:     "path with query",
			key:      "/entities/search?name=example&limit=5",
			expected: "entities.search_name-example_limit-5",
		},
		{
			name:     "trailing slash",
			key:      "/status/",
			expected: "status",
		},
		{
			name:     "plain key untouched",
			key:      "entities.ip.1.2.3.4",
			expected: "entities.ip.1.2.3.4",
		},
	}

	// Keys must stay inside the NATS KV alphabet and must not start or end
	// with a dot.
	validKey := regexp.MustCompile(`^[-/_=a-zA-Z0-9]([-/_=.a-zA-Z0-9]*[-/_=a-zA-Z0-9])?$`)

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			sanitized := omen.SanitizeCacheKey(testCase.key)
			assert.Equal(t, testCase.expected, sanitized)
			assert.Regexp(t, validKey, sanitized)
		})
	}
}
