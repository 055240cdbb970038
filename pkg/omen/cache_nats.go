package omen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSKVConfig configures the NATS JetStream key-value cache backend.
type NATSKVConfig struct {
	// URL is the NATS server URL (e.g. "nats://localhost:4222").
	URL string
	// Bucket is the KV bucket name; created if it does not exist.
	Bucket string
	// CredentialsFile is an optional NATS credentials file path.
	CredentialsFile string
	// TTL is the bucket-level time-to-live for entries.
	TTL time.Duration
}

// NATSKVCache is a Cache backed by a NATS JetStream key-value bucket,
// letting multiple client processes share lookup results.
type NATSKVCache struct {
	conn *nats.Conn
	kv   nats.KeyValue
}

// NewNATSKVCache connects to NATS and opens (or creates) the KV bucket.
func NewNATSKVCache(config *NATSKVConfig) (*NATSKVCache, error) {
	if config == nil || config.URL == "" {
		return nil, fmt.Errorf("%w: NATS URL required", ErrConfigRequired)
	}

	var opts []nats.Option
	if config.CredentialsFile != "" {
		opts = append(opts, nats.UserCredentials(config.CredentialsFile))
	}

	conn, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	jetStream, err := conn.JetStream()
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("getting JetStream context: %w", err)
	}

	bucket := config.Bucket
	if bucket == "" {
		bucket = "omen-cache"
	}

	kv, err := jetStream.KeyValue(bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		kv, err = jetStream.CreateKeyValue(&nats.KeyValueConfig{
			Bucket: bucket,
			TTL:    config.TTL,
		})
	}

	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("opening KV bucket %q: %w", bucket, err)
	}

	return &NATSKVCache{conn: conn, kv: kv}, nil
}

// Get implements Cache.Get.
func (c *NATSKVCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	kvEntry, err := c.kv.Get(sanitizeKey(key))
	if err != nil {
		if errors.Is(err, nats.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCacheKeyNotFound, key)
		}

		return nil, fmt.Errorf("getting cache entry: %w", err)
	}

	var entry CacheEntry

	err = json.Unmarshal(kvEntry.Value(), &entry)
	if err != nil {
		return nil, fmt.Errorf("decoding cache entry: %w", err)
	}

	if entry.Expired() {
		_ = c.Delete(ctx, key)

		return nil, fmt.Errorf("%w: %s", ErrCacheEntryStale, key)
	}

	return &entry, nil
}

// Set implements Cache.Set.
func (c *NATSKVCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	_, err = c.kv.Put(sanitizeKey(key), data)
	if err != nil {
		return fmt.Errorf("putting cache entry: %w", err)
	}

	return nil
}

// Delete implements Cache.Delete.
func (c *NATSKVCache) Delete(ctx context.Context, key string) error {
	err := c.kv.Delete(sanitizeKey(key))
	if err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
		return fmt.Errorf("deleting cache entry: %w", err)
	}

	return nil
}

// Clear implements Cache.Clear.
func (c *NATSKVCache) Clear(ctx context.Context) error {
	keys, err := c.kv.Keys()
	if err != nil {
		if errors.Is(err, nats.ErrNoKeysFound) {
			return nil
		}

		return fmt.Errorf("listing cache keys: %w", err)
	}

	for _, key := range keys {
		err = c.kv.Delete(key)
		if err != nil {
			return fmt.Errorf("deleting cache entry %q: %w", key, err)
		}
	}

	return nil
}

// Has implements Cache.Has.
func (c *NATSKVCache) Has(ctx context.Context, key string) bool {
	entry, err := c.Get(ctx, key)

	return err == nil && entry != nil
}

// Close releases the NATS connection.
func (c *NATSKVCache) Close() error {
	c.conn.Close()

	return nil
}

// sanitizeKey maps cache keys onto the NATS KV key alphabet. Request-path
// keys carry a leading slash, which must go: NATS KV rejects keys starting
// with ".".
func sanitizeKey(key string) string {
	key = strings.Trim(key, "/")
	replacer := strings.NewReplacer("/", ".", " ", "_", "?", "_", "&", "_", "=", "-")

	return replacer.Replace(key)
}
