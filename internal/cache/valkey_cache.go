package cache

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

// valkeyCache implements Cache using Valkey. Every key is namespaced so
// several databases can share one Valkey instance.
type valkeyCache struct {
	client    valkey.Client
	namespace string
}

// NewValkeyCache creates a new Valkey-backed cache whose keys are prefixed with namespace
func NewValkeyCache(valkeyURL, namespace string) (Cache, error) {
	addr, password, err := parseValkeyURL(valkeyURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Valkey URL: %w", err)
	}

	clientOption := valkey.ClientOption{
		InitAddress: []string{addr},
		// Reads always go to the server
		DisableCache: true,
	}
	if password != "" {
		clientOption.Password = password
	}

	client, err := valkey.NewClient(clientOption)
	if err != nil {
		return nil, fmt.Errorf("failed to create Valkey client: %w", err)
	}

	cache := &valkeyCache{
		client:    client,
		namespace: namespace,
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := cache.Health(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	return cache, nil
}

func (c *valkeyCache) key(key string) string {
	return namespacedKey(c.namespace, key)
}

// Get retrieves a value from Valkey
func (c *valkeyCache) Get(ctx context.Context, key string) ([]byte, error) {
	cmd := c.client.B().Get().Key(c.key(key)).Build()
	result := c.client.Do(ctx, cmd)

	if result.Error() != nil {
		if valkey.IsValkeyNil(result.Error()) {
			return nil, nil
		}
		return nil, &CacheError{Operation: "get", Key: key, Err: result.Error()}
	}

	data, err := result.AsBytes()
	if err != nil {
		return nil, &CacheError{Operation: "get", Key: key, Err: err}
	}

	return data, nil
}

// Set stores a value in Valkey with expiration
func (c *valkeyCache) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	var cmd valkey.Completed
	if expiration > 0 {
		cmd = c.client.B().Set().Key(c.key(key)).Value(valkey.BinaryString(value)).Ex(expiration).Build()
	} else {
		cmd = c.client.B().Set().Key(c.key(key)).Value(valkey.BinaryString(value)).Build()
	}

	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		return &CacheError{Operation: "set", Key: key, Err: err}
	}
	return nil
}

// Delete removes a key from Valkey
func (c *valkeyCache) Delete(ctx context.Context, key string) error {
	cmd := c.client.B().Del().Key(c.key(key)).Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		return &CacheError{Operation: "delete", Key: key, Err: err}
	}
	return nil
}

// Close closes the Valkey connection
func (c *valkeyCache) Close() error {
	c.client.Close()
	return nil
}

// Health checks Valkey health
func (c *valkeyCache) Health(ctx context.Context) error {
	cmd := c.client.B().Ping().Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("Valkey health check failed: %w", err)
	}
	return nil
}

func namespacedKey(namespace, key string) string {
	if namespace == "" {
		return key
	}
	return namespace + ":" + key
}

// parseValkeyURL extracts connection details from Valkey URL
func parseValkeyURL(valkeyURL string) (address, password string, err error) {
	u, err := url.Parse(valkeyURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid URL format: %w", err)
	}

	if u.Host == "" {
		return "", "", fmt.Errorf("missing host in URL")
	}
	address = u.Host

	if u.User != nil {
		password, _ = u.User.Password()
	}

	return address, password, nil
}

// MultiLevelCache keeps recently used payloads in memory in front of another Cache.
// The HTTP API uses it so concurrent requests for the same report skip Valkey.
type MultiLevelCache struct {
	l1Cache    map[string]cacheItem
	l2Cache    Cache
	l1MaxItems int
	l1MaxTTL   time.Duration
	mu         sync.RWMutex // Protects l1Cache
}

type cacheItem struct {
	data      []byte
	expiresAt time.Time
}

// NewMultiLevelCache wraps l2 with an in-memory level holding at most l1MaxItems entries
func NewMultiLevelCache(l2 Cache, l1MaxItems int, l1MaxTTL time.Duration) *MultiLevelCache {
	if l1MaxItems <= 0 {
		l1MaxItems = 64
	}
	if l1MaxTTL <= 0 {
		l1MaxTTL = time.Minute
	}
	return &MultiLevelCache{
		l1Cache:    make(map[string]cacheItem),
		l2Cache:    l2,
		l1MaxItems: l1MaxItems,
		l1MaxTTL:   l1MaxTTL,
	}
}

// Get retrieves from L1 first, then L2
func (c *MultiLevelCache) Get(ctx context.Context, key string) ([]byte, error) {
	now := time.Now()

	c.mu.RLock()
	item, exists := c.l1Cache[key]
	c.mu.RUnlock()

	if exists {
		if now.Before(item.expiresAt) {
			return item.data, nil
		}
		c.mu.Lock()
		// Double-check after acquiring write lock
		if item, exists := c.l1Cache[key]; exists && !now.Before(item.expiresAt) {
			delete(c.l1Cache, key)
		}
		c.mu.Unlock()
	}

	data, err := c.l2Cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if data != nil {
		c.setL1(key, data, c.l1MaxTTL)
	}

	return data, nil
}

// Set stores in both levels
func (c *MultiLevelCache) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	if err := c.l2Cache.Set(ctx, key, value, expiration); err != nil {
		return err
	}

	l1Expiration := expiration
	if l1Expiration <= 0 || l1Expiration > c.l1MaxTTL {
		l1Expiration = c.l1MaxTTL
	}
	c.setL1(key, value, l1Expiration)

	return nil
}

// Delete removes from both levels
func (c *MultiLevelCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.l1Cache, key)
	c.mu.Unlock()

	return c.l2Cache.Delete(ctx, key)
}

// Close closes L2 connection
func (c *MultiLevelCache) Close() error {
	return c.l2Cache.Close()
}

// Health checks L2 health
func (c *MultiLevelCache) Health(ctx context.Context) error {
	return c.l2Cache.Health(ctx)
}

// Len returns the number of L1 entries, expired ones included
func (c *MultiLevelCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.l1Cache)
}

// setL1 evicts the entry closest to expiry when full
func (c *MultiLevelCache) setL1(key string, value []byte, expiration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.l1Cache[key]; !exists && len(c.l1Cache) >= c.l1MaxItems {
		oldestKey := ""
		var oldestTime time.Time

		for k, item := range c.l1Cache {
			if oldestKey == "" || item.expiresAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = item.expiresAt
			}
		}

		if oldestKey != "" {
			delete(c.l1Cache, oldestKey)
		}
	}

	c.l1Cache[key] = cacheItem{
		data:      value,
		expiresAt: time.Now().Add(expiration),
	}
}
