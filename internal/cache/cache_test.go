package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryCache implements the Cache interface for testing and counts L2 traffic
type memoryCache struct {
	data    map[string][]byte
	gets    int
	sets    int
	failGet bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (m *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.gets++
	if m.failGet {
		return nil, &CacheError{Operation: "get", Key: key, Err: assert.AnError}
	}
	return m.data[key], nil
}

func (m *memoryCache) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	m.sets++
	m.data[key] = value
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *memoryCache) Close() error {
	m.data = nil
	return nil
}

func (m *memoryCache) Health(ctx context.Context) error {
	return nil
}

func TestMultiLevelCache_SetThenGetServesFromL1(t *testing.T) {
	ctx := context.Background()
	l2 := newMemoryCache()
	c := NewMultiLevelCache(l2, 10, time.Minute)

	require.NoError(t, c.Set(ctx, "report:artists", []byte("payload"), time.Hour))
	assert.Equal(t, 1, l2.sets)

	value, err := c.Get(ctx, "report:artists")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), value)
	assert.Equal(t, 0, l2.gets, "L1 hit should not touch L2")
}

func TestMultiLevelCache_PopulatesL1FromL2(t *testing.T) {
	ctx := context.Background()
	l2 := newMemoryCache()
	l2.data["report:genres"] = []byte("rock")
	c := NewMultiLevelCache(l2, 10, time.Minute)

	value, err := c.Get(ctx, "report:genres")
	require.NoError(t, err)
	assert.Equal(t, []byte("rock"), value)
	assert.Equal(t, 1, l2.gets)

	value, err = c.Get(ctx, "report:genres")
	require.NoError(t, err)
	assert.Equal(t, []byte("rock"), value)
	assert.Equal(t, 1, l2.gets)
}

func TestMultiLevelCache_MissReturnsNil(t *testing.T) {
	c := NewMultiLevelCache(newMemoryCache(), 10, time.Minute)

	value, err := c.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, value)
	assert.Equal(t, 0, c.Len())
}

func TestMultiLevelCache_L2ErrorPropagates(t *testing.T) {
	l2 := newMemoryCache()
	l2.failGet = true
	c := NewMultiLevelCache(l2, 10, time.Minute)

	_, err := c.Get(context.Background(), "key")
	require.Error(t, err)

	var cacheErr *CacheError
	assert.ErrorAs(t, err, &cacheErr)
	assert.Equal(t, "get", cacheErr.Operation)
}

func TestMultiLevelCache_ExpiredL1EntryFallsThrough(t *testing.T) {
	ctx := context.Background()
	l2 := newMemoryCache()
	c := NewMultiLevelCache(l2, 10, time.Minute)

	require.NoError(t, c.Set(ctx, "key", []byte("v1"), time.Hour))
	// Age the L1 entry past its expiry
	c.mu.Lock()
	item := c.l1Cache["key"]
	item.expiresAt = time.Now().Add(-time.Second)
	c.l1Cache["key"] = item
	c.mu.Unlock()

	l2.data["key"] = []byte("v2")
	value, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), value)
	assert.Equal(t, 1, l2.gets)
}

func TestMultiLevelCache_EvictsWhenFull(t *testing.T) {
	ctx := context.Background()
	c := NewMultiLevelCache(newMemoryCache(), 3, time.Minute)

	for i := 0; i < 5; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("key%d", i), []byte("v"), time.Minute))
	}
	assert.Equal(t, 3, c.Len())

	// Overwriting an existing key never evicts
	require.NoError(t, c.Set(ctx, "key4", []byte("v2"), time.Minute))
	assert.Equal(t, 3, c.Len())
}

func TestMultiLevelCache_Delete(t *testing.T) {
	ctx := context.Background()
	l2 := newMemoryCache()
	c := NewMultiLevelCache(l2, 10, time.Minute)

	require.NoError(t, c.Set(ctx, "key", []byte("v"), time.Minute))
	require.NoError(t, c.Delete(ctx, "key"))

	value, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Nil(t, value)
	assert.NotContains(t, l2.data, "key")
}

func TestParseValkeyURL(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		wantAddress  string
		wantPassword string
		wantErr      bool
	}{
		{name: "plain", url: "valkey://localhost:6379", wantAddress: "localhost:6379"},
		{name: "with password", url: "valkey://:s3cret@cache:6380", wantAddress: "cache:6380", wantPassword: "s3cret"},
		{name: "redis scheme", url: "redis://user:pw@10.0.0.5:6379/0", wantAddress: "10.0.0.5:6379", wantPassword: "pw"},
		{name: "missing host", url: "valkey://", wantErr: true},
		{name: "malformed", url: "://bad", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			address, password, err := parseValkeyURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAddress, address)
			assert.Equal(t, tt.wantPassword, password)
		})
	}
}

func TestNamespacedKey(t *testing.T) {
	assert.Equal(t, "pitchfork:artists", namespacedKey("pitchfork", "artists"))
	assert.Equal(t, "artists", namespacedKey("", "artists"))
}

func TestCacheError_Error(t *testing.T) {
	err := &CacheError{
		Operation: "get",
		Key:       "test-key",
		Err:       assert.AnError,
	}

	expectedMessage := "cache get failed for key 'test-key': assert.AnError general error for testing"
	assert.Equal(t, expectedMessage, err.Error())
}

func TestCacheError_Unwrap(t *testing.T) {
	err := &CacheError{Operation: "set", Key: "test-key", Err: assert.AnError}

	assert.True(t, errors.Is(err, assert.AnError))
	assert.Equal(t, assert.AnError, err.Unwrap())
}

func BenchmarkMultiLevelCache_Get(b *testing.B) {
	ctx := context.Background()
	c := NewMultiLevelCache(newMemoryCache(), 1000, time.Hour)
	for i := 0; i < 1000; i++ {
		_ = c.Set(ctx, fmt.Sprintf("key%d", i), []byte("data"), time.Hour)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Get(ctx, fmt.Sprintf("key%d", i%1000))
	}
}
