package middleware

import (
	"bytes"
	"context"
	"encoding/gob"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const cacheTTL = 24 * time.Hour

var (
	_ ResponseCacher = (*MemoryCache)(nil)
	_ ResponseCacher = RedisCache{}
)

// A ResponseCacher can store responses paired to idempotency keys.
type ResponseCacher interface {
	Get(ctx context.Context, key string) (CachedResponse, bool)
	Set(ctx context.Context, key string, cr CachedResponse)
}

// A MemoryCache stores idempotency key, CachedResponse value pairs in a map.
//
// Server restarts reset the map, so MemoryCache suits development
// and single-instance deployments only.
type MemoryCache struct {
	mu  sync.Mutex
	val map[string]memoryCacheEntry
}

type memoryCacheEntry struct {
	CachedResponse

	at time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{val: make(map[string]memoryCacheEntry)}
}

// Get retrieves the result of the request matching the idempotency key.
func (m *MemoryCache) Get(ctx context.Context, key string) (CachedResponse, bool) {
	if key == "" {
		return CachedResponse{}, false
	}

	select {
	case <-ctx.Done():
		return CachedResponse{}, false
	default:
		m.mu.Lock()
		defer m.mu.Unlock()

		v, ok := m.val[key]
		return v.CachedResponse, ok
	}
}

// Set overwrites the value paired to key in the map.
//
// For each call to Set, keys older than cacheTTL are evicted.
func (m *MemoryCache) Set(ctx context.Context, key string, cr CachedResponse) {
	select {
	case <-ctx.Done():
		return
	default:
		m.mu.Lock()
		defer m.mu.Unlock()

		cutoff := time.Now().Add(-cacheTTL)
		for k, v := range m.val {
			if v.at.Before(cutoff) {
				delete(m.val, k)
			}
		}

		m.val[key] = memoryCacheEntry{CachedResponse: cr, at: time.Now()}
	}
}

// A RedisCache connects to a Redis backend
// for the purposes of caching idempotent responses.
//
// Entries are gob-encoded and expire after cacheTTL.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache constructs a RedisCache with the options passed in.
func NewRedisCache(opts *redis.Options) RedisCache {
	return RedisCache{client: redis.NewClient(opts)}
}

// Get retrieves the CachedResponse paired to key from the connected Redis backend.
func (rc RedisCache) Get(ctx context.Context, key string) (CachedResponse, bool) {
	select {
	case <-ctx.Done():
		return CachedResponse{}, false
	default:
		b, err := rc.client.Get(ctx, key).Bytes()
		if err != nil {
			return CachedResponse{}, false
		}

		var cr CachedResponse
		if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&cr); err != nil {
			return CachedResponse{}, false
		}

		return cr, true
	}
}

// Set saves the CachedResponse by pairing it to the key in the Redis backend.
func (rc RedisCache) Set(ctx context.Context, key string, cr CachedResponse) {
	select {
	case <-ctx.Done():
		return
	default:
		buf := bytes.NewBuffer(nil)
		if err := gob.NewEncoder(buf).Encode(cr); err != nil {
			return
		}
		rc.client.Set(ctx, key, buf.Bytes(), cacheTTL)
	}
}
