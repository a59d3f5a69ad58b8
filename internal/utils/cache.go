package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheItem wraps a cached value with its expiry.
type cacheItem[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache is a small LRU cache with per-entry expiry. The session gate uses
// it to avoid hitting the users table on every request; entries must only
// hold data that is immutable for the lifetime of the TTL.
type TTLCache[K comparable, V any] struct {
	lruCache *lru.Cache[K, cacheItem[V]]
	ttl      time.Duration
}

func NewTTLCache[K comparable, V any](size int, ttl time.Duration) (*TTLCache[K, V], error) {
	l, err := lru.New[K, cacheItem[V]](size)
	if err != nil {
		return nil, err
	}
	return &TTLCache[K, V]{lruCache: l, ttl: ttl}, nil
}

func (c *TTLCache[K, V]) Set(key K, value V) {
	c.lruCache.Add(key, cacheItem[V]{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	})
}

func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	var zero V
	item, ok := c.lruCache.Get(key)
	if !ok {
		return zero, false
	}
	if time.Now().After(item.expiresAt) {
		c.lruCache.Remove(key)
		return zero, false
	}
	return item.value, true
}

func (c *TTLCache[K, V]) Delete(key K) {
	c.lruCache.Remove(key)
}
