package cache

import (
	"context"
	"sync"
	"time"

	"github.com/CreativeUnicorns/vaultprefs"
)

const gcInterval = time.Minute

// item represents a single cache item with a value and an expiration time.
type item struct {
	value      []byte
	expiration time.Time
}

// MemoryCache implements the Cache interface using an in-memory store.
type MemoryCache struct {
	mu     sync.RWMutex
	items  map[string]item
	stop   chan struct{}
	closed bool
	once   sync.Once
}

// NewMemoryCache initializes a new MemoryCache instance.
// It starts a garbage collection goroutine to clean expired items.
func NewMemoryCache() *MemoryCache {
	cache := &MemoryCache{
		items: make(map[string]item),
		stop:  make(chan struct{}),
	}
	go cache.gc(gcInterval)
	return cache
}

// Get returns a copy of the cached value.
// Missing and expired keys both yield vaultprefs.ErrNotFound.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, vaultprefs.ErrCacheUnavailable
	}

	it, exists := c.items[key]
	if !exists || it.expired(time.Now()) {
		return nil, vaultprefs.ErrNotFound
	}

	return append([]byte(nil), it.value...), nil
}

// Set stores a copy of value. A ttl of zero or less never expires.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return vaultprefs.ErrCacheUnavailable
	}

	var expiration time.Time
	if ttl > 0 {
		expiration = time.Now().Add(ttl)
	}

	c.items[key] = item{
		value:      append([]byte(nil), value...),
		expiration: expiration,
	}
	return nil
}

// Delete removes a key from the memory cache.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	return nil
}

// Close stops the gc goroutine and drops all items. It is safe to call more than once.
func (c *MemoryCache) Close() error {
	c.once.Do(func() {
		close(c.stop)

		c.mu.Lock()
		c.closed = true
		c.items = make(map[string]item)
		c.mu.Unlock()
	})
	return nil
}

func (it item) expired(now time.Time) bool {
	return !it.expiration.IsZero() && now.After(it.expiration)
}

// gc periodically removes expired items until Close is called.
func (c *MemoryCache) gc(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired(time.Now())
		case <-c.stop:
			return
		}
	}
}

func (c *MemoryCache) removeExpired(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, it := range c.items {
		if it.expired(now) {
			delete(c.items, key)
		}
	}
}
