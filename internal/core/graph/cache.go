package graph

import (
	"container/list"
	"sync"
	"time"
)

// lruCache is a bounded cache with least-recently-used eviction. The TTL is
// advisory: entries record their insertion time but are only evicted by
// capacity pressure, never by age. Methods are safe for concurrent use so
// that read-path queries can populate the caches under a shared read lock.
type lruCache[V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[string]*list.Element
	order    *list.List // front = most recent

	hits      int64
	misses    int64
	evictions int64
}

type lruEntry[V any] struct {
	key        string
	value      V
	insertedAt time.Time
}

func newLRUCache[V any](capacity int, ttl time.Duration) *lruCache[V] {
	if capacity <= 0 {
		capacity = 100
	}
	return &lruCache[V]{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

func (c *lruCache[V]) get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		c.hits++
		return elem.Value.(*lruEntry[V]).value, true
	}

	c.misses++
	var zero V
	return zero, false
}

func (c *lruCache[V]) set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		entry := elem.Value.(*lruEntry[V])
		entry.value = value
		entry.insertedAt = time.Now()
		return
	}

	if c.order.Len() >= c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*lruEntry[V]).key)
			c.evictions++
		}
	}

	c.items[key] = c.order.PushFront(&lruEntry[V]{
		key:        key,
		value:      value,
		insertedAt: time.Now(),
	})
}

func (c *lruCache[V]) purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element, c.capacity)
	c.order.Init()
	c.hits = 0
	c.misses = 0
	c.evictions = 0
}

func (c *lruCache[V]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// CacheStats reports hit/miss/eviction counters for one cache instance.
type CacheStats struct {
	Entries   int   `json:"entries"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
}

func (c *lruCache[V]) stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		Entries:   c.order.Len(),
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}
