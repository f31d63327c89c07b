// Package cache holds the in-process LRU used for CMS snapshots and generated
// narratives.
package cache

import (
	"container/list"
	"sync"
	"time"
)

type cacheEntry[V any] struct {
	key        string
	value      V
	expiration time.Time
}

// LRU is a thread-safe least-recently-used cache with per-entry TTL
type LRU[V any] struct {
	capacity int
	mu       sync.Mutex
	items    map[string]*list.Element
	order    *list.List
	now      func() time.Time
}

// NewLRU creates a cache holding at most capacity entries
func NewLRU[V any](capacity int) *LRU[V] {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU[V]{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		order:    list.New(),
		now:      time.Now,
	}
}

// Get returns the cached value and whether it was present and fresh
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	element, found := c.items[key]
	if !found {
		return zero, false
	}

	entry := element.Value.(*cacheEntry[V])
	if !c.now().Before(entry.expiration) {
		c.removeElement(element)
		return zero, false
	}

	c.order.MoveToBack(element)
	return entry.value, true
}

// Set adds or replaces a value. A ttl <= 0 disables caching for the value.
func (c *LRU[V]) Set(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	expiration := c.now().Add(ttl)

	if element, found := c.items[key]; found {
		c.order.MoveToBack(element)
		entry := element.Value.(*cacheEntry[V])
		entry.value = value
		entry.expiration = expiration
		return
	}

	if c.order.Len() >= c.capacity {
		if oldest := c.order.Front(); oldest != nil {
			c.removeElement(oldest)
		}
	}

	c.items[key] = c.order.PushBack(&cacheEntry[V]{
		key:        key,
		value:      value,
		expiration: expiration,
	})
}

func (c *LRU[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if element, found := c.items[key]; found {
		c.removeElement(element)
	}
}

func (c *LRU[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.order.Init()
}

func (c *LRU[V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.order.Len()
}

// must be called with the lock held
func (c *LRU[V]) removeElement(element *list.Element) {
	c.order.Remove(element)
	delete(c.items, element.Value.(*cacheEntry[V]).key)
}

// CleanupExpired drops every expired entry and returns how many were removed
func (c *LRU[V]) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0

	var next *list.Element
	for element := c.order.Front(); element != nil; element = next {
		next = element.Next()
		if !now.Before(element.Value.(*cacheEntry[V]).expiration) {
			c.removeElement(element)
			removed++
		}
	}
	return removed
}

// StartCleanupRoutine runs CleanupExpired on every tick until the returned
// stop function is called.
func (c *LRU[V]) StartCleanupRoutine(interval time.Duration) (stop func()) {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				c.CleanupExpired()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}
