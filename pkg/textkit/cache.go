package textkit

import (
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/go-drift/textkit/pkg/errors"
)

// LayoutCache memoizes per-attributes results, such as measured sizes.
//
// Entries are bucketed by Hash and matched with Equal, so two separately
// built but equal attributes share one entry. Keys are stored as Copy
// snapshots: mutating attributes after a lookup never affects the cache.
//
// To avoid holding the lock while loading, concurrent misses for the same key
// may each run the loader. Only the first result is stored; later callers get
// the stored value.
type LayoutCache[V any] struct {
	mu       sync.Mutex
	capacity int
	buckets  map[uint64][]*cacheEntry[V]
	order    []*cacheEntry[V]
	hits     uint64
	misses   uint64
}

type cacheEntry[V any] struct {
	hash  uint64
	key   *LayoutAttributes
	value V
}

// CacheStats reports cache effectiveness.
type CacheStats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// NewLayoutCache creates an empty cache holding at most capacity entries,
// evicting the oldest first. A capacity of 0 or less means unbounded.
func NewLayoutCache[V any](capacity int) *LayoutCache[V] {
	return &LayoutCache[V]{
		capacity: capacity,
		buckets:  make(map[uint64][]*cacheEntry[V]),
	}
}

// Get returns the cached value for attrs, or loads and caches it.
//
// If the cache is nil, the loader is invoked directly. Loader errors are
// returned and not cached. A panicking loader is reported to the error
// handler and surfaces as an error.
func (c *LayoutCache[V]) Get(attrs *LayoutAttributes, loader func(*LayoutAttributes) (V, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, stderrors.New("textkit: loader is nil")
	}
	if c == nil {
		return runLoader(attrs, loader)
	}

	hash := attrs.Hash()
	c.mu.Lock()
	if e := c.lookup(hash, attrs); e != nil {
		c.hits++
		c.mu.Unlock()
		return e.value, nil
	}
	c.misses++
	c.mu.Unlock()

	value, err := runLoader(attrs, loader)
	if err != nil {
		return zero, err
	}

	// Snapshot outside the lock; the caller may keep mutating attrs.
	key := attrs.Copy()

	c.mu.Lock()
	defer c.mu.Unlock()
	if e := c.lookup(hash, attrs); e != nil {
		return e.value, nil
	}
	e := &cacheEntry[V]{hash: hash, key: key, value: value}
	c.buckets[hash] = append(c.buckets[hash], e)
	c.order = append(c.order, e)
	if c.capacity > 0 && len(c.order) > c.capacity {
		c.evict(c.order[0])
	}
	return value, nil
}

// Len returns the number of cached entries.
func (c *LayoutCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

// Stats returns hit and miss counters and the current entry count.
func (c *LayoutCache[V]) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{Hits: c.hits, Misses: c.misses, Entries: len(c.order)}
}

// Purge drops every entry. Counters are kept.
func (c *LayoutCache[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buckets = make(map[uint64][]*cacheEntry[V])
	c.order = nil
}

func (c *LayoutCache[V]) lookup(hash uint64, attrs *LayoutAttributes) *cacheEntry[V] {
	for _, e := range c.buckets[hash] {
		if e.key.Equal(attrs) {
			return e
		}
	}
	return nil
}

func (c *LayoutCache[V]) evict(victim *cacheEntry[V]) {
	c.order = c.order[1:]
	bucket := c.buckets[victim.hash]
	for i, e := range bucket {
		if e == victim {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(c.buckets, victim.hash)
		return
	}
	c.buckets[victim.hash] = bucket
}

func runLoader[V any](attrs *LayoutAttributes, loader func(*LayoutAttributes) (V, error)) (value V, err error) {
	defer errors.RecoverWithCallback("textkit.LayoutCache.Get", func(p *errors.PanicError) {
		err = &errors.TextKitError{
			Op:         "textkit.LayoutCache.Get",
			Kind:       errors.KindCache,
			Err:        fmt.Errorf("loader panicked: %v", p.Value),
			StackTrace: p.StackTrace,
			Timestamp:  p.Timestamp,
		}
	})
	return loader(attrs)
}
