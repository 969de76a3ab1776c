package archive

import (
	"container/list"
	"sync"
)

// Cache provides read-through storage for decoded file bytes.
//
// Keys are normalized logical paths. Implementations own the byte slices
// they are given and must never hand a stored slice back to two callers:
// Get returns content the caller may retain. Implementations must be safe
// for concurrent use.
type Cache interface {
	// Get returns a copy of the cached content for a path.
	// Returns nil, false when the path is not cached.
	Get(path string) ([]byte, bool)

	// Put stores content for a path. The cache takes its own copy.
	Put(path string, data []byte)
}

// MemoryCache is a bounded in-memory Cache with least-recently-used
// eviction. The zero value is not usable; use NewMemoryCache.
type MemoryCache struct {
	mu       sync.Mutex
	maxBytes int64
	size     int64
	order    *list.List // front = most recently used, values are *cacheItem
	items    map[string]*list.Element
}

type cacheItem struct {
	path string
	data []byte
}

// NewMemoryCache creates a cache bounded to maxBytes of content.
// A maxBytes of 0 means unlimited.
func NewMemoryCache(maxBytes int64) *MemoryCache {
	return &MemoryCache{
		maxBytes: maxBytes,
		order:    list.New(),
		items:    make(map[string]*list.Element),
	}
}

// Get implements Cache.
func (c *MemoryCache) Get(path string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[path]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)

	item := elem.Value.(*cacheItem)
	out := make([]byte, len(item.data))
	copy(out, item.data)
	return out, true
}

// Put implements Cache.
func (c *MemoryCache) Put(path string, data []byte) {
	stored := make([]byte, len(data))
	copy(stored, data)

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[path]; ok {
		item := elem.Value.(*cacheItem)
		c.size += int64(len(stored)) - int64(len(item.data))
		item.data = stored
		c.order.MoveToFront(elem)
	} else {
		c.items[path] = c.order.PushFront(&cacheItem{path: path, data: stored})
		c.size += int64(len(stored))
	}

	for c.maxBytes > 0 && c.size > c.maxBytes && c.order.Len() > 1 {
		oldest := c.order.Back()
		item := oldest.Value.(*cacheItem)
		c.order.Remove(oldest)
		delete(c.items, item.path)
		c.size -= int64(len(item.data))
	}
}

// SizeBytes returns the current cache content size in bytes.
func (c *MemoryCache) SizeBytes() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}
