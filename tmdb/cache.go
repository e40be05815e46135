package tmdb

import (
	"container/list"
	"strconv"
	"sync"
	"time"
)

// pageCache is a thread-safe LRU of result pages with a fixed TTL.
type pageCache struct {
	size      int
	ttl       time.Duration
	now       func() time.Time
	evictList *list.List
	items     map[string]*list.Element
	mu        sync.Mutex
}

// entry is stored in the cache
type entry struct {
	key     string
	page    *ResultPage
	expires time.Time
}

func newPageCache(size int, ttl time.Duration, now func() time.Time) *pageCache {
	return &pageCache{
		size:      size,
		ttl:       ttl,
		now:       now,
		evictList: list.New(),
		items:     make(map[string]*list.Element),
	}
}

// cacheKey identifies a (query, page) pair.
func cacheKey(query string, page int) string {
	return strconv.Itoa(page) + "\x00" + query
}

// Get returns a live entry and marks it most recently used. Expired entries
// are dropped.
func (c *pageCache) Get(key string) (*ResultPage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.items[key]
	if !ok {
		return nil, false
	}

	ent := node.Value.(*entry)
	if !c.now().Before(ent.expires) {
		c.removeElement(node)
		return nil, false
	}

	c.evictList.MoveToFront(node)
	return ent.page, true
}

// Put adds or refreshes a page
func (c *pageCache) Put(key string, page *ResultPage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expires := c.now().Add(c.ttl)

	if node, ok := c.items[key]; ok {
		c.evictList.MoveToFront(node)
		ent := node.Value.(*entry)
		ent.page = page
		ent.expires = expires
		return
	}

	node := c.evictList.PushFront(&entry{key: key, page: page, expires: expires})
	c.items[key] = node

	if c.evictList.Len() > c.size {
		if oldest := c.evictList.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

// Len returns the number of entries, including expired ones not yet evicted.
func (c *pageCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.evictList.Len()
}

func (c *pageCache) removeElement(node *list.Element) {
	c.evictList.Remove(node)
	delete(c.items, node.Value.(*entry).key)
}
