package merger

import (
	"fmt"
	"strings"
	"sync"
)

// resultCache memoizes successful merge text for identical requests within
// a session. It is advisory only: a miss costs a redundant service call,
// never correctness. Bounded with FIFO eviction of the oldest key.
type resultCache struct {
	mu       sync.Mutex
	entries  map[string]string
	order    []string
	capacity int
}

func newResultCache(capacity int) *resultCache {
	if capacity <= 0 {
		capacity = defaultCacheSize
	}
	return &resultCache{
		entries:  make(map[string]string, capacity),
		order:    make([]string, 0, capacity),
		capacity: capacity,
	}
}

// cacheKey identifies a merge request by its full input tuple.
func cacheKey(frameworkA, frameworkB, questionA, questionB, theme string, score float64) string {
	return strings.Join([]string{
		frameworkA, frameworkB, questionA, questionB, theme, fmt.Sprintf("%.4f", score),
	}, "\x1f")
}

func (c *resultCache) get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	text, ok := c.entries[key]
	return text, ok
}

func (c *resultCache) put(key, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; exists {
		c.entries[key] = text
		return
	}
	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = text
	c.order = append(c.order, key)
}

func (c *resultCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
