package render

import (
	"encoding/hex"
	"encoding/json"
	"sync"

	"github.com/zeebo/blake3"
)

// Cache is a small LRU of rendered outputs keyed by scene hash.
type Cache struct {
	mu      sync.Mutex
	max     int
	entries map[string][]byte
	order   []string
}

func NewCache(max int) *Cache {
	if max <= 0 {
		max = 16
	}
	return &Cache{max: max, entries: map[string][]byte{}}
}

// Key hashes everything that affects the output of one render.
func Key(kind string, s Scene, o Options, extra ...string) string {
	payload, _ := json.Marshal(struct {
		Kind  string
		Scene Scene
		Scale float64
		Extra []string
	}{kind, s, o.scale(), extra})
	sum := blake3.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// Get returns a copy of the cached bytes.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.touch(key)
	return append([]byte(nil), b...), true
}

func (c *Cache) Put(key string, b []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok && len(c.order) >= c.max {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = append([]byte(nil), b...)
	c.touch(key)
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) touch(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.order = append(c.order, key)
}
