package catalog

import (
	"sort"
	"strings"
	"sync"
)

// Cache joins creature and species fragments by key. Entries are created on
// the first fragment for a key and live for the life of the process.
type Cache struct {
	mu      sync.RWMutex
	size    int
	records map[Key]*Record
}

// NewCache creates an empty cache for a collection of the given size.
func NewCache(size int) *Cache {
	return &Cache{
		size:    size,
		records: make(map[Key]*Record, size),
	}
}

// Size returns the configured collection size N.
func (c *Cache) Size() int { return c.size }

// SetPrimary stores the creature fragment for key. A repeated call replaces
// the previous value.
func (c *Cache) SetPrimary(key Key, p Primary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry(key).Primary = &p
}

// SetSecondary stores the species fragment for key. A repeated call replaces
// the previous value.
func (c *Cache) SetSecondary(key Key, s Secondary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry(key).Secondary = &s
}

// entry must be called with mu held.
func (c *Cache) entry(key Key) *Record {
	rec, ok := c.records[key]
	if !ok {
		rec = &Record{Key: key}
		c.records[key] = rec
	}
	return rec
}

// Get returns a copy of the record for key, which may be partial. The bool is
// false when no fragment has ever been stored for key.
func (c *Cache) Get(key Key) (Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.records[key]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// IsComplete reports whether both fragments for key are present.
func (c *Cache) IsComplete(key Key) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.records[key]
	return ok && rec.Complete()
}

// Keys returns every key with at least one fragment, in ascending order.
func (c *Cache) Keys() []Key {
	c.mu.RLock()
	keys := make([]Key, 0, len(c.records))
	for k := range c.records {
		keys = append(keys, k)
	}
	c.mu.RUnlock()
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// CompleteCount returns the number of complete records.
func (c *Cache) CompleteCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, rec := range c.records {
		if rec.Complete() {
			n++
		}
	}
	return n
}

// FindByName returns the key of the record whose creature name equals name,
// ignoring case.
func (c *Cache) FindByName(name string) (Key, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	c.mu.RLock()
	defer c.mu.RUnlock()
	for k, rec := range c.records {
		if rec.Primary != nil && strings.ToLower(rec.Primary.Name) == name {
			return k, true
		}
	}
	return 0, false
}
