// Package cache keeps built codes in memory and persists computed code
// properties between runs.
package cache

import (
	"maps"
	"strconv"
	"sync"
	"time"

	"github.com/mrz1836/cyclic/internal/cyclic"
)

// PropertyCache stores computed code properties keyed by code parameters.
// It is safe for concurrent use.
type PropertyCache struct {
	mu      sync.RWMutex
	entries map[string]PropertyEntry
}

// PropertyEntry holds the properties computed for one code. MinDistance is
// 0 until it has been computed; Verified is set once a full sweep ran.
type PropertyEntry struct {
	N           int       `json:"n"`
	K           int       `json:"k"`
	Generator   string    `json:"generator"`
	MinDistance int       `json:"min_distance,omitempty"`
	Cyclic      bool      `json:"cyclic"`
	Verified    bool      `json:"verified"`
	Failures    int       `json:"failures"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewPropertyCache creates a new empty property cache.
func NewPropertyCache() *PropertyCache {
	return &PropertyCache{entries: make(map[string]PropertyEntry)}
}

// EntryFor starts an entry for the given parameters.
func EntryFor(p cyclic.Params) PropertyEntry {
	return PropertyEntry{
		N:         p.N,
		K:         p.K,
		Generator: p.GeneratorBits().String(),
	}
}

// Key generates the cache key for a code.
func Key(p cyclic.Params) string {
	return keyOf(p.N, p.K, p.GeneratorBits().String())
}

func keyOf(n, k int, generator string) string {
	return strconv.Itoa(n) + ":" + strconv.Itoa(k) + ":" + generator
}

// Get returns the entry for p, whether it exists, and its age.
func (c *PropertyCache) Get(p cyclic.Params) (*PropertyEntry, bool, time.Duration) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[Key(p)]
	if !ok {
		return nil, false, 0
	}
	return &entry, true, time.Since(entry.UpdatedAt)
}

// Set stores entry, replacing any earlier entry for the same code, and
// stamps it with the current time.
func (c *PropertyCache) Set(entry PropertyEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(entry)
}

// Update applies fn to the entry for p, starting from EntryFor(p) when the
// code has none yet, and stores the result.
func (c *PropertyCache) Update(p cyclic.Params, fn func(*PropertyEntry)) PropertyEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[Key(p)]
	if !ok {
		entry = EntryFor(p)
	}
	fn(&entry)
	return c.setLocked(entry)
}

func (c *PropertyCache) setLocked(entry PropertyEntry) PropertyEntry {
	entry.UpdatedAt = time.Now()
	c.entries[keyOf(entry.N, entry.K, entry.Generator)] = entry
	return entry
}

// Size returns the number of entries.
func (c *PropertyCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// snapshot copies the entries under the read lock.
func (c *PropertyCache) snapshot() map[string]PropertyEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.entries)
}
