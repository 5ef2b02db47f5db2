// Package cache is a small persisted key→coordinate map shared across runs
// (geocode lookups keyed by location string). Load is best-effort: a missing
// or corrupt file yields an empty cache, never an error.
package cache

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/gofrs/flock"
)

type Cache struct {
	mu   sync.RWMutex
	path string
	m    map[string][2]float64
}

// Load reads the cache file at path. Missing or unreadable files start an
// empty cache; the path is remembered for Save.
func Load(path string) *Cache {
	c := &Cache{path: path, m: make(map[string][2]float64)}

	b, err := os.ReadFile(path)
	if err != nil {
		return c
	}
	var m map[string][2]float64
	if err := json.Unmarshal(b, &m); err != nil {
		return c // corrupt file, start over
	}
	c.m = m
	return c
}

func (c *Cache) Get(key string) ([2]float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[key]
	return v, ok
}

func (c *Cache) Put(key string, v [2]float64) {
	c.mu.Lock()
	c.m[key] = v
	c.mu.Unlock()
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

// Save writes the cache back to disk under a file lock so concurrent runs
// don't clobber each other. Callers should log the error rather than fail
// the run over it.
func (c *Cache) Save() error {
	c.mu.RLock()
	b, err := json.Marshal(c.m)
	c.mu.RUnlock()
	if err != nil {
		return err
	}

	fl := flock.New(c.path + ".lock")
	if err := fl.Lock(); err != nil {
		return err
	}
	defer fl.Unlock()

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, c.path)
}
