// Package filecache memoizes file reads performed by the readfile and
// readlines builtins within a single evaluation: a program that
// deploys N near-identical files built from one template often rereads
// the same input file N times.
package filecache

import (
	"os"
	"sync"
)

// Cache memoizes os.ReadFile results by absolute-or-relative path, as
// given by the caller. Safe for concurrent use, though Avon's
// single-threaded evaluator never needs that in practice.
type Cache struct {
	mu    sync.Mutex
	bytes map[string][]byte
}

// New creates an empty Cache, one per top-level evaluation.
func New() *Cache {
	return &Cache{bytes: make(map[string][]byte)}
}

// Read returns path's contents, reading and memoizing on first access.
func (c *Cache) Read(path string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if b, ok := c.bytes[path]; ok {
		return b, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c.bytes[path] = b
	return b, nil
}

// Exists reports whether path exists, without populating the cache.
func (c *Cache) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
