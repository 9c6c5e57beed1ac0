// Package memory provides the injectable in-memory repositories backing the
// alternates and calendar managers. Each repository instance owns its own
// maps; nothing here is process-wide, so concurrent compilations with
// separate repositories never share state.
package memory

import (
	"fmt"
	"sort"
	"sync"
)

// collection is a mutex-guarded id-keyed map with deterministic listing.
type collection[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{items: map[string]T{}}
}

func (c *collection[T]) create(id string, v T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.items[id]; exists {
		return fmt.Errorf("id %q already exists", id)
	}
	c.items[id] = v
	return nil
}

func (c *collection[T]) put(id string, v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[id] = v
}

func (c *collection[T]) get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[id]
	return v, ok
}

// list returns values sorted by id so iteration order is reproducible.
func (c *collection[T]) list() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, c.items[k])
	}
	return out
}

func (c *collection[T]) delete(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	return true
}
