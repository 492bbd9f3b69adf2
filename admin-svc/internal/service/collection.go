package service

import (
	"slices"
	"sync"
)

// Collection is a controller's in-memory copy of a backend collection.
type Collection[T any] struct {
	mu       sync.RWMutex
	items    []T
	id       func(T) string
	inflight int
}

func NewCollection[T any](id func(T) string) *Collection[T] {
	return &Collection[T]{id: id}
}

func (c *Collection[T]) Replace(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = slices.Clone(items)
}

// Upsert replaces the item with the same id or appends it.
func (c *Collection[T]) Upsert(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.id(item)
	for i := range c.items {
		if c.id(c.items[i]) == id {
			c.items[i] = item
			return
		}
	}
	c.items = append(c.items, item)
}

func (c *Collection[T]) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = slices.DeleteFunc(c.items, func(item T) bool { return c.id(item) == id })
}

func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if c.id(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (c *Collection[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Loading reports whether a backend call for this collection is outstanding.
func (c *Collection[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inflight > 0
}

func (c *Collection[T]) begin() func() {
	c.mu.Lock()
	c.inflight++
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		c.inflight--
		c.mu.Unlock()
	}
}
