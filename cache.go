package ecs

import "fmt"

// SimpleCache is a dense-array-plus-index-map store: O(1) lookup by key
// via itemIndices, O(1) append, and contiguous iteration over items for
// callers that want to walk every entry without a map traversal.
// EntityMap and EntityMultiMap both use it as their backing store.
type SimpleCache[K comparable, V any] struct {
	itemIndices map[K]int
	items       []V
	keys        []K
	maxCapacity int
}

// NewSimpleCache creates a cache with no capacity limit when max <= 0.
func NewSimpleCache[K comparable, V any](max int) *SimpleCache[K, V] {
	return &SimpleCache[K, V]{
		itemIndices: make(map[K]int),
		maxCapacity: max,
	}
}

// GetIndex returns the dense index item was registered at.
func (c *SimpleCache[K, V]) GetIndex(key K) (int, bool) {
	index, ok := c.itemIndices[key]
	return index, ok
}

// GetItem returns a pointer to the item at index, for in-place mutation.
func (c *SimpleCache[K, V]) GetItem(index int) *V {
	return &c.items[index]
}

// Get looks an item up directly by key.
func (c *SimpleCache[K, V]) Get(key K) (*V, bool) {
	idx, ok := c.itemIndices[key]
	if !ok {
		return nil, false
	}
	return &c.items[idx], true
}

// Register appends item under key, failing once maxCapacity (if set) is
// reached.
func (c *SimpleCache[K, V]) Register(key K, item V) (int, error) {
	if _, exists := c.itemIndices[key]; exists {
		return -1, fmt.Errorf("ecs: key %v already registered", key)
	}
	if c.maxCapacity > 0 && len(c.itemIndices) >= c.maxCapacity {
		return -1, fmt.Errorf("cache at maximum capacity (%d)", c.maxCapacity)
	}
	idx := len(c.items)
	c.itemIndices[key] = idx
	c.items = append(c.items, item)
	c.keys = append(c.keys, key)
	return idx, nil
}

// Unregister removes key via swap-pop: the last item takes its slot,
// and itemIndices is updated for whichever key used to own that slot.
// Reports whether key was present.
func (c *SimpleCache[K, V]) Unregister(key K) bool {
	idx, ok := c.itemIndices[key]
	if !ok {
		return false
	}
	last := len(c.items) - 1
	if idx != last {
		c.items[idx] = c.items[last]
		c.keys[idx] = c.keys[last]
		c.itemIndices[c.keys[idx]] = idx
	}
	c.items = c.items[:last]
	c.keys = c.keys[:last]
	delete(c.itemIndices, key)
	return true
}

// Len reports how many items are registered.
func (c *SimpleCache[K, V]) Len() int {
	return len(c.items)
}

// Clear empties the cache, keeping its capacity limit.
func (c *SimpleCache[K, V]) Clear() {
	c.items = nil
	c.keys = nil
	c.itemIndices = make(map[K]int)
}

// All returns the dense item slice directly, for callers that want to
// iterate without going through keys.
func (c *SimpleCache[K, V]) All() []V {
	return c.items
}

// Keys returns the dense key slice, index-aligned with All.
func (c *SimpleCache[K, V]) Keys() []K {
	return c.keys
}
