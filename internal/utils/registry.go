package utils

import (
	"fmt"
	"sync"
)

// Registry is a thread-safe keyed collection that remembers registration
// order. Registering a key twice is an error.
type Registry[K comparable, V any] struct {
	name  string
	mu    sync.RWMutex
	items map[K]V
	order []K
}

// NewRegistry creates an empty registry; name is used in error messages
func NewRegistry[K comparable, V any](name string) *Registry[K, V] {
	return &Registry[K, V]{
		name:  name,
		items: make(map[K]V),
	}
}

// Register adds an item to the registry
func (r *Registry[K, V]) Register(key K, value V) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[key]; exists {
		return fmt.Errorf("%s '%v' is already registered", r.name, key)
	}
	r.items[key] = value
	r.order = append(r.order, key)
	return nil
}

// MustRegister is Register for package initialisation
func (r *Registry[K, V]) MustRegister(key K, value V) {
	if err := r.Register(key, value); err != nil {
		panic(err)
	}
}

// Get retrieves an item from the registry
func (r *Registry[K, V]) Get(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, exists := r.items[key]
	return value, exists
}

// GetOrError retrieves an item or reports the registered alternatives
func (r *Registry[K, V]) GetOrError(key K) (V, error) {
	if value, exists := r.Get(key); exists {
		return value, nil
	}
	var zero V
	return zero, fmt.Errorf("unknown %s '%v', available: %v", r.name, key, r.Keys())
}

// Keys returns the registered keys in registration order
func (r *Registry[K, V]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]K, len(r.order))
	copy(keys, r.order)
	return keys
}
