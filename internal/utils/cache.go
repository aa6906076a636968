package utils

import (
	"os"
	"sync"
	"time"
)

// fileEntry is a cached value together with the file state it was derived from
type fileEntry[V any] struct {
	value   V
	modTime time.Time
	size    int64
}

// FileCache caches values derived from files, keyed by path. An entry is
// only returned while the file keeps the modification time and size it had
// when the entry was stored.
type FileCache[V any] struct {
	items map[string]fileEntry[V]
	mutex sync.RWMutex
}

// NewFileCache creates an empty cache
func NewFileCache[V any]() *FileCache[V] {
	return &FileCache[V]{
		items: make(map[string]fileEntry[V]),
	}
}

// Get returns the cached value for path if the file is unchanged. Stale
// entries are dropped.
func (c *FileCache[V]) Get(path string) (V, bool) {
	var zero V

	c.mutex.RLock()
	entry, exists := c.items[path]
	c.mutex.RUnlock()
	if !exists {
		return zero, false
	}

	if stat, err := os.Stat(path); err == nil && stat.ModTime().Equal(entry.modTime) && stat.Size() == entry.size {
		return entry.value, true
	}

	c.Invalidate(path)
	return zero, false
}

// Put stores value for path using the given file state. info must be taken
// before the file is read, so a concurrent edit leaves the entry stale.
func (c *FileCache[V]) Put(path string, info os.FileInfo, value V) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items[path] = fileEntry[V]{
		value:   value,
		modTime: info.ModTime(),
		size:    info.Size(),
	}
}

// Invalidate removes the entry for path
func (c *FileCache[V]) Invalidate(path string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.items, path)
}

// Clear removes all entries
func (c *FileCache[V]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items = make(map[string]fileEntry[V])
}

// Len returns the number of entries, stale ones included
func (c *FileCache[V]) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.items)
}
