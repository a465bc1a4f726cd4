// Package assets resolves texture and config files against a list of
// search roots and caches their contents.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned when no root contains the requested file.
var ErrNotFound = errors.New("asset not found")

// Manager loads files from one or more roots.
type Manager struct {
	roots []fs.FS
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a new asset manager with no roots.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// AddDir adds a directory as a search root.
func (m *Manager) AddDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("adding asset dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding asset dir %s: not a directory", dir)
	}
	m.AddFS(os.DirFS(dir))
	return nil
}

// AddFS adds a filesystem as a search root.
// Roots are searched in reverse order (last added = highest priority).
func (m *Manager) AddFS(fsys fs.FS) {
	m.mu.Lock()
	m.roots = append(m.roots, fsys)
	m.mu.Unlock()
}

// Load returns the contents of name. Absolute paths are read directly;
// relative paths are resolved against the roots.
func (m *Manager) Load(name string) ([]byte, error) {
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	data, err := m.read(name)
	if err != nil {
		return nil, err
	}
	m.cache.Set(name, data)
	return data, nil
}

func (m *Manager) read(name string) ([]byte, error) {
	if filepath.IsAbs(name) {
		data, err := os.ReadFile(name)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return data, err
	}

	key := path.Clean(filepath.ToSlash(name))
	if !fs.ValidPath(key) {
		return nil, fmt.Errorf("%w: invalid path %s", ErrNotFound, name)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.roots) - 1; i >= 0; i-- {
		data, err := fs.ReadFile(m.roots[i], key)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Invalidate drops cached contents so the next Load rereads from disk.
func (m *Manager) Invalidate() {
	m.cache.Clear()
}

// Stats returns cache statistics.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear empties the cache and resets its statistics.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.data)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
