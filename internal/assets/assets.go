// Package assets handles demo asset loading and caching.
package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/Faultbox/markerlens/internal/engine/texture"
	"github.com/Faultbox/markerlens/pkg/formats"
)

// Manager loads assets by name from a list of search directories.
type Manager struct {
	dirs  []string
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a new asset manager with the given search directories.
// Directories are searched in reverse order (last added = highest priority).
func NewManager(dirs ...string) *Manager {
	return &Manager{
		dirs:  append([]string(nil), dirs...),
		cache: NewCache(),
	}
}

// AddDir appends a search directory. The directory must exist.
func (m *Manager) AddDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("asset dir %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("asset dir %s: not a directory", path)
	}

	m.mu.Lock()
	m.dirs = append(m.dirs, path)
	m.mu.Unlock()

	return nil
}

// Load reads a raw asset file by name. Returns an error wrapping
// fs.ErrNotExist when no search directory contains the file.
func (m *Manager) Load(name string) ([]byte, error) {
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.dirs) - 1; i >= 0; i-- {
		data, err := os.ReadFile(filepath.Join(m.dirs[i], name))
		if err == nil {
			m.cache.Set(name, data)
			return data, nil
		}
	}

	return nil, fmt.Errorf("asset %s: %w", name, fs.ErrNotExist)
}

// LoadTexture loads and decodes a texture asset.
func (m *Manager) LoadTexture(name string) (*texture.Texture, error) {
	data, err := m.Load(name)
	if err != nil {
		return nil, err
	}
	return texture.Decode(name, data)
}

// LoadMesh loads and parses an OBJ mesh asset.
func (m *Manager) LoadMesh(name string) (*formats.Mesh, error) {
	data, err := m.Load(name)
	if err != nil {
		return nil, err
	}
	mesh, err := formats.ParseOBJ(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return mesh, nil
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

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

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache hit/miss counts.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
