package texture

import (
	"image"
	"sync"
)

// Resolver resolves a texture name to a decoded image, or nil.
type Resolver interface {
	Resolve(name string) *image.NRGBA
}

// Cache is a concurrency-safe texture cache in front of an Index.
// Failed loads are cached as nil so each path is decoded at most once.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*image.NRGBA
	index *Index
}

func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*image.NRGBA),
		index: index,
	}
}

// Resolve loads and caches a texture by name. Returns nil if not found.
func (c *Cache) Resolve(name string) *image.NRGBA {
	path, ok := c.index.ResolvePath(name)
	if !ok {
		return nil
	}

	c.mu.RLock()
	img, exists := c.items[path]
	c.mu.RUnlock()
	if exists {
		return img
	}

	img, _ = LoadTexture(path)

	// double-check: another worker may have loaded it meanwhile
	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, exists := c.items[path]; exists {
		return cached
	}
	c.items[path] = img
	return img
}
