package sdlsurface

import "github.com/veandco/go-sdl2/sdl"

const defaultMaxCacheSize = 8

// textureCache is a small LRU for per-route textures. Evicted textures are
// destroyed through the configured destroy hook so GPU memory is bounded by
// maxSize.
type textureCache struct {
	textures map[string]*sdl.Texture
	order    []string // insertion order for LRU eviction
	maxSize  int
	destroy  func(*sdl.Texture)
}

func newTextureCache(maxSize int, destroy func(*sdl.Texture)) *textureCache {
	if maxSize <= 0 {
		maxSize = defaultMaxCacheSize
	}
	if destroy == nil {
		destroy = func(t *sdl.Texture) { t.Destroy() }
	}
	return &textureCache{
		textures: make(map[string]*sdl.Texture),
		order:    make([]string, 0, maxSize),
		maxSize:  maxSize,
		destroy:  destroy,
	}
}

func (c *textureCache) get(key string) *sdl.Texture {
	if texture, exists := c.textures[key]; exists {
		c.moveToEnd(key)
		return texture
	}
	return nil
}

func (c *textureCache) set(key string, texture *sdl.Texture) {
	if old, exists := c.textures[key]; exists {
		if old != texture {
			c.destroy(old)
		}
		c.textures[key] = texture
		c.moveToEnd(key)
		return
	}

	if len(c.order) >= c.maxSize {
		c.evictOldest()
	}
	c.textures[key] = texture
	c.order = append(c.order, key)
}

func (c *textureCache) drop(key string) {
	texture, exists := c.textures[key]
	if !exists {
		return
	}
	c.destroy(texture)
	delete(c.textures, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *textureCache) clear() {
	for _, texture := range c.textures {
		c.destroy(texture)
	}
	c.textures = make(map[string]*sdl.Texture)
	c.order = c.order[:0]
}

func (c *textureCache) moveToEnd(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, key)
			return
		}
	}
}

func (c *textureCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	c.destroy(c.textures[oldest])
	delete(c.textures, oldest)
}
