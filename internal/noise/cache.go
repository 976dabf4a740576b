package noise

import (
	"fmt"

	"github.com/dgraph-io/ristretto/v2"
)

// Cache memoises generated fields. Cached fields are shared and must not be
// modified.
type Cache struct {
	store *ristretto.Cache[string, *Field]
}

// NewCache returns a cache bounded to roughly maxBytes of field data.
func NewCache(maxBytes int64) (*Cache, error) {
	if maxBytes <= 0 {
		maxBytes = 16 << 20
	}
	store, err := ristretto.NewCache(&ristretto.Config[string, *Field]{
		NumCounters: 10000,
		MaxCost:     maxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("noise cache: %w", err)
	}
	return &Cache{store: store}, nil
}

func cacheKey(width, height int, p Params) string {
	return fmt.Sprintf("%dx%d|%g|%d|%g|%g|%d", width, height, p.Scale, p.Octaves, p.Persistence, p.Lacunarity, p.Seed)
}

// Field returns the cached field for the arguments, generating it on a miss.
func (c *Cache) Field(width, height int, params Params) (*Field, error) {
	key := cacheKey(width, height, params)
	if f, ok := c.store.Get(key); ok {
		return f, nil
	}
	f, err := Generate(width, height, params)
	if err != nil {
		return nil, err
	}
	c.store.Set(key, f, int64(len(f.Values)*8))
	c.store.Wait()
	return f, nil
}

// Close releases the cache's background goroutines.
func (c *Cache) Close() {
	c.store.Close()
}
