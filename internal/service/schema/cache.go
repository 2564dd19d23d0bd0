package schema

import (
	"sync"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
)

const defaultCacheSize = 256

// Cache memoizes validators by field-list fingerprint. Safe for concurrent use.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*Validator
	limit int
}

// NewCache creates a cache holding at most limit validators (256 when limit <= 0).
func NewCache(limit int) *Cache {
	if limit <= 0 {
		limit = defaultCacheSize
	}
	return &Cache{items: make(map[string]*Validator), limit: limit}
}

// For returns the validator for fields, building it on first use.
func (c *Cache) For(fields []domain.FieldConfig) *Validator {
	fp := Fingerprint(fields)

	c.mu.RLock()
	v, ok := c.items[fp]
	c.mu.RUnlock()
	if ok {
		return v
	}

	v = Build(fields)

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.items[fp]; ok {
		return existing
	}
	// Definitions change rarely; starting over is enough to bound memory.
	if len(c.items) >= c.limit {
		clear(c.items)
	}
	c.items[fp] = v
	return v
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
