package spec

import (
	"strings"
	"sync"
)

// Cache memoizes compiled specifications by format, names and options.
// It is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*Specification
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*Specification)}
}

// DefaultCache is shared by callers that do not manage their own cache.
var DefaultCache = NewCache()

// Compile returns the cached Specification or compiles and stores it.
// Failures are not cached.
func (c *Cache) Compile(format string, names []string, opts ...Option) (*Specification, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	key := cacheKey(format, names, o)

	c.mu.RLock()
	s, ok := c.entries[key]
	c.mu.RUnlock()

	if ok {
		return s, nil
	}

	s, err := Compile(format, names, opts...)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[key]; ok {
		return existing, nil
	}

	c.entries[key] = s

	return s, nil
}

// Len returns the number of cached specifications.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

func cacheKey(format string, names []string, o options) string {
	var b strings.Builder

	b.WriteString(format)
	b.WriteByte(0)
	b.WriteString(strings.Join(names, "\x01"))
	b.WriteByte(0)

	if o.strict {
		b.WriteByte('s')
	}

	if o.collectorsSet {
		b.WriteByte('c')
		b.WriteByte(byte('0' + o.collectors))
	}

	return b.String()
}
