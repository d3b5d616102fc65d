// Package querycache keeps recently parsed queries so repeated query text is
// parsed once. Parsed queries are immutable, so cached values are shared.
package querycache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/jacoelho/jpq/internal/jsonpath"
)

// DefaultSize is the number of queries kept when New is given a size of zero.
const DefaultSize = 256

// Cache is a fixed-size LRU of parsed queries, safe for concurrent use.
// Parse failures are not cached.
type Cache struct {
	queries *lru.Cache[string, *jsonpath.Query]
}

// New returns a cache holding up to size queries.
func New(size int) (*Cache, error) {
	if size == 0 {
		size = DefaultSize
	}
	queries, err := lru.New[string, *jsonpath.Query](size)
	if err != nil {
		return nil, fmt.Errorf("querycache: %w", err)
	}
	return &Cache{queries: queries}, nil
}

// Parse returns the cached query for text, parsing and storing it on a miss.
func (c *Cache) Parse(text string) (*jsonpath.Query, error) {
	if q, ok := c.queries.Get(text); ok {
		return q, nil
	}

	q, err := jsonpath.Parse(text)
	if err != nil {
		return nil, err
	}
	c.queries.Add(text, q)
	return q, nil
}

// Len reports the number of cached queries.
func (c *Cache) Len() int {
	return c.queries.Len()
}

// Purge drops every cached query.
func (c *Cache) Purge() {
	c.queries.Purge()
}
