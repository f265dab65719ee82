package oracle

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/eugenenazirov/fragment-bingo/internal/puzzle"
)

// DefaultCacheSize is the number of results a cached enumerator keeps.
const DefaultCacheSize = 256

type cached struct {
	inner Enumerator
	cache *lru.Cache[puzzle.Query, Result]
}

// NewCached wraps inner with a bounded LRU of results keyed by query.
// Failed enumerations are not stored.
func NewCached(inner Enumerator, size int) (Enumerator, error) {
	cache, err := lru.New[puzzle.Query, Result](size)
	if err != nil {
		return nil, fmt.Errorf("create result cache: %w", err)
	}
	return &cached{inner: inner, cache: cache}, nil
}

func (c *cached) Enumerate(q puzzle.Query) (Result, error) {
	if res, ok := c.cache.Get(q); ok {
		return res, nil
	}
	res, err := c.inner.Enumerate(q)
	if err != nil {
		return Result{}, err
	}
	c.cache.Add(q, res)
	return res, nil
}
