package decoder

import (
	"crypto/sha256"
	"encoding/hex"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mdt-route/backend/internal/models"
)

// CacheStats is a snapshot of result cache counters.
type CacheStats struct {
	Enabled bool   `json:"enabled"`
	Size    int    `json:"size"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
}

// resultCache keeps decoded results keyed by a digest of the input, so long
// export strings are not retained as keys. A nil *resultCache is a disabled cache.
type resultCache struct {
	lru    *lru.Cache[string, *models.DecodeResult]
	hits   atomic.Uint64
	misses atomic.Uint64
}

func newResultCache(size int) (*resultCache, error) {
	if size <= 0 {
		return nil, nil
	}
	c, err := lru.New[string, *models.DecodeResult](size)
	if err != nil {
		return nil, err
	}
	return &resultCache{lru: c}, nil
}

func cacheKey(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

func (c *resultCache) get(input string) (*models.DecodeResult, bool) {
	if c == nil {
		return nil, false
	}
	r, ok := c.lru.Get(cacheKey(input))
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return r, ok
}

func (c *resultCache) add(input string, r *models.DecodeResult) {
	if c == nil {
		return
	}
	c.lru.Add(cacheKey(input), r)
}

func (c *resultCache) stats() CacheStats {
	if c == nil {
		return CacheStats{}
	}
	return CacheStats{
		Enabled: true,
		Size:    c.lru.Len(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
}
