package phonetic

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of memoized codes per Cache.
const DefaultCacheSize = 4096

// Cache memoizes Encode results. A bulk scan encodes the same surnames
// many thousand times; the cache is safe for concurrent use.
type Cache struct {
	codes *lru.Cache[string, string]
}

// NewCache creates a cache holding at most size codes. A non-positive size
// uses DefaultCacheSize.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	codes, err := lru.New[string, string](size)
	if err != nil {
		// only returned for non-positive sizes
		panic(err)
	}
	return &Cache{codes: codes}
}

// Encode returns the cached code for text, computing it on a miss.
func (c *Cache) Encode(text string) string {
	if code, ok := c.codes.Get(text); ok {
		return code
	}
	code := Encode(text)
	c.codes.Add(text, code)
	return code
}

// Match reports whether a and b share a non-empty phonetic code.
func (c *Cache) Match(a, b string) bool {
	ca := c.Encode(a)
	return ca != "" && ca == c.Encode(b)
}

// Len returns the number of cached codes.
func (c *Cache) Len() int { return c.codes.Len() }
