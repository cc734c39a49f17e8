package ontology

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CachedClient memoizes closure queries against an inner client. The
// refinement filter asks for the same concepts' closures once per statement
// carrying them, so even a short TTL collapses most of the lookup cost.
// go-cache is safe for concurrent use, matching the multi-worker read
// pattern of the confirmation pass.
type CachedClient struct {
	inner Client
	cache *gocache.Cache
}

// NewCachedClient wraps inner with a TTL closure cache.
func NewCachedClient(inner Client, ttl time.Duration) *CachedClient {
	return &CachedClient{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Ancestors implements Client.
func (c *CachedClient) Ancestors(ns, id string) (map[Ref]bool, error) {
	return c.lookup("anc|"+ns+":"+id, func() (map[Ref]bool, error) {
		return c.inner.Ancestors(ns, id)
	})
}

// Descendants implements Client.
func (c *CachedClient) Descendants(ns, id string) (map[Ref]bool, error) {
	return c.lookup("desc|"+ns+":"+id, func() (map[Ref]bool, error) {
		return c.inner.Descendants(ns, id)
	})
}

// lookup serves from cache when possible. Failed lookups are not cached:
// a transient inner failure should not pin an empty closure for the TTL.
func (c *CachedClient) lookup(key string, fetch func() (map[Ref]bool, error)) (map[Ref]bool, error) {
	if v, found := c.cache.Get(key); found {
		return v.(map[Ref]bool), nil
	}
	closure, err := fetch()
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, closure, gocache.DefaultExpiration)
	return closure, nil
}
