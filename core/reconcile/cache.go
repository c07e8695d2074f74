package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// CacheKey identifies one lookup against one source.
type CacheKey struct {
	Source Source
	Type   IdentifierType
	Value  string
}

func (k CacheKey) String() string {
	return string(k.Source) + "|" + string(k.Type) + "|" + k.Value
}

type cacheEntry struct {
	candidate Candidate
	stored    time.Time
}

// CandidateCache keeps fetched candidates for a limited time. Each caller
// owns its cache; nothing is shared between instances. A zero TTL disables
// caching but still collapses concurrent identical fetches.
type CandidateCache struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	entries map[CacheKey]cacheEntry
	sf      singleflight.Group
}

// NewCandidateCache creates a cache with the given time-to-live.
func NewCandidateCache(ttl time.Duration) *CandidateCache {
	return &CandidateCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[CacheKey]cacheEntry),
	}
}

// TTL returns the configured time-to-live.
func (c *CandidateCache) TTL() time.Duration { return c.ttl }

func (c *CandidateCache) expired(e cacheEntry) bool {
	if c.ttl == 0 {
		return true
	}
	return c.now().Sub(e.stored) > c.ttl
}

// Get returns a fresh cached candidate.
func (c *CandidateCache) Get(key CacheKey) (Candidate, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.expired(e) {
		return Candidate{}, false
	}
	return cloneCandidate(e.candidate), true
}

// Put stores a candidate under key.
func (c *CandidateCache) Put(key CacheKey, cand Candidate) {
	if c.ttl == 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = cacheEntry{candidate: cloneCandidate(cand), stored: c.now()}
	c.mu.Unlock()
}

// GetOrFetch returns the cached candidate for key or calls fetch, making sure
// only one fetch per key runs at a time. Failed fetches are not cached.
func (c *CandidateCache) GetOrFetch(ctx context.Context, key CacheKey, fetch func(context.Context) (Candidate, error)) (Candidate, error) {
	if cand, ok := c.Get(key); ok {
		return cand, nil
	}

	result, err, _ := c.sf.Do(key.String(), func() (interface{}, error) {
		if cand, ok := c.Get(key); ok {
			return cand, nil
		}
		cand, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.Put(key, cand)
		return cand, nil
	})
	if err != nil {
		return Candidate{}, err
	}
	return cloneCandidate(result.(Candidate)), nil
}

// Invalidate drops every cached entry for a source, or everything when
// source is empty.
func (c *CandidateCache) Invalidate(source Source) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if source == "" || k.Source == source {
			delete(c.entries, k)
		}
	}
}

// Purge removes expired entries and returns how many were dropped.
func (c *CandidateCache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Len returns the number of stored entries, fresh or not.
func (c *CandidateCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func cloneCandidate(c Candidate) Candidate {
	return Candidate{Source: c.Source, Fields: c.Fields.Clone()}
}

// CachedAdapter wraps a SourceAdapter with a CandidateCache.
type CachedAdapter struct {
	SourceAdapter
	cache *CandidateCache
}

// WithCache returns an adapter that consults cache before calling a.
func WithCache(a SourceAdapter, cache *CandidateCache) *CachedAdapter {
	return &CachedAdapter{SourceAdapter: a, cache: cache}
}

// Fetch implements SourceAdapter.
func (a *CachedAdapter) Fetch(ctx context.Context, idType IdentifierType, value string) (Candidate, error) {
	key := CacheKey{Source: a.Source(), Type: idType, Value: value}
	return a.cache.GetOrFetch(ctx, key, func(ctx context.Context) (Candidate, error) {
		return a.SourceAdapter.Fetch(ctx, idType, value)
	})
}
