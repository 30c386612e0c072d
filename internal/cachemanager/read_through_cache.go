package cachemanager

import "time"

// ReadThroughCache computes missing values with fn and stores them.
type ReadThroughCache[V any, I any] struct {
	cache           CacheManager[V]
	fn              func(input I) (V, error)
	shouldSkipCache bool
}

// NewReadThroughCache wraps cache with the loader fn. With shouldSkipCache
// every Get calls fn directly.
func NewReadThroughCache[V any, I any](
	cache CacheManager[V],
	fn func(input I) (V, error),
	shouldSkipCache bool,
) *ReadThroughCache[V, I] {
	return &ReadThroughCache[V, I]{
		cache:           cache,
		fn:              fn,
		shouldSkipCache: shouldSkipCache,
	}
}

// Get returns the cached value for key, loading it from input on a miss.
// Load errors are returned and nothing is cached.
func (r *ReadThroughCache[V, I]) Get(key string, input I, ttl time.Duration) (V, error) {
	if r.shouldSkipCache {
		return r.fn(input)
	}

	if value, ok := r.cache.Get(key); ok {
		return value, nil
	}

	value, err := r.fn(input)
	if err != nil {
		return value, err
	}

	r.cache.Set(key, value, ttl)

	return value, nil
}
