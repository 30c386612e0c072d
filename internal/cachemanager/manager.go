// Package cachemanager provides small TTL caches for derived per-line data
// such as syntax tokens.
package cachemanager

import "time"

// CacheManager stores values by string key with a per-entry TTL.
type CacheManager[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V, ttl time.Duration)
	Delete(keys ...string)
	Flush()
	Len() int
}
