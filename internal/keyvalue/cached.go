package keyvalue

import (
	"context"
	"errors"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

var _ Store = (*CachedStore)(nil)

// CachedStore is a read-through cache in front of another Store. Reads
// hit the backing store first and refresh the cache; when the backing
// store is unreachable, the last known value is served from the cache
// instead, so queries keep working while offline. Writes always go to
// the backing store, and update the cache only when they succeed.
type CachedStore struct {
	backing Store
	cache   *freecache.Cache
}

func NewCachedStore(backing Store, cacheSizeMB int) *CachedStore {
	megabyte := 1024 * 1024
	if cacheSizeMB <= 0 {
		cacheSizeMB = 10
	}
	return &CachedStore{
		backing: backing,
		cache:   freecache.NewCache(cacheSizeMB * megabyte),
	}
}

func (s *CachedStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.backing.Get(ctx, key)
	if err == nil {
		// no expiry, entries are evicted only by cache pressure
		if cacheErr := s.cache.Set([]byte(key), []byte(value), 0); cacheErr != nil {
			log.Warnf("cached store: failed to cache value for %s: %s", key, cacheErr)
		}
		return value, nil
	}

	if errors.Is(err, ErrKeyNotFound) {
		return "", err
	}

	cached, cacheErr := s.cache.Get([]byte(key))
	if cacheErr != nil {
		// nothing cached either, surface the original store error
		return "", err
	}

	log.Warnf("cached store: backing store failed for %s, serving cached value: %s", key, err)
	return string(cached), nil
}

func (s *CachedStore) Set(ctx context.Context, key, value string) error {
	if err := s.backing.Set(ctx, key, value); err != nil {
		return err
	}

	if cacheErr := s.cache.Set([]byte(key), []byte(value), 0); cacheErr != nil {
		log.Warnf("cached store: failed to cache value for %s: %s", key, cacheErr)
	}
	return nil
}
