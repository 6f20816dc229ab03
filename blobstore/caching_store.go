package blobstore

import (
	"context"

	"github.com/hupe1980/chunkset/internal/cache"
	"github.com/hupe1980/chunkset/resource"
)

// CachingStore wraps a Store and keeps recently read blobs in memory.
// Cached bytes count against capacity and, if rc is set, against its memory limit.
type CachingStore struct {
	inner Store
	cache *cache.LRU
}

// NewCachingStore creates a CachingStore holding at most capacity bytes.
func NewCachingStore(inner Store, capacity int64, rc *resource.Controller) *CachingStore {
	return &CachingStore{
		inner: inner,
		cache: cache.NewLRU(capacity, rc),
	}
}

// Get serves the blob from the cache, or reads it through and caches it.
func (s *CachingStore) Get(ctx context.Context, name string) ([]byte, error) {
	if data, ok := s.cache.Get(name); ok {
		return data, nil
	}
	data, err := s.inner.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	s.cache.Set(name, data)
	return data, nil
}

// Put writes through and drops the cached copy.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	err := s.inner.Put(ctx, name, data)
	s.cache.Remove(name)
	return err
}

// Delete removes the blob and its cached copy.
func (s *CachingStore) Delete(ctx context.Context, name string) error {
	err := s.inner.Delete(ctx, name)
	s.cache.Remove(name)
	return err
}

// List is passed through to the wrapped store.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// Stats returns cache hits and misses.
func (s *CachingStore) Stats() (hits, misses int64) {
	return s.cache.Stats()
}

// Purge empties the cache.
func (s *CachingStore) Purge() {
	s.cache.Purge()
}
