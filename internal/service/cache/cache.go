package cache

import (
	"context"
	"errors"
	"time"

	pkgcache "SignalDash/pkg/cache"
)

const pagePrefix = "page"

// PageCache holds computed page payloads per client for a stale time, so
// repeated navigation does not rebuild them.
type PageCache struct {
	kv    pkgcache.Service
	stale time.Duration
}

func NewPageCache(kv pkgcache.Service, staleTime time.Duration) *PageCache {
	return &PageCache{kv: kv, stale: staleTime}
}

func pageKey(client, key string) string {
	return pkgcache.GenerateKeyWithParams(pagePrefix, client, key)
}

// Get loads a cached payload into dest. ok is false on a miss.
func (p *PageCache) Get(ctx context.Context, client, key string, dest interface{}) (bool, error) {
	if p.stale <= 0 {
		return false, nil
	}
	err := p.kv.Get(ctx, pageKey(client, key), dest)
	if errors.Is(err, pkgcache.ErrCacheMiss) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (p *PageCache) Set(ctx context.Context, client, key string, v interface{}) error {
	if p.stale <= 0 {
		return nil
	}
	return p.kv.Set(ctx, pageKey(client, key), v, p.stale)
}

// Invalidate drops every cached payload for client. Called after anything
// that changes what the client's pages show.
func (p *PageCache) Invalidate(ctx context.Context, client string) error {
	return p.kv.DeleteByPattern(ctx, pkgcache.BuildPattern(pkgcache.GenerateKeyWithParams(pagePrefix, client)+":"))
}

// Remember returns the cached payload for key or builds and stores it.
// hit reports whether the payload came from the cache.
func Remember[T any](ctx context.Context, p *PageCache, client, key string, build func() (T, error)) (v T, hit bool, err error) {
	if ok, gerr := p.Get(ctx, client, key, &v); gerr == nil && ok {
		return v, true, nil
	}
	v, err = build()
	if err != nil {
		return v, false, err
	}
	_ = p.Set(ctx, client, key, v)
	return v, false, nil
}
