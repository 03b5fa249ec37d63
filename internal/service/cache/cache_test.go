package cache

import (
	"context"
	"testing"
	"time"

	pkgcache "SignalDash/pkg/cache"
)

type payload struct {
	N int `json:"n"`
}

func TestPageCache_Remember(t *testing.T) {
	ctx := context.Background()
	kv := pkgcache.NewMemoryCache()
	defer kv.Close()
	pc := NewPageCache(kv, 5*time.Minute)

	builds := 0
	build := func() (payload, error) {
		builds++
		return payload{N: builds}, nil
	}

	for i := 0; i < 3; i++ {
		v, hit, err := Remember(ctx, pc, "c1", "/analytics?range=7d", build)
		if err != nil {
			t.Fatalf("remember: %v", err)
		}
		if v.N != 1 {
			t.Fatalf("expected cached payload, got %d", v.N)
		}
		if hit != (i > 0) {
			t.Fatalf("round %d: hit=%v", i, hit)
		}
	}

	if _, _, err := Remember(ctx, pc, "c2", "/analytics?range=7d", build); err != nil {
		t.Fatalf("remember: %v", err)
	}
	if builds != 2 {
		t.Fatalf("clients must not share entries, builds=%d", builds)
	}

	if err := pc.Invalidate(ctx, "c1"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	v, _, _ := Remember(ctx, pc, "c1", "/analytics?range=7d", build)
	if v.N != 3 {
		t.Fatalf("expected rebuild after invalidate, got %d", v.N)
	}
	v, _, _ = Remember(ctx, pc, "c2", "/analytics?range=7d", build)
	if v.N != 2 {
		t.Fatalf("invalidate leaked to other client, got %d", v.N)
	}
}

func TestPageCache_Disabled(t *testing.T) {
	kv := pkgcache.NewMemoryCache()
	defer kv.Close()
	pc := NewPageCache(kv, 0)
	builds := 0
	for i := 0; i < 2; i++ {
		_, _, _ = Remember(context.Background(), pc, "c1", "k", func() (payload, error) {
			builds++
			return payload{}, nil
		})
	}
	if builds != 2 {
		t.Fatalf("expected no caching with zero stale time, builds=%d", builds)
	}
}
