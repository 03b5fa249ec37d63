package ratelimit

import (
	"testing"
	"time"
)

func TestLimiter_Allow(t *testing.T) {
	now := time.Unix(1700000000, 0)
	l := New(2, 1)
	l.now = func() time.Time { return now }

	if !l.Allow("c1") || !l.Allow("c1") {
		t.Fatalf("expected first two calls allowed")
	}
	if l.Allow("c1") {
		t.Fatalf("expected third call limited")
	}
	if !l.Allow("c2") {
		t.Fatalf("keys must be independent")
	}

	now = now.Add(1500 * time.Millisecond)
	if !l.Allow("c1") {
		t.Fatalf("expected refill after 1.5s")
	}
	if l.Allow("c1") {
		t.Fatalf("expected only one token refilled")
	}
}

func TestLimiter_Prune(t *testing.T) {
	now := time.Unix(1700000000, 0)
	l := New(1, 1)
	l.now = func() time.Time { return now }
	l.Allow("a")
	now = now.Add(time.Hour)
	l.Allow("b")
	if n := l.Prune(time.Minute); n != 1 {
		t.Fatalf("expected 1 pruned, got %d", n)
	}
}
