package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"SignalDash/internal/domain/models"
	domrepo "SignalDash/internal/domain/repository"
	"SignalDash/pkg/cache"
)

func TestKVStateStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := cache.NewMemoryCache()
	defer kv.Close()
	s := NewKVStateStore(kv)

	var st models.ThemeState
	if err := s.Load(ctx, "theme-storage", "c1", &st); !errors.Is(err, domrepo.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.Save(ctx, "theme-storage", "c1", models.ThemeState{Theme: models.ThemeDark}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Load(ctx, "theme-storage", "c1", &st); err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.Theme != models.ThemeDark {
		t.Fatalf("expected dark, got %s", st.Theme)
	}

	var raw string
	if err := kv.Get(ctx, "theme-storage:c1", &raw); err != nil {
		t.Fatalf("raw get: %v", err)
	}
	if raw != `{"state":{"theme":"dark"}}` {
		t.Fatalf("unexpected persisted form %s", raw)
	}

	if err := s.Clear(ctx, "theme-storage", "c1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := s.Load(ctx, "theme-storage", "c1", &st); !errors.Is(err, domrepo.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after clear, got %v", err)
	}
}

func TestKVStateStore_Corrupt(t *testing.T) {
	ctx := context.Background()
	kv := cache.NewMemoryCache()
	defer kv.Close()
	_ = kv.Set(ctx, "auth-storage:c1", "{not json", 0)

	var st models.AuthState
	err := NewKVStateStore(kv).Load(ctx, "auth-storage", "c1", &st)
	if err == nil || errors.Is(err, domrepo.ErrNotFound) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestMemoryPublisher_FanOut(t *testing.T) {
	p := NewMemoryPublisher(2)
	var got []string
	p.Subscribe(func(_ context.Context, b []byte) error {
		var ev models.ActivityEvent
		if err := json.Unmarshal(b, &ev); err != nil {
			return err
		}
		got = append(got, ev.Type)
		return nil
	})

	for _, typ := range []string{models.EventLogin, models.EventSignalGenerated, models.EventLogout} {
		if err := p.Publish(context.Background(), &models.ActivityEvent{Type: typ, Client: "c1"}); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 deliveries, got %d", len(got))
	}
	if n := len(p.Events()); n != 2 {
		t.Fatalf("expected 2 retained events, got %d", n)
	}
}

func TestKVExportStore(t *testing.T) {
	ctx := context.Background()
	kv := cache.NewMemoryCache()
	defer kv.Close()
	s := NewKVExportStore(kv, time.Hour)

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, domrepo.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	job := &models.ExportJob{ID: "j1", Client: "c1", Status: models.ExportPending, CreatedAt: time.Now().UTC()}
	if err := s.Save(ctx, job); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Get(ctx, "j1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Client != "c1" || got.Status != models.ExportPending {
		t.Fatalf("unexpected job %+v", got)
	}
}
