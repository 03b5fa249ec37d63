package usecase

import (
	"context"
	"testing"
	"time"

	"SignalDash/internal/repository"
	"SignalDash/internal/service/i18n"
	"SignalDash/pkg/cache"
	applogger "SignalDash/pkg/logger"
	"SignalDash/pkg/metrics"
)

type deps struct {
	kv      *cache.MemoryCache
	events  *repository.MemoryPublisher
	session *SessionStore
	theme   *ThemeStore
	locale  *LocaleAdapter
	feed    *NotificationFeed
	shell   *ShellService
}

func noSleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }

func newDeps(t *testing.T) *deps {
	t.Helper()
	kv := cache.NewMemoryCache()
	t.Cleanup(func() { _ = kv.Close() })
	store := repository.NewKVStateStore(kv)
	l := applogger.Nop()
	tr, err := i18n.New()
	if err != nil {
		t.Fatalf("i18n: %v", err)
	}
	events := repository.NewMemoryPublisher(10)
	d := &deps{kv: kv, events: events}
	d.session = NewSessionStore(store, events, metrics.Noop{}, l, time.Second)
	d.session.sleep = noSleep
	d.theme = NewThemeStore(store, l)
	d.locale = NewLocaleAdapter(store, tr, l)
	d.feed = NewNotificationFeed("signaldash.activity", metrics.Noop{}, l)
	d.shell = NewShellService(d.session, d.theme, d.locale, d.feed, NewSignalService(), store, l)
	return d
}
