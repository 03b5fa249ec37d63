package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"SignalDash/internal/domain/models"
	domrepo "SignalDash/internal/domain/repository"
	pkgkafka "SignalDash/pkg/kafka"
	applogger "SignalDash/pkg/logger"
	"SignalDash/pkg/util"
)

const feedLimit = 20

var staticNotifications = []models.Notification{
	{ID: "1", Title: "إشارة جديدة متاحة", Message: "EUR/USD - إشارة شراء بثقة 87%", Time: "5 دقائق", Unread: true},
	{ID: "2", Title: "انتهاء اشتراك قريب", Message: "سينتهي اشتراكك خلال 3 أيام", Time: "1 ساعة", Unread: true},
	{ID: "3", Title: "تحديث النظام", Message: "تم تحديث المنصة بميزات جديدة", Time: "2 ساعات", Unread: false},
}

// NotificationFeed turns signal.generated activity into per-client
// notifications and pushes them to live subscribers. It is registered as a
// Kafka handler on the activity topic, or subscribed to the in-process
// publisher when Kafka is off.
type NotificationFeed struct {
	topic   string
	metrics domrepo.Metrics
	l       *applogger.Logger
	now     func() time.Time

	mu    sync.RWMutex
	items map[string][]models.Notification
	subs  map[string]map[chan models.Notification]struct{}
}

func NewNotificationFeed(topic string, metrics domrepo.Metrics, l *applogger.Logger) *NotificationFeed {
	return &NotificationFeed{
		topic:   topic,
		metrics: metrics,
		l:       l,
		now:     time.Now,
		items:   make(map[string][]models.Notification),
		subs:    make(map[string]map[chan models.Notification]struct{}),
	}
}

func (f *NotificationFeed) Topic() string { return f.topic }

// Handle consumes one activity event. Other event types are ignored.
func (f *NotificationFeed) Handle(ctx context.Context, b []byte) error {
	var ev models.ActivityEvent
	if err := json.Unmarshal(b, &ev); err != nil {
		f.metrics.RecordError("feed_unmarshal")
		return err
	}
	if ev.Type != models.EventSignalGenerated || ev.Client == "" {
		return nil
	}
	var sig models.GeneratedSignal
	if err := json.Unmarshal(ev.Data, &sig); err != nil {
		f.metrics.RecordError("feed_unmarshal")
		return fmt.Errorf("signal payload: %w", err)
	}
	if !ev.At.IsZero() {
		f.metrics.RecordLatency("feed_e2e", f.now().Sub(ev.At).Seconds())
	}

	verb := "بيع"
	if sig.Direction == models.DirectionCall {
		verb = "شراء"
	}
	n := models.Notification{
		ID:        uuid.NewString(),
		Title:     "إشارة جديدة متاحة",
		Message:   fmt.Sprintf("%s - إشارة %s بثقة %d%%", sig.Symbol, verb, sig.Confidence),
		CreatedAt: ev.At,
		Unread:    true,
	}
	f.Push(ev.Client, n)
	return nil
}

// Push appends n to client's feed and delivers it to live subscribers.
// Slow subscribers miss the update rather than block the feed.
func (f *NotificationFeed) Push(client string, n models.Notification) {
	f.mu.Lock()
	items := append([]models.Notification{n}, f.items[client]...)
	if len(items) > feedLimit {
		items = items[:feedLimit]
	}
	f.items[client] = items
	subs := make([]chan models.Notification, 0, len(f.subs[client]))
	for ch := range f.subs[client] {
		subs = append(subs, ch)
	}
	f.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- n:
		default:
			f.l.Debug("notification dropped for slow subscriber", applogger.String("client", client))
		}
	}
}

// Subscribe returns a channel of new notifications for client and a
// function that releases it.
func (f *NotificationFeed) Subscribe(client string) (<-chan models.Notification, func()) {
	ch := make(chan models.Notification, 16)
	f.mu.Lock()
	if f.subs[client] == nil {
		f.subs[client] = make(map[chan models.Notification]struct{})
	}
	f.subs[client][ch] = struct{}{}
	f.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs[client], ch)
			if len(f.subs[client]) == 0 {
				delete(f.subs, client)
			}
			f.mu.Unlock()
		})
	}
}

// List returns feed entries for client, newest first, followed by the
// built-in entries. since drops entries created before it.
func (f *NotificationFeed) List(client string, since time.Time, limit int) []models.Notification {
	now := f.now()
	f.mu.RLock()
	feed := f.items[client]
	out := make([]models.Notification, 0, len(feed)+len(staticNotifications))
	for _, n := range feed {
		if !since.IsZero() && n.CreatedAt.Before(since) {
			continue
		}
		n.Time = util.RelativeAge(n.CreatedAt, now)
		out = append(out, n)
	}
	f.mu.RUnlock()
	if since.IsZero() {
		out = append(out, staticNotifications...)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Menu is the header dropdown: entries plus unread count.
func (f *NotificationFeed) Menu(client string) models.NotificationMenu {
	items := f.List(client, time.Time{}, 0)
	m := models.NotificationMenu{Items: items}
	for _, n := range items {
		if n.Unread {
			m.UnreadCount++
		}
	}
	return m
}

var _ pkgkafka.MessageHandler = (*NotificationFeed)(nil)
