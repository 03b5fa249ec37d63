package usecase

import (
	"context"
	"testing"
	"time"

	"SignalDash/internal/domain/models"
	"SignalDash/internal/repository"
	"SignalDash/pkg/cache"
	applogger "SignalDash/pkg/logger"
)

func TestPageBuilder_Dashboard(t *testing.T) {
	d := newDeps(t)
	b := NewPageBuilder(d.locale)
	p := b.Dashboard(&models.User{FirstName: "أحمد"}, models.LangAR)
	if p.Greeting != "مرحباً أحمد!" {
		t.Fatalf("unexpected greeting %q", p.Greeting)
	}
	if len(p.Stats) != 4 || len(p.SignalPerformance) != 6 || len(p.MarketDistribution) != 3 || len(p.ModelPerformance) != 4 || len(p.RecentSignals) != 3 {
		t.Fatalf("unexpected dashboard shape %+v", p)
	}
	if p.RecentSignals[1].Badge.Variant != models.BadgeSuccess {
		t.Fatalf("won signal must carry a success badge")
	}
}

func TestPageBuilder_Analytics(t *testing.T) {
	d := newDeps(t)
	b := NewPageBuilder(d.locale)

	p, err := b.Analytics(&models.AnalyticsQuery{Range: "7d", Market: "all"})
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if len(p.Performance) != 7 || len(p.MarketDistribution) != 4 || len(p.ModelComparison) != 4 || len(p.HourlyPerformance) != 12 {
		t.Fatalf("unexpected analytics shape")
	}
	active := 0
	for _, r := range p.Ranges {
		if r.Active {
			active++
			if r.Value != "7d" {
				t.Fatalf("wrong active range %s", r.Value)
			}
		}
	}
	if active != 1 {
		t.Fatalf("expected one active range, got %d", active)
	}

	p, err = b.Analytics(&models.AnalyticsQuery{Range: "1y", Market: "crypto"})
	if err != nil || len(p.MarketDistribution) != 1 || p.MarketDistribution[0].Signals != 189 {
		t.Fatalf("unexpected crypto filter %+v err=%v", p.MarketDistribution, err)
	}
	if _, err := b.Analytics(&models.AnalyticsQuery{Range: "7d", Market: "bonds"}); appCode(err) != CodeOneOf {
		t.Fatalf("expected ERR_ONEOF for unknown market, got %v", err)
	}
}

func TestSubscriptionService(t *testing.T) {
	s := NewSubscriptionService()

	p := s.Plans(nil, models.CycleYearly)
	if p.Discount != 17 || p.CurrentPlan.ID != "premium" {
		t.Fatalf("unexpected plans page %+v", p)
	}
	for _, v := range p.Plans {
		switch v.ID {
		case "free":
			if v.Amount != 0 || v.Savings != 0 {
				t.Fatalf("free plan must be free %+v", v)
			}
		case "premium":
			if v.Amount != 490 || v.Savings != 98 || !v.Current || !v.Recommended {
				t.Fatalf("unexpected premium %+v", v)
			}
		case "professional":
			if v.Amount != 990 || v.Savings != 198 {
				t.Fatalf("unexpected professional %+v", v)
			}
		}
	}

	monthly := s.Plans(&models.User{Subscription: models.Subscription{Plan: models.TierFree}}, models.CycleMonthly)
	if monthly.Discount != 0 || monthly.CurrentPlan.ID != "free" || monthly.Plans[1].Amount != 49 {
		t.Fatalf("unexpected monthly page %+v", monthly)
	}
	if CurrentPlan(&models.User{Subscription: models.Subscription{Plan: models.TierEnterprise}}).ID != "premium" {
		t.Fatalf("unknown tier must fall back to premium")
	}

	q, err := s.Quote("professional", models.CycleYearly)
	if err != nil || q.Amount != 990 || q.Savings != 198 || q.Discount != 17 {
		t.Fatalf("unexpected quote %+v err=%v", q, err)
	}
	if _, err := s.Quote("gold", models.CycleMonthly); err == nil {
		t.Fatalf("expected unknown plan to fail")
	}
}

type captureQueue struct {
	types    []string
	payloads []interface{}
}

func (q *captureQueue) PublishMessage(_ context.Context, msgType string, payload interface{}) error {
	q.types = append(q.types, msgType)
	q.payloads = append(q.payloads, payload)
	return nil
}

func TestSettingsService(t *testing.T) {
	ctx := context.Background()
	d := newDeps(t)
	kv := cache.NewMemoryCache()
	t.Cleanup(func() { _ = kv.Close() })
	exports := repository.NewKVExportStore(kv, time.Hour)
	q := &captureQueue{}
	s := NewSettingsService(d.session, d.theme, d.locale, exports, q, applogger.Nop(), time.Second)
	s.sleep = noSleep

	name := "Omar"
	if _, err := s.UpdateProfile(ctx, "c1", &models.ProfileRequest{FirstName: &name}); err == nil {
		t.Fatalf("expected unauthorized without a user")
	}

	_, _ = d.session.Login(ctx, "c1", "a@b.c", "x")
	u, err := s.UpdateProfile(ctx, "c1", &models.ProfileRequest{FirstName: &name})
	if err != nil || u.FirstName != "Omar" {
		t.Fatalf("unexpected profile %+v err=%v", u, err)
	}

	off := false
	u, err = s.UpdateNotifications(ctx, "c1", &models.NotificationPrefsRequest{SMS: &off})
	if err != nil || u.Preferences.Notifications.SMS || !u.Preferences.Notifications.Email {
		t.Fatalf("unexpected channels %+v err=%v", u.Preferences.Notifications, err)
	}

	res, err := s.UpdatePreferences(ctx, "c1", &models.PreferencesRequest{Theme: models.ThemeDark, Language: models.LangEN}, nil, "")
	if err != nil {
		t.Fatalf("preferences: %v", err)
	}
	if res.Document.Class != "dark" || res.Document.Dir != "ltr" || res.User.Preferences.Language != models.LangEN {
		t.Fatalf("unexpected preferences result %+v", res)
	}

	page := s.Page(res.User, "security", res.Theme, res.Locale)
	if len(page.Tabs) != 6 || len(page.Sessions) != 3 || !page.Theme[1].Active || !page.Language[1].Active {
		t.Fatalf("unexpected settings page %+v", page)
	}

	job, err := s.RequestExport(ctx, "c1")
	if err != nil || job.Status != models.ExportPending {
		t.Fatalf("export: %+v err=%v", job, err)
	}
	if len(q.types) != 1 || q.types[0] != ExportMessageType {
		t.Fatalf("expected one queued export, got %v", q.types)
	}

	runner := NewExportJob(d.session, exports, applogger.Nop())
	if err := runner.Handle(ctx, q.payloads[0]); err != nil {
		t.Fatalf("handle: %v", err)
	}
	got, err := s.Export(ctx, "c1", job.ID)
	if err != nil || got.Status != models.ExportDone || got.Payload == nil || got.Payload.FirstName != "Omar" {
		t.Fatalf("unexpected finished export %+v err=%v", got, err)
	}
	if _, err := s.Export(ctx, "c2", job.ID); err == nil {
		t.Fatalf("exports must not leak across clients")
	}
}
