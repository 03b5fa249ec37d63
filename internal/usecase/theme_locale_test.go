package usecase

import (
	"context"
	"testing"

	"SignalDash/internal/domain/models"
	"SignalDash/internal/repository"
	applogger "SignalDash/pkg/logger"
)

func TestThemeStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	d := newDeps(t)
	light := ProbeFromHeader("light")

	orig, err := d.theme.Current(ctx, "c1", light)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if orig.Theme != models.ThemeSystem || orig.Class != "light" {
		t.Fatalf("unexpected default %+v", orig)
	}

	dark, _ := d.theme.SetTheme(ctx, "c1", models.ThemeDark, light)
	if dark.Class != "dark" {
		t.Fatalf("expected dark class, got %s", dark.Class)
	}
	back, _ := d.theme.SetTheme(ctx, "c1", models.ThemeLight, light)
	if back.Class != orig.Class {
		t.Fatalf("expected %s after round trip, got %s", orig.Class, back.Class)
	}
}

func TestThemeStore_Toggle(t *testing.T) {
	ctx := context.Background()
	d := newDeps(t)
	probe := ProbeFromHeader(`"dark"`)

	res, _ := d.theme.ToggleTheme(ctx, "c1", probe)
	if res.Theme != models.ThemeLight {
		t.Fatalf("toggle from system must give light, got %s", res.Theme)
	}
	res, _ = d.theme.ToggleTheme(ctx, "c1", probe)
	if res.Theme != models.ThemeDark {
		t.Fatalf("toggle from light must give dark, got %s", res.Theme)
	}
	res, _ = d.theme.ToggleTheme(ctx, "c1", probe)
	if res.Theme != models.ThemeLight {
		t.Fatalf("toggle from dark must give light, got %s", res.Theme)
	}
}

func TestThemeStore_SystemUsesProbe(t *testing.T) {
	ctx := context.Background()
	d := newDeps(t)
	res, _ := d.theme.SetTheme(ctx, "c1", models.ThemeSystem, ProbeFromHeader("dark"))
	if res.Class != "dark" {
		t.Fatalf("expected dark from probe, got %s", res.Class)
	}
	if _, err := d.theme.SetTheme(ctx, "c1", "sepia", nil); err == nil {
		t.Fatalf("expected invalid theme to be rejected")
	}

	fresh := NewThemeStore(repository.NewKVStateStore(d.kv), applogger.Nop())
	cur, _ := fresh.Current(ctx, "c1", nil)
	if cur.Theme != models.ThemeSystem || cur.Class != "light" {
		t.Fatalf("expected rehydrated system resolved with new probe, got %+v", cur)
	}
}

func TestLocaleAdapter(t *testing.T) {
	ctx := context.Background()
	d := newDeps(t)

	cur, err := d.locale.Current(ctx, "c1", "en-GB,en;q=0.8")
	if err != nil || cur.Language != models.LangEN || cur.IsRTL || cur.Dir != "ltr" {
		t.Fatalf("unexpected first-visit locale %+v err=%v", cur, err)
	}

	if _, err := d.locale.ChangeLanguage(ctx, "c1", models.LangAR); err != nil {
		t.Fatalf("change: %v", err)
	}
	cur, _ = d.locale.Current(ctx, "c1", "en")
	if cur.Language != models.LangAR || !cur.IsRTL || cur.Dir != "rtl" {
		t.Fatalf("stored language must win over header, got %+v", cur)
	}

	if _, err := d.locale.ChangeLanguage(ctx, "c1", "fr"); err == nil {
		t.Fatalf("expected unsupported language to be rejected")
	}
	if got := d.locale.T(models.LangEN, "no.such.key"); got != "no.such.key" {
		t.Fatalf("missing key must echo, got %q", got)
	}

	doc := Document(ThemeResult{Class: "dark"}, cur)
	if doc.Class != "dark" || doc.Dir != "rtl" || doc.Lang != models.LangAR {
		t.Fatalf("unexpected document %+v", doc)
	}
}
