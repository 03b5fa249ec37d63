package i18n

import (
	"testing"

	"SignalDash/internal/domain/models"
)

func TestMatch(t *testing.T) {
	cases := []struct {
		header string
		want   models.Language
	}{
		{"", models.LangAR},
		{"en-US,en;q=0.9", models.LangEN},
		{"ar-SA", models.LangAR},
		{"fr-FR,en;q=0.5", models.LangEN},
		{"ja", models.LangAR},
		{"%%%", models.LangAR},
	}
	for _, c := range cases {
		if got := Match(c.header); got != c.want {
			t.Fatalf("Match(%q) = %s, want %s", c.header, got, c.want)
		}
	}
}

func TestTranslator(t *testing.T) {
	tr, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := tr.T(models.LangEN, "nav.dashboard"); got != "Dashboard" {
		t.Fatalf("unexpected en translation %q", got)
	}
	if got := tr.T(models.LangAR, "nav.settings"); got != "الإعدادات" {
		t.Fatalf("unexpected ar translation %q", got)
	}
	if got := tr.T(models.LangEN, "missing.key"); got != "missing.key" {
		t.Fatalf("missing key should echo, got %q", got)
	}
	if got := tr.T(models.LangEN, "dashboard.greeting", "Ahmed"); got != "Welcome Ahmed!" {
		t.Fatalf("unexpected greeting %q", got)
	}
	if Dir(models.LangAR) != "rtl" || Dir(models.LangEN) != "ltr" {
		t.Fatalf("unexpected directions")
	}
}
