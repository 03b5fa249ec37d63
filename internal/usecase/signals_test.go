package usecase

import (
	"testing"

	"SignalDash/internal/domain/models"
)

func TestSignalService_FilterByStatus(t *testing.T) {
	s := NewSignalService()
	for _, status := range []models.SignalStatus{models.StatusActive, models.StatusWon, models.StatusLost, models.StatusExpired} {
		var want int
		for _, sig := range signalCatalog {
			if sig.Status == status {
				want++
			}
		}
		got := s.Filter(string(status), "")
		if len(got) != want {
			t.Fatalf("status %s: expected %d, got %d", status, want, len(got))
		}
		for _, sig := range got {
			if sig.Status != status {
				t.Fatalf("status %s: got %s", status, sig.Status)
			}
		}
	}
	if len(s.Filter("all", "")) != len(signalCatalog) {
		t.Fatalf("all must return the whole catalog")
	}
}

func TestSignalService_Search(t *testing.T) {
	s := NewSignalService()
	cases := []struct {
		status, search string
		want           []string
	}{
		{"all", "eur", []string{"1"}},
		{"all", "/USD", []string{"1", "2", "3", "4"}},
		{"all", "MACD", []string{"2"}},
		{"all", "macd", []string{}},
		{"active", "usd", []string{"1", "3", "5"}},
		{"won", "eth", []string{}},
	}
	for _, c := range cases {
		got := s.Filter(c.status, c.search)
		if len(got) != len(c.want) {
			t.Fatalf("%s/%q: expected %v, got %d results", c.status, c.search, c.want, len(got))
		}
		for i, sig := range got {
			if sig.ID != c.want[i] {
				t.Fatalf("%s/%q: expected %v, got id %s at %d", c.status, c.search, c.want, sig.ID, i)
			}
		}
	}
}

func TestStats(t *testing.T) {
	st := Stats(signalCatalog)
	if st.Total != 5 || st.Active != 3 || st.WinRate != 50 || st.AvgConfidence != 87 {
		t.Fatalf("unexpected stats %+v", st)
	}
	if empty := Stats(nil); empty.WinRate != 0 || empty.AvgConfidence != 0 {
		t.Fatalf("empty stats must be zero, got %+v", empty)
	}
}

func TestProgress(t *testing.T) {
	cases := []struct {
		sig  models.Signal
		want float64
	}{
		{models.Signal{Direction: models.DirectionCall, EntryPrice: 100, CurrentPrice: 105, TargetPrice: 110}, 50},
		{models.Signal{Direction: models.DirectionCall, EntryPrice: 100, CurrentPrice: 95, TargetPrice: 110}, 0},
		{models.Signal{Direction: models.DirectionCall, EntryPrice: 100, CurrentPrice: 120, TargetPrice: 110}, 100},
		{models.Signal{Direction: models.DirectionPut, EntryPrice: 100, CurrentPrice: 90, TargetPrice: 80}, 50},
		{models.Signal{Direction: models.DirectionPut, EntryPrice: 100, CurrentPrice: 100, TargetPrice: 100}, 0},
	}
	for i, c := range cases {
		if got := c.sig.Progress(); got != c.want {
			t.Fatalf("case %d: expected %v, got %v", i, c.want, got)
		}
	}
}

func TestSignalService_PageAndGet(t *testing.T) {
	s := NewSignalService()
	p := s.Page(&models.SignalsQuery{Status: "won"})
	if len(p.Signals) != 1 || p.Signals[0].Badge.Variant != models.BadgeSuccess || p.Signals[0].Badge.Label != "فائز" {
		t.Fatalf("unexpected page %+v", p.Signals)
	}
	if p.Stats[0].Value != "5" || p.Stats[2].Value != "50%" {
		t.Fatalf("stat cards must cover the full catalog, got %+v", p.Stats)
	}
	if _, err := s.Get("42"); err == nil {
		t.Fatalf("expected not found")
	}
	v, err := s.Get("4")
	if err != nil || v.Badge.Variant != models.BadgeError {
		t.Fatalf("unexpected view %+v err=%v", v, err)
	}
}
