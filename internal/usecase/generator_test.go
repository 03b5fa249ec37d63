package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"SignalDash/internal/domain/models"
	"SignalDash/internal/repository"
	"SignalDash/pkg/cache"
	xhttp "SignalDash/pkg/http"
	applogger "SignalDash/pkg/logger"
	"SignalDash/pkg/metrics"
)

func newGenerator(t *testing.T) (*Generator, *repository.MemoryPublisher, *int) {
	t.Helper()
	kv := cache.NewMemoryCache()
	t.Cleanup(func() { _ = kv.Close() })
	events := repository.NewMemoryPublisher(10)
	g := NewGenerator(kv, events, metrics.Noop{}, applogger.Nop(), 3*time.Second)
	sleeps := 0
	g.sleep = func(ctx context.Context, _ time.Duration) error {
		sleeps++
		return ctx.Err()
	}
	seq := []float64{0.9, 0.5, 0.5, 0.5, 0.5}
	i := 0
	g.rnd = func() float64 {
		v := seq[i%len(seq)]
		i++
		return v
	}
	g.newID = func() string { return "sig-1" }
	return g, events, &sleeps
}

func validRequest() *models.GenerateRequest {
	return &models.GenerateRequest{Symbol: "EUR/USD", Timeframe: "15M", Models: []string{"rsi", "macd"}, Threshold: 75}
}

func appCode(err error) string {
	var ae *xhttp.AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

func TestGenerator_Generate(t *testing.T) {
	g, events, sleeps := newGenerator(t)
	sig, err := g.Generate(context.Background(), "c1", validRequest())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if *sleeps != 1 {
		t.Fatalf("expected one delay, got %d", *sleeps)
	}
	if sig.Direction != models.DirectionCall {
		t.Fatalf("rand 0.9 must give CALL, got %s", sig.Direction)
	}
	if sig.Confidence != 85 {
		t.Fatalf("expected floor(0.5*20+75)=85, got %d", sig.Confidence)
	}
	if sig.EntryPrice != 1.0850 || sig.TargetPrice != 1.0920 || sig.StopLoss != 1.0800 {
		t.Fatalf("unexpected prices %+v", sig)
	}
	if sig.RiskReward != "1:2.3" || sig.RecommendedPosition != "2%" || sig.Analysis.Support != 1.0820 {
		t.Fatalf("unexpected fixed fields %+v", sig)
	}

	evs := events.Events()
	if len(evs) != 1 || evs[0].Type != models.EventSignalGenerated || evs[0].Client != "c1" {
		t.Fatalf("unexpected events %+v", evs)
	}
	var payload models.GeneratedSignal
	if err := json.Unmarshal(evs[0].Data, &payload); err != nil || payload.ID != "sig-1" {
		t.Fatalf("unexpected event payload %s err=%v", evs[0].Data, err)
	}
}

func TestGenerator_ConfidenceBounds(t *testing.T) {
	g, _, _ := newGenerator(t)
	for _, threshold := range []int{60, 75, 95} {
		for _, r := range []float64{0, 0.3, 0.999} {
			g.rnd = func() float64 { return r }
			req := validRequest()
			req.Threshold = threshold
			sig, err := g.Generate(context.Background(), "c1", req)
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			if sig.Confidence < threshold || sig.Confidence > ThresholdMax {
				t.Fatalf("threshold %d rand %v: confidence %d out of range", threshold, r, sig.Confidence)
			}
		}
	}
}

func TestGenerator_Rejects(t *testing.T) {
	cases := []struct {
		name string
		mut  func(r *models.GenerateRequest)
		code string
	}{
		{"no models", func(r *models.GenerateRequest) { r.Models = nil }, CodeNoModels},
		{"unknown symbol", func(r *models.GenerateRequest) { r.Symbol = "XAU/USD" }, CodeOneOf},
		{"unknown timeframe", func(r *models.GenerateRequest) { r.Timeframe = "1D" }, CodeOneOf},
		{"unknown model", func(r *models.GenerateRequest) { r.Models = []string{"rsi", "lstm"} }, CodeOneOf},
		{"threshold low", func(r *models.GenerateRequest) { r.Threshold = 59 }, CodeRange},
		{"threshold high", func(r *models.GenerateRequest) { r.Threshold = 96 }, CodeRange},
	}
	for _, c := range cases {
		g, events, sleeps := newGenerator(t)
		req := validRequest()
		c.mut(req)
		_, err := g.Generate(context.Background(), "c1", req)
		if appCode(err) != c.code {
			t.Fatalf("%s: expected %s, got %v", c.name, c.code, err)
		}
		if *sleeps != 0 || len(events.Events()) != 0 {
			t.Fatalf("%s: rejected request must not run the delay path", c.name)
		}
	}
}

func TestGenerator_SingleFlight(t *testing.T) {
	g, _, _ := newGenerator(t)
	started := make(chan struct{})
	release := make(chan struct{})
	g.sleep = func(ctx context.Context, _ time.Duration) error {
		close(started)
		<-release
		return nil
	}

	done := make(chan error, 1)
	go func() {
		_, err := g.Generate(context.Background(), "c1", validRequest())
		done <- err
	}()
	<-started

	_, err := g.Generate(context.Background(), "c1", validRequest())
	if appCode(err) != CodeBusy {
		t.Fatalf("expected busy, got %v", err)
	}
	var ae *xhttp.AppError
	if !errors.As(err, &ae) || ae.Status != 409 {
		t.Fatalf("expected 409, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first generate: %v", err)
	}

	g.sleep = noSleep
	if _, err := g.Generate(context.Background(), "c1", validRequest()); err != nil {
		t.Fatalf("lock must be released after completion: %v", err)
	}
}

func TestGenerator_Catalog(t *testing.T) {
	g, _, _ := newGenerator(t)
	c := g.Catalog()
	if len(c.Symbols) != 6 || len(c.Timeframes) != 5 || len(c.Models) != 4 {
		t.Fatalf("unexpected catalog sizes %d/%d/%d", len(c.Symbols), len(c.Timeframes), len(c.Models))
	}
	if c.Timeframes[0].Code != "5M" || c.Defaults.Threshold != 75 || c.Threshold.Min != 60 {
		t.Fatalf("unexpected catalog %+v", c)
	}
}
