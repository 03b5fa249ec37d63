package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"
)

type capturePublisher struct {
	mu      sync.Mutex
	topic   string
	batches [][]AggregatedLogEntry
}

func (p *capturePublisher) PublishMessage(_ context.Context, topic string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topic = topic
	p.batches = append(p.batches, payload.([]AggregatedLogEntry))
	return nil
}

func TestLoggerWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf).With(String("client", "c-1"))
	l.Info("session.login", String("role", "admin"), Int("attempt", 2), Bool("ok", true))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v (%s)", err, buf.String())
	}
	if entry["message"] != "session.login" || entry["client"] != "c-1" || entry["role"] != "admin" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if entry["attempt"].(float64) != 2 || entry["ok"] != true {
		t.Fatalf("unexpected typed fields %v", entry)
	}
}

func TestCollectorAggregatesRepeatedErrors(t *testing.T) {
	pub := &capturePublisher{}
	l := Nop()
	l.AddCollector(&CollectionConfig{TimeInterval: time.Hour, CountThreshold: 10, Topic: "errs", Publisher: pub})

	for i := 0; i < 5; i++ {
		l.Error("kv write failed", Error(errors.New("boom")))
	}
	l.Error("other failure")

	if got := l.collector.Pending(); got != 2 {
		t.Fatalf("pending = %d, want 2", got)
	}

	l.RemoveCollector()

	pub.mu.Lock()
	defer pub.mu.Unlock()
	if pub.topic != "errs" || len(pub.batches) != 1 {
		t.Fatalf("expected one flush to errs, got topic=%q batches=%d", pub.topic, len(pub.batches))
	}
	counts := map[string]int{}
	for _, e := range pub.batches[0] {
		counts[e.Message] = e.Count
	}
	if counts["kv write failed"] != 5 || counts["other failure"] != 1 {
		t.Fatalf("unexpected counts %v", counts)
	}
}
