package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
)

type memWriter struct {
	mu   sync.Mutex
	msgs []kafka.Message
	err  error
}

func (w *memWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *memWriter) Close() error { return nil }

func TestProducerEncodesValues(t *testing.T) {
	w := &memWriter{}
	p := newProducerWithWriter(w, "snappy")

	if err := p.Publish(context.Background(), "activity", []byte("c1"), map[string]string{"type": "session.login"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := p.PublishMessage(context.Background(), "activity", "raw"); err != nil {
		t.Fatalf("publish raw: %v", err)
	}
	if len(w.msgs) != 2 {
		t.Fatalf("messages = %d, want 2", len(w.msgs))
	}
	var ev map[string]string
	if err := json.Unmarshal(w.msgs[0].Value, &ev); err != nil || ev["type"] != "session.login" {
		t.Fatalf("first message = %s (%v)", w.msgs[0].Value, err)
	}
	if string(w.msgs[0].Key) != "c1" || w.msgs[0].Topic != "activity" {
		t.Fatalf("key/topic not set: %+v", w.msgs[0])
	}
	if string(w.msgs[1].Value) != "raw" {
		t.Fatalf("raw value = %q", w.msgs[1].Value)
	}
}

func TestProducerSurfacesWriteErrors(t *testing.T) {
	p := newProducerWithWriter(&memWriter{err: errors.New("broker down")}, "gzip")
	if err := p.Publish(context.Background(), "t", nil, "x"); err == nil {
		t.Fatalf("expected error")
	}
}

type flakyHandler struct {
	mu       sync.Mutex
	failures int
	calls    int
	got      [][]byte
}

func (h *flakyHandler) Topic() string { return "feed" }

func (h *flakyHandler) Handle(_ context.Context, data []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls++
	if h.calls <= h.failures {
		return errors.New("transient")
	}
	h.got = append(h.got, data)
	return nil
}

func newTestConsumer(t *testing.T, retry int) *Consumer {
	t.Helper()
	c, err := NewConsumer(
		WithConsumerBrokers([]string{"localhost:9092"}),
		WithConsumerRetry(retry, time.Millisecond, 2*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("new consumer: %v", err)
	}
	return c
}

func TestConsumerRetriesThenSucceeds(t *testing.T) {
	c := newTestConsumer(t, 3)
	h := &flakyHandler{failures: 2}
	c.RegisterHandler(h)

	c.process(&message{topic: "feed", data: []byte("hello")})

	if h.calls != 3 || len(h.got) != 1 || string(h.got[0]) != "hello" {
		t.Fatalf("calls=%d got=%q", h.calls, h.got)
	}
}

func TestConsumerSendsToDLQAfterRetries(t *testing.T) {
	c := newTestConsumer(t, 1)
	dlq := &memWriter{}
	c.dlq = dlq
	c.cfg.DLQTopic = "feed.dlq"
	h := &flakyHandler{failures: 10}
	c.RegisterHandler(h)

	var errs int
	c.WithConsumerHook(HookFuncs{Err: func(context.Context, string, kafka.Message, []byte, error) { errs++ }})

	c.process(&message{topic: "feed", data: []byte("poison")})

	if h.calls != 2 {
		t.Fatalf("calls = %d, want 2", h.calls)
	}
	if len(dlq.msgs) != 1 || dlq.msgs[0].Topic != "feed.dlq" || string(dlq.msgs[0].Value) != "poison" {
		t.Fatalf("dlq = %+v", dlq.msgs)
	}
	if errs == 0 {
		t.Fatalf("error hook not called")
	}
}

func TestTraceHookPropagatesHeader(t *testing.T) {
	km := kafka.Message{Headers: []kafka.Header{{Key: "trace_id", Value: []byte("abc")}}}
	ctx, _, _, err := NewHookChain(TraceHook(), nil).BeforeHandle(context.Background(), "feed", km, nil)
	if err != nil {
		t.Fatalf("before: %v", err)
	}
	if TraceIDFromContext(ctx) != "abc" {
		t.Fatalf("trace id = %q", TraceIDFromContext(ctx))
	}
}

func TestHookChainRecoversPanics(t *testing.T) {
	chain := NewHookChain(HookFuncs{
		Before: func(context.Context, string, kafka.Message, []byte) (context.Context, kafka.Message, []byte, error) {
			panic("boom")
		},
	})
	_, _, _, err := chain.BeforeHandle(context.Background(), "feed", kafka.Message{}, nil)
	var he *HookError
	if !errors.As(err, &he) || he.Code != "ERR_PANIC" {
		t.Fatalf("expected ERR_PANIC, got %v", err)
	}
}

func TestBackoffStaysWithinBounds(t *testing.T) {
	for attempt := 1; attempt < 10; attempt++ {
		d := backoffWithJitter(10*time.Millisecond, 100*time.Millisecond, attempt)
		if d <= 0 || d > 100*time.Millisecond {
			t.Fatalf("attempt %d: backoff %v out of range", attempt, d)
		}
	}
}
