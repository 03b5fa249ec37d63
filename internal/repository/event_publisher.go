package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"SignalDash/internal/domain/models"
	"SignalDash/internal/domain/repository"
	pkgkafka "SignalDash/pkg/kafka"
)

// KafkaPublisher implements EventPublisher for Kafka. Events are keyed by
// client so one client's events stay ordered within a partition.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev *models.ActivityEvent) error {
	if err := p.producer.Publish(ctx, p.topic, []byte(ev.Client), ev); err != nil {
		return fmt.Errorf("publish %s: %w", ev.Type, err)
	}
	return nil
}

// PublishMessage lets the log collector ship aggregated errors through the
// same producer.
func (p *KafkaPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return p.producer.PublishMessage(ctx, topic, payload)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// MemoryPublisher keeps events in process and fans them out to local
// subscribers. Used when Kafka is disabled so the notification feed still
// sees generated signals.
type MemoryPublisher struct {
	mu     sync.RWMutex
	events []*models.ActivityEvent
	subs   []func(ctx context.Context, payload []byte) error
	limit  int
}

// NewMemoryPublisher creates an in-process publisher retaining at most
// limit events.
func NewMemoryPublisher(limit int) *MemoryPublisher {
	if limit <= 0 {
		limit = 100
	}
	return &MemoryPublisher{limit: limit}
}

// Subscribe registers a consumer callback, typically a kafka MessageHandler's
// Handle method.
func (p *MemoryPublisher) Subscribe(fn func(ctx context.Context, payload []byte) error) {
	p.mu.Lock()
	p.subs = append(p.subs, fn)
	p.mu.Unlock()
}

func (p *MemoryPublisher) Publish(ctx context.Context, ev *models.ActivityEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode %s: %w", ev.Type, err)
	}
	p.mu.Lock()
	p.events = append(p.events, ev)
	if len(p.events) > p.limit {
		p.events = p.events[len(p.events)-p.limit:]
	}
	subs := append([]func(context.Context, []byte) error(nil), p.subs...)
	p.mu.Unlock()

	for _, fn := range subs {
		if err := fn(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

// PublishMessage discards aggregated logs; there is nowhere durable to put them.
func (p *MemoryPublisher) PublishMessage(context.Context, string, interface{}) error { return nil }

// Events returns a copy of the retained events.
func (p *MemoryPublisher) Events() []*models.ActivityEvent {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]*models.ActivityEvent(nil), p.events...)
}

func (p *MemoryPublisher) Close() error { return nil }

var (
	_ repository.EventPublisher = (*KafkaPublisher)(nil)
	_ repository.EventPublisher = (*MemoryPublisher)(nil)
)
