package repository

import (
	"context"
	"errors"
	"time"

	"SignalDash/internal/domain/models"
)

// ErrNotFound is returned by stores when no record exists for a key.
var ErrNotFound = errors.New("record not found")

// StateStore persists per-client records as {"state": ...} envelopes under
// "<namespace>:<client>".
type StateStore interface {
	Load(ctx context.Context, namespace, client string, dest interface{}) error
	Save(ctx context.Context, namespace, client string, state interface{}) error
	Clear(ctx context.Context, namespace, client string) error
}

// ExportStore keeps export job records until they expire.
type ExportStore interface {
	Save(ctx context.Context, job *models.ExportJob) error
	Get(ctx context.Context, id string) (*models.ExportJob, error)
}

// EventPublisher ships activity events.
type EventPublisher interface {
	Publish(ctx context.Context, ev *models.ActivityEvent) error
	Close() error
}

// Locker guards single-flight operations per key.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}

type Metrics interface {
	RecordSessionEvent(event string)
	RecordSignalGenerated(symbol, direction string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
