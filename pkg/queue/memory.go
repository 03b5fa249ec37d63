package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"SignalDash/pkg/logger"

	"github.com/google/uuid"
)

// MemoryQueue runs jobs in-process. It backs the queue when no Redis is
// configured; messages are lost on restart.
type MemoryQueue struct {
	logger  *logger.Logger
	config  *QueueConfig
	jobs    map[string]Job
	mu      sync.RWMutex
	msgCh   chan Message
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	running bool
}

// NewMemoryQueue creates an in-process queue.
func NewMemoryQueue(lgr *logger.Logger, config *QueueConfig) *MemoryQueue {
	if config == nil {
		config = &QueueConfig{}
	}
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.QueueSize <= 0 {
		config.QueueSize = 100
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = 10 * time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &MemoryQueue{
		logger: lgr,
		config: config,
		jobs:   make(map[string]Job),
		msgCh:  make(chan Message, config.QueueSize),
		ctx:    ctx,
		cancel: cancel,
	}
}

// RegisterJob registers a single job.
func (m *MemoryQueue) RegisterJob(job Job) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.jobs[job.Type()]; exists {
		m.logger.Warn("job already registered", logger.String("job", job.Name()))
		return
	}
	m.jobs[job.Type()] = job
	m.logger.Info("job registered", logger.String("job", job.Name()), logger.String("type", job.Type()))
}

// Start launches the workers.
func (m *MemoryQueue) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return fmt.Errorf("queue already running")
	}
	m.running = true
	for i := 0; i < m.config.Workers; i++ {
		m.wg.Add(1)
		go m.worker()
	}
	m.logger.Info("memory queue started", logger.Int("workers", m.config.Workers))
	return nil
}

// Stop cancels in-flight jobs and waits for the workers.
func (m *MemoryQueue) Stop(ctx context.Context) error {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return nil
	}
	m.running = false
	m.cancel()
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-ctx.Done():
		return fmt.Errorf("timeout: %w", ctx.Err())
	case <-done:
		m.logger.Info("memory queue stopped")
		return nil
	}
}

// PublishMessage enqueues a message for the job registered for msgType.
func (m *MemoryQueue) PublishMessage(ctx context.Context, msgType string, payload interface{}) error {
	m.mu.RLock()
	running := m.running
	_, exists := m.jobs[msgType]
	m.mu.RUnlock()

	if !running {
		return fmt.Errorf("queue not running")
	}
	if !exists {
		return fmt.Errorf("no job registered for type: %s", msgType)
	}

	msg := Message{ID: uuid.NewString(), Type: msgType, Payload: payload, Timestamp: time.Now()}
	select {
	case m.msgCh <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-m.ctx.Done():
		return fmt.Errorf("queue stopping")
	}
}

func (m *MemoryQueue) worker() {
	defer m.wg.Done()
	for {
		select {
		case <-m.ctx.Done():
			return
		case msg := <-m.msgCh:
			m.process(msg)
		}
	}
}

func (m *MemoryQueue) process(msg Message) {
	m.mu.RLock()
	job, ok := m.jobs[msg.Type]
	m.mu.RUnlock()
	if !ok {
		return
	}

	for {
		err := job.Handle(m.ctx, msg.Payload)
		if err == nil || errors.Is(err, context.Canceled) {
			return
		}
		m.logger.Error("message processing error",
			logger.String("id", msg.ID),
			logger.String("job", job.Name()),
			logger.Int("attempt", msg.Attempts+1),
			logger.Error(err))
		if msg.Attempts >= m.config.RetryLimit {
			m.logger.Error("max retries reached", logger.String("id", msg.ID), logger.String("job", job.Name()))
			return
		}
		msg.Attempts++
		select {
		case <-time.After(m.config.RetryDelay):
		case <-m.ctx.Done():
			return
		}
	}
}
