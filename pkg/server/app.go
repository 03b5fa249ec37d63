package server

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"SignalDash/internal/domain/repository"
	"SignalDash/internal/service/ratelimit"
	"SignalDash/pkg/config"
	xhttp "SignalDash/pkg/http"
	pkgkafka "SignalDash/pkg/kafka"
	applogger "SignalDash/pkg/logger"
	"SignalDash/pkg/queue"
)

const limiterPruneInterval = 5 * time.Minute

// Closer is an infrastructure client released on shutdown.
type Closer interface {
	Close() error
}

// App encapsulates the entire application lifecycle.
type App struct {
	cfg       *config.Config
	log       *applogger.Logger
	http      *xhttp.Server
	consumer  *pkgkafka.Consumer
	feed      pkgkafka.MessageHandler
	jobs      queue.Runner
	publisher repository.EventPublisher
	limiter   *ratelimit.Limiter
	storage   Closer
}

// Deps groups what the App starts and stops. Consumer is nil when activity
// events stay in process.
type Deps struct {
	HTTP      *xhttp.Server
	Consumer  *pkgkafka.Consumer
	Feed      pkgkafka.MessageHandler
	Jobs      queue.Runner
	Publisher repository.EventPublisher
	Limiter   *ratelimit.Limiter
	Storage   Closer
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, l *applogger.Logger, d Deps) *App {
	return &App{
		cfg:       cfg,
		log:       l,
		http:      d.HTTP,
		consumer:  d.Consumer,
		feed:      d.Feed,
		jobs:      d.Jobs,
		publisher: d.Publisher,
		limiter:   d.Limiter,
		storage:   d.Storage,
	}
}

// Run starts the application and blocks until interrupted or the HTTP
// listener fails.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if a.cfg.Events.Enabled && a.publisher != nil {
		if p, ok := a.publisher.(applogger.Publisher); ok {
			a.log.AddCollector(&applogger.CollectionConfig{
				TimeInterval:   30 * time.Second,
				CountThreshold: 100,
				Topic:          a.cfg.Events.ErrorLogTopic,
				Publisher:      p,
			})
			a.log.Info("error log collector attached", applogger.String("topic", a.cfg.Events.ErrorLogTopic))
		}
	}

	if a.jobs != nil {
		if err := a.jobs.Start(); err != nil {
			return err
		}
	}

	if a.consumer != nil && a.feed != nil {
		a.consumer.RegisterHandler(a.feed)
		go func() {
			if err := a.consumer.Start(); err != nil {
				a.log.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		a.log.Info("kafka consumer started", applogger.String("topic", a.feed.Topic()))
	}

	if a.limiter != nil {
		go a.pruneLimiter(ctx)
	}

	errCh := a.http.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		a.log.Info("shutdown signal received", applogger.String("signal", sig.String()))
	case err, ok := <-errCh:
		if ok && err != nil {
			a.log.Error("http server start error", applogger.Error(err))
			runErr = err
		}
	}

	cancel()
	if err := a.shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

func (a *App) pruneLimiter(ctx context.Context) {
	t := time.NewTicker(limiterPruneInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := a.limiter.Prune(limiterPruneInterval); n > 0 {
				a.log.Debug("rate limiter pruned", applogger.Int("buckets", n))
			}
		}
	}
}

// shutdown stops intake first, then drains background work, then closes
// clients.
func (a *App) shutdown() error {
	a.log.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.http.Stop(ctx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
		errs = append(errs, err)
	}

	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			a.log.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	if a.jobs != nil {
		if err := a.jobs.Stop(ctx); err != nil {
			a.log.Warn("queue stop error", applogger.Error(err))
		}
	}

	a.log.RemoveCollector()

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Warn("event publisher close error", applogger.Error(err))
		}
	}

	if a.storage != nil {
		if err := a.storage.Close(); err != nil {
			a.log.Warn("storage close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return errors.Join(errs...)
}
