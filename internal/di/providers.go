package di

import (
	"fmt"

	"SignalDash/internal/domain/repository"
	"SignalDash/internal/handler/api"
	mid "SignalDash/internal/middleware"
	internalrepo "SignalDash/internal/repository"
	icache "SignalDash/internal/service/cache"
	"SignalDash/internal/service/i18n"
	"SignalDash/internal/service/ratelimit"
	"SignalDash/internal/service/tokens"
	"SignalDash/internal/usecase"
	"SignalDash/pkg/cache"
	"SignalDash/pkg/config"
	xhttp "SignalDash/pkg/http"
	pkgkafka "SignalDash/pkg/kafka"
	applogger "SignalDash/pkg/logger"
	"SignalDash/pkg/metrics"
	"SignalDash/pkg/queue"
	"SignalDash/pkg/server"
)

// ProvideLogger creates the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder, or a no-op one when
// metrics are disabled.
func ProvideMetrics(cfg *config.Config) repository.Metrics {
	if !cfg.Metrics.Enabled {
		return metrics.Noop{}
	}
	return metrics.New()
}

// ProvideRedisCache connects to Redis for the redis and layered backends.
// It returns nil for the memory backend.
func ProvideRedisCache(cfg *config.Config) (*cache.RedisCache, error) {
	if !cfg.UsesRedis() {
		return nil, nil
	}
	r := cfg.Storage.Redis
	c, err := cache.NewRedisCache(
		cache.WithRedisHost(r.Host),
		cache.WithRedisPort(r.Port),
		cache.WithRedisPassword(r.Password),
		cache.WithRedisDB(r.DB),
		cache.WithRedisPool(r.PoolSize, r.MinIdleConns, r.PoolTimeout),
		cache.WithRedisPrefix(cfg.Storage.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return c, nil
}

// ProvideStorage picks the key-value backend behind every persisted record.
func ProvideStorage(cfg *config.Config, rc *cache.RedisCache) cache.Service {
	switch cfg.Storage.Backend {
	case "redis":
		return rc
	case "layered":
		return cache.NewLayeredCache(rc, cache.WithLayeredMemorySize(cfg.Storage.MemoryMaxSize))
	default:
		return cache.NewMemoryCache(cache.WithMemoryMaxSize(cfg.Storage.MemoryMaxSize))
	}
}

func ProvideStateStore(kv cache.Service) repository.StateStore {
	return internalrepo.NewKVStateStore(kv)
}

func ProvideExportStore(kv cache.Service, cfg *config.Config) repository.ExportStore {
	return internalrepo.NewKVExportStore(kv, cfg.Export.ResultTTL)
}

func ProvideLocker(kv cache.Service) repository.Locker {
	return kv
}

// ProvideKafkaProducer creates a Kafka producer. It returns nil when
// activity events stay in process.
func ProvideKafkaProducer(cfg *config.Config, l *applogger.Logger) (*pkgkafka.Producer, error) {
	if !cfg.Events.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithProducerLogger(l),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

func ProvideNotificationFeed(cfg *config.Config, m repository.Metrics, l *applogger.Logger) *usecase.NotificationFeed {
	return usecase.NewNotificationFeed(cfg.Events.ActivityTopic, m, l)
}

// ProvideEventPublisher ships activity events to Kafka when enabled.
// Otherwise events fan out in process straight to the notification feed.
func ProvideEventPublisher(cfg *config.Config, producer *pkgkafka.Producer, feed *usecase.NotificationFeed) repository.EventPublisher {
	if producer != nil {
		return internalrepo.NewKafkaPublisher(producer, cfg.Events.ActivityTopic)
	}
	p := internalrepo.NewMemoryPublisher(100)
	p.Subscribe(feed.Handle)
	return p
}

// ProvideKafkaConsumer creates the consumer that feeds notifications from
// the activity topic. It returns nil when the feed is served in process.
func ProvideKafkaConsumer(cfg *config.Config, l *applogger.Logger) (*pkgkafka.Consumer, error) {
	if !cfg.Events.Enabled || !cfg.Events.NotificationFeed {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
		pkgkafka.WithConsumerLogger(l),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	consumer.WithConsumerHook(pkgkafka.TraceHook())
	return consumer, nil
}

func ProvideTranslator() (*i18n.Translator, error) {
	tr, err := i18n.New()
	if err != nil {
		return nil, fmt.Errorf("translations: %w", err)
	}
	return tr, nil
}

func ProvideSessionStore(store repository.StateStore, events repository.EventPublisher, m repository.Metrics, l *applogger.Logger, cfg *config.Config) *usecase.SessionStore {
	return usecase.NewSessionStore(store, events, m, l, cfg.Session.Latency)
}

func ProvideGenerator(locks repository.Locker, events repository.EventPublisher, m repository.Metrics, l *applogger.Logger, cfg *config.Config) *usecase.Generator {
	return usecase.NewGenerator(locks, events, m, l, cfg.Generator.Delay)
}

// ProvideJobQueue runs account exports on Redis when storage already uses
// it, in process otherwise.
func ProvideJobQueue(cfg *config.Config, l *applogger.Logger, rc *cache.RedisCache, export *usecase.ExportJob) queue.Runner {
	qc := &queue.QueueConfig{
		Workers:    cfg.Export.Workers,
		RetryLimit: cfg.Export.RetryLimit,
		RetryDelay: cfg.Export.RetryDelay,
	}
	var q queue.Runner
	if rc != nil {
		q = queue.NewRedisQueue(l, qc, rc.Client(), queue.WithKeyPrefix(cfg.Storage.Prefix+":queue"))
	} else {
		q = queue.NewMemoryQueue(l, qc)
	}
	q.RegisterJob(export)
	return q
}

func ProvideQueueService(q queue.Runner) queue.QueueService {
	return q
}

func ProvideSettingsService(session *usecase.SessionStore, theme *usecase.ThemeStore, locale *usecase.LocaleAdapter, exports repository.ExportStore, q queue.QueueService, l *applogger.Logger, cfg *config.Config) *usecase.SettingsService {
	return usecase.NewSettingsService(session, theme, locale, exports, q, l, cfg.Settings.SaveLatency)
}

func ProvidePageCache(kv cache.Service, cfg *config.Config) *icache.PageCache {
	return icache.NewPageCache(kv, cfg.QueryCache.StaleTime)
}

func ProvideLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSec)
}

func ProvideTokenManager(cfg *config.Config) *tokens.Manager {
	return tokens.NewManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)
}

// ProvideHandlers builds every route group. The pages handler goes last
// since it owns the catch-all route.
func ProvideHandlers(
	l *applogger.Logger,
	cfg *config.Config,
	kv cache.Service,
	session *usecase.SessionStore,
	theme *usecase.ThemeStore,
	locale *usecase.LocaleAdapter,
	shell *usecase.ShellService,
	signals *usecase.SignalService,
	generator *usecase.Generator,
	builder *usecase.PageBuilder,
	subs *usecase.SubscriptionService,
	settings *usecase.SettingsService,
	feed *usecase.NotificationFeed,
	pages *icache.PageCache,
	limiter *ratelimit.Limiter,
) []xhttp.Handler {
	pinger, _ := kv.(cache.Pinger)
	return []xhttp.Handler{
		api.NewHealthHandler(pinger),
		api.NewAuthHandler(session, locale, pages, limiter, l),
		api.NewShellHandler(shell, theme, locale, session, l),
		api.NewSignalsHandler(signals, generator, session, limiter, l),
		api.NewReportsHandler(builder, subs, locale, session, l),
		api.NewSettingsHandler(settings, shell, session, pages, l),
		api.NewNotificationsHandler(feed, session, cfg.Server.CORSOrigins, l),
		api.NewPagesHandler(session, shell, locale, builder, signals, generator, subs, settings, pages, l),
	}
}

// ProvideHTTPServer creates the Echo server with client sessions in front
// of every route.
func ProvideHTTPServer(cfg *config.Config, l *applogger.Logger, handlers []xhttp.Handler, tm *tokens.Manager) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	opts := []xhttp.ServerOption{
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithSlowThreshold(cfg.Server.SlowThreshold),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithLogger(l),
		xhttp.WithMiddleware(mid.ClientSession(mid.ClientConfig{
			Tokens:     tm,
			CookieName: cfg.Auth.CookieName,
			Secure:     cfg.Environment == "production",
			Logger:     l,
		})),
	}
	if len(cfg.Server.CORSOrigins) > 0 {
		opts = append(opts, xhttp.WithCORSOrigins(cfg.Server.CORSOrigins))
	}
	return xhttp.NewServer(handlers, opts...)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	srv *xhttp.Server,
	consumer *pkgkafka.Consumer,
	feed *usecase.NotificationFeed,
	jobs queue.Runner,
	publisher repository.EventPublisher,
	limiter *ratelimit.Limiter,
	kv cache.Service,
) *server.App {
	storage, _ := kv.(server.Closer)
	return server.New(cfg, l, server.Deps{
		HTTP:      srv,
		Consumer:  consumer,
		Feed:      feed,
		Jobs:      jobs,
		Publisher: publisher,
		Limiter:   limiter,
		Storage:   storage,
	})
}
