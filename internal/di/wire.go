//go:build wireinject
// +build wireinject

package di

import (
	"SignalDash/internal/usecase"
	"SignalDash/pkg/config"
	"SignalDash/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideRedisCache,
		ProvideStorage,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,

		// Repositories
		ProvideStateStore,
		ProvideExportStore,
		ProvideLocker,
		ProvideEventPublisher,

		// Services
		ProvideTranslator,
		ProvidePageCache,
		ProvideLimiter,
		ProvideTokenManager,

		// Use cases
		ProvideNotificationFeed,
		ProvideSessionStore,
		ProvideGenerator,
		ProvideSettingsService,
		usecase.NewThemeStore,
		usecase.NewLocaleAdapter,
		usecase.NewSignalService,
		usecase.NewShellService,
		usecase.NewPageBuilder,
		usecase.NewSubscriptionService,
		usecase.NewExportJob,

		// Background work
		ProvideJobQueue,
		ProvideQueueService,

		// HTTP
		ProvideHandlers,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
