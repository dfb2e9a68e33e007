package container

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/snipurl/snipurl/internal/audit"
	"github.com/snipurl/snipurl/internal/handlers"
	"github.com/snipurl/snipurl/internal/messaging"
	"github.com/snipurl/snipurl/internal/middleware"
	"github.com/snipurl/snipurl/internal/shortlink"
	"github.com/snipurl/snipurl/internal/store"
	"go.uber.org/zap"
)

// LoggerPackage provides the process-wide zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		options := do.MustInvoke[*Options](i)

		if options.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// StorePackage provides the shortlink.Repository backend selected by
// configuration, plus its health checker.
func StorePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (shortlink.Repository, error) {
		options := do.MustInvoke[*Options](i)

		switch options.Store {
		case "memory":
			return store.NewMemoryStore(), nil
		case "redis":
			client := do.MustInvoke[*redis.Client](i)

			return store.NewRedisStore(client), nil
		case "postgres":
			pool := do.MustInvoke[*pgxpool.Pool](i)
			pgStore := store.NewPostgresStore(pool)

			if err := pgStore.EnsureSchema(context.Background()); err != nil {
				return nil, fmt.Errorf("ensure schema: %w", err)
			}

			return pgStore, nil
		default:
			return nil, fmt.Errorf("unknown store backend: %s", options.Store)
		}
	})

	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		options := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{Addr: options.RedisAddr}), nil
	})

	do.Provide(injector, func(i *do.Injector) (*pgxpool.Pool, error) {
		options := do.MustInvoke[*Options](i)

		return pgxpool.New(context.Background(), options.PostgresDSN)
	})

	do.Provide(injector, func(i *do.Injector) (handlers.HealthChecker, error) {
		options := do.MustInvoke[*Options](i)

		switch options.Store {
		case "redis":
			client := do.MustInvoke[*redis.Client](i)

			return handlers.HealthCheckFunc(func(ctx context.Context) error {
				return client.Ping(ctx).Err()
			}), nil
		case "postgres":
			pool := do.MustInvoke[*pgxpool.Pool](i)

			return handlers.HealthCheckFunc(pool.Ping), nil
		default:
			// The in-memory store has nothing to reach.
			return handlers.HealthCheckFunc(func(context.Context) error {
				return nil
			}), nil
		}
	})
}

// AuditPackage provides the best-effort audit pipeline: an in-process bus,
// the remote sink client, the consumer forwarding events to it, and the
// emitter handlers publish through.
func AuditPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*messaging.PubSub, error) {
		return messaging.NewPubSub(), nil
	})

	do.Provide(injector, func(i *do.Injector) (*audit.Client, error) {
		options := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		return audit.NewClient(options.LogSinkURL, options.LogSinkToken, logger), nil
	})

	do.Provide(injector, func(i *do.Injector) (*messaging.Consumer[audit.Event], error) {
		pubsub := do.MustInvoke[*messaging.PubSub](i)
		client := do.MustInvoke[*audit.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)

		return messaging.NewConsumer(
			pubsub.Subscriber(),
			audit.Topic,
			client.Send,
			logger,
		), nil
	})

	do.Provide(injector, func(i *do.Injector) (audit.Emitter, error) {
		pubsub := do.MustInvoke[*messaging.PubSub](i)
		logger := do.MustInvoke[*zap.Logger](i)

		publish := messaging.NewPublishFunc[audit.Event](pubsub.Publisher(), audit.Topic)

		return audit.NewEmitter(publish, logger), nil
	})
}

// HTTPPackage provides the router and the huma API with all routes and
// middleware registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*chi.Mux, error) {
		logger := do.MustInvoke[*zap.Logger](i)
		emitter := do.MustInvoke[audit.Emitter](i)

		router := chi.NewMux()
		router.Use(middleware.RequestLog(logger))
		router.Use(middleware.Recover(logger, emitter))

		return router, nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		options := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		router := do.MustInvoke[*chi.Mux](i)
		repo := do.MustInvoke[shortlink.Repository](i)
		emitter := do.MustInvoke[audit.Emitter](i)
		checker := do.MustInvoke[handlers.HealthChecker](i)

		generate, err := shortlink.NewCodeGenerator(options.CodeLength)
		if err != nil {
			return nil, err
		}

		service := shortlink.NewService(repo, generate, options.Geo, nil)

		api := humachi.New(router, huma.DefaultConfig("URL Shortener", "1.0.0"))
		api.UseMiddleware(middleware.RequestMeta(api))

		urlHandler := handlers.NewShortURLHandler(service, options.ResolvedBaseURL(), emitter, logger)
		healthHandler := handlers.NewHealthHandler(checker, options.Store)

		handlers.RegisterRoutes(api, urlHandler, healthHandler)

		return api, nil
	})
}
