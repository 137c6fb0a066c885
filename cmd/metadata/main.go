package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hanko-field/frontend-metadata/internal/di"
	"github.com/hanko-field/frontend-metadata/internal/handlers"
	"github.com/hanko-field/frontend-metadata/internal/platform/config"
	pfirestore "github.com/hanko-field/frontend-metadata/internal/platform/firestore"
	"github.com/hanko-field/frontend-metadata/internal/platform/observability"
	"github.com/hanko-field/frontend-metadata/internal/platform/session"
	firestoreRepo "github.com/hanko-field/frontend-metadata/internal/repositories/firestore"
)

func main() {
	ctx := context.Background()
	startedAt := time.Now().UTC()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	baseLogger, err := observability.NewLogger(cfg.App.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()

	logger := baseLogger.Named("metadata").With(zap.String("mode", cfg.App.Mode))
	ctx = observability.WithLogger(ctx, logger)

	layout, err := config.LoadLayout(cfg.Layout.File)
	if err != nil {
		logger.Fatal("failed to load layout", zap.String("file", cfg.Layout.File), zap.Error(err))
	}

	redis.SetLogger(observability.NewRedisLogAdapter(logger.Named("redis")))
	redisClient := session.NewClient(session.Options{
		Addr:        cfg.Redis.Addr,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		DialTimeout: cfg.Redis.DialTimeout,
	})
	sessions, err := session.NewStore(redisClient, cfg.Redis.SessionPrefix)
	if err != nil {
		logger.Fatal("failed to initialise session store", zap.Error(err))
	}

	firestoreProvider := pfirestore.NewProvider(cfg.Firestore)
	registry, err := firestoreRepo.NewRegistry(firestoreProvider, firestoreRepo.RegistryOptions{
		Sessions:          sessions,
		CategoryCacheSize: cfg.Catalog.CacheSize,
		CategoryCacheTTL:  cfg.Catalog.CacheTTL,
		OnClose:           redisClient.Close,
	})
	if err != nil {
		logger.Fatal("failed to initialise repositories", zap.Error(err))
	}

	container, err := di.NewContainer(ctx, cfg, layout, registry, di.Options{})
	if err != nil {
		logger.Fatal("failed to initialise services", zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := container.Close(closeCtx); err != nil {
			logger.Warn("repository close error", zap.Error(err))
		}
	}()

	health := handlers.NewHealthHandlers(
		handlers.WithHealthStartedAt(startedAt),
		handlers.WithReadinessCheck("firestore", registry.Health().Check),
		handlers.WithReadinessCheck("redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}),
	)
	pageMeta := handlers.NewPageMetaHandlers(
		container.Services.Resolver,
		container.Services.PageMeta,
		handlers.WithSessionCookie(cfg.Session.Cookie),
		handlers.WithSessionHeader(cfg.Session.Header),
		handlers.WithCustomerDataSection(di.SectionQuick),
	)

	router := handlers.NewRouter(
		handlers.WithHealthHandlers(health),
		handlers.WithMiddlewares(
			observability.InjectLoggerMiddleware(logger),
			observability.TraceMiddleware(cfg.Observability.TraceProjectID),
			observability.RequestLoggerMiddleware(),
			observability.RecoveryMiddleware(logger),
		),
		handlers.WithStoreRoutes(pageMeta.Routes),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	go func() {
		serverLogger.Info("frontend metadata service listening",
			zap.Int("pageTypeRules", len(layout.PageTypes)),
			zap.Strings("cartRoutes", layout.Cart.OutputOnRoutes),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
