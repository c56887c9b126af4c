package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sethvargo/go-retry"
	"go.uber.org/multierr"

	"github.com/delegance/storefront-backend/api/routes"
	"github.com/delegance/storefront-backend/internal/cart"
	"github.com/delegance/storefront-backend/internal/catalog"
	"github.com/delegance/storefront-backend/internal/checkout"
	"github.com/delegance/storefront-backend/internal/statestore"
	"github.com/delegance/storefront-backend/pkg/config"
	"github.com/delegance/storefront-backend/pkg/db"
	"github.com/delegance/storefront-backend/pkg/logger"
	"github.com/delegance/storefront-backend/pkg/metrics"
	"github.com/delegance/storefront-backend/pkg/migrate"
	"github.com/delegance/storefront-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := context.Background()

	var dbClient *db.Client
	err = withConnectRetry(ctx, func(ctx context.Context) error {
		var connErr error
		dbClient, connErr = db.New(ctx, cfg.DB, logg)
		return connErr
	})
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	err = withConnectRetry(ctx, func(ctx context.Context) error {
		var connErr error
		redisClient, connErr = redis.New(ctx, cfg.Redis, logg)
		return connErr
	})
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	storefrontMetrics := metrics.NewStorefront(registry)

	codec := statestore.New(
		statestore.NewRedisKV(redisClient),
		stateDiagnostics(logg, storefrontMetrics),
	)

	cartManager, err := cart.NewManager(codec)
	if err != nil {
		logg.Error(ctx, "failed to create cart manager", err)
		os.Exit(1)
	}
	draftManager, err := checkout.NewDraftManager(codec)
	if err != nil {
		logg.Error(ctx, "failed to create draft manager", err)
		os.Exit(1)
	}
	handoffBuilder, err := checkout.NewBuilder(cfg.Handoff, cfg.Shop)
	if err != nil {
		logg.Error(ctx, "failed to create handoff builder", err)
		os.Exit(1)
	}

	catalogRepo, err := catalog.NewRepository(dbClient)
	if err != nil {
		logg.Error(ctx, "failed to create catalog repository", err)
		os.Exit(1)
	}
	catalogService, err := catalog.NewService(catalogRepo, cfg.Shop, logg, storefrontMetrics)
	if err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}

	checks := routes.ReadinessChecks{
		"postgres": dbClient.Ping,
		"redis":    redisClient.Ping,
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, checks, catalogService, cartManager, draftManager, handoffBuilder, registry),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(drainCtx); err != nil {
			logg.Error(ctx, "error draining api server", err)
		}
	}

	closeErr := multierr.Combine(
		redisClient.Close(),
		dbClient.Close(),
	)
	if closeErr != nil {
		logg.Error(ctx, "error closing resources", closeErr)
		os.Exit(1)
	}
}

// withConnectRetry retries transient startup connection failures with a
// capped exponential backoff.
func withConnectRetry(ctx context.Context, connect func(context.Context) error) error {
	backoff := retry.WithMaxRetries(5, retry.WithCappedDuration(5*time.Second, retry.NewExponential(500*time.Millisecond)))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := connect(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

// stateDiagnostics turns swallowed persistence failures into log lines and
// counters, keyed by which record kind the failing key belongs to.
func stateDiagnostics(logg *logger.Logger, m *metrics.Storefront) statestore.Hook {
	return func(e statestore.Event) {
		record := "unknown"
		switch {
		case strings.Contains(e.Key, ":cart:"):
			record = "cart"
		case strings.Contains(e.Key, ":checkout_draft:"):
			record = "checkout_draft"
		}

		switch e.Op {
		case statestore.OpLoad:
			m.IncStateCorruptLoad(record)
		case statestore.OpSave, statestore.OpDelete:
			m.IncStateSaveFailure(record)
		}

		ctx := logg.WithFields(context.Background(), map[string]any{
			"op":     string(e.Op),
			"key":    e.Key,
			"record": record,
		})
		logg.Warn(ctx, "state persistence degraded: "+e.Err.Error())
	}
}
