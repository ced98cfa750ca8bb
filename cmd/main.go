package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"inventorymanager/internal/caching"
	"inventorymanager/internal/config"
	"inventorymanager/internal/handlers"
	"inventorymanager/internal/jobs"
	"inventorymanager/internal/jobs/background"
	"inventorymanager/internal/middleware"
	"inventorymanager/internal/repositories"
	"inventorymanager/internal/services"
	"inventorymanager/internal/supervisor"
	"inventorymanager/pkg/database"
	"inventorymanager/pkg/logger"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("inventory manager stopped")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	zl := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.DB.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	cache, err := openCache(cfg.Cache)
	if err != nil {
		return err
	}
	defer func() {
		if err := cache.Close(); err != nil {
			log.Warn().Err(err).Msg("close cache")
		}
	}()

	sup := supervisor.New("inventorymanager", supervisor.Config{ShutdownTimeout: cfg.HTTP.ShutdownTimeout})

	var publisher caching.Publisher
	var nc *nats.Conn
	instance := uuid.NewString()
	if cfg.NATS.URL != "" {
		nc, err = nats.Connect(cfg.NATS.URL, nats.Name("inventorymanager-"+instance), nats.MaxReconnects(-1))
		if err != nil {
			return fmt.Errorf("connect nats: %w", err)
		}
		defer nc.Drain()
		publisher = caching.NewNATSBroadcaster(nc, instance)
	}
	invalidator := caching.NewInvalidator(cache, publisher)
	if nc != nil {
		sup.Add(caching.NewInvalidationSubscriber(nc, instance, invalidator))
	}

	itemRepo := repositories.NewItemRepository(pool)
	locationRepo := repositories.NewLocationRepository(pool)
	warehouseRepo := repositories.NewWarehouseRepository(pool)
	stockRepo := repositories.NewStockRepository(pool)
	catalogueRepo := repositories.NewCatalogueRepository(pool)
	keyRepo := repositories.NewAPIKeyRepository(pool)

	itemService := services.NewItemService(itemRepo, invalidator)
	locationService := services.NewLocationService(locationRepo, invalidator)
	warehouseService := services.NewWarehouseService(warehouseRepo, locationRepo, invalidator)
	stockService := services.NewStockService(stockRepo, itemRepo, warehouseRepo, invalidator)
	catalogueService := services.NewCatalogueService(catalogueRepo, itemRepo, invalidator)
	apiKeys := middleware.NewAPIKeyMiddleware(services.NewAPIKeyService(keyRepo, warehouseRepo))

	server := handlers.NewServer(handlers.API{
		Items:      handlers.NewItemHandlers(itemService),
		Locations:  handlers.NewLocationHandlers(locationService),
		Warehouses: handlers.NewWarehouseHandlers(warehouseService),
		Stock:      handlers.NewStockHandlers(stockService, apiKeys),
		Catalogue:  handlers.NewCatalogueHandlers(catalogueService),
		Health:     handlers.NewHealthHandlers(pool, cache, cfg.App.Version),
		APIKeys:    apiKeys,
		Cache:      cache,
		Version:    middleware.NewVersionMiddleware(cfg.App.Version),
		Logger:     &zl,
	})
	sup.Add(supervisor.NewHTTPService(server, cfg.HTTP.Addr, cfg.HTTP.ShutdownTimeout))

	scheduler, err := background.NewJobScheduler()
	if err != nil {
		return err
	}
	if cfg.LowStock.Interval > 0 {
		monitor := jobs.NewLowStockMonitor(stockService, cfg.LowStock.Threshold)
		if err := scheduler.AddJob("low-stock", cfg.LowStock.Interval, monitor.Run); err != nil {
			return err
		}
	}
	if cfg.Snapshot.Enabled() && cfg.Snapshot.Interval > 0 {
		store, err := openSnapshotStore(ctx, cfg.Snapshot)
		if err != nil {
			return err
		}
		exporter := jobs.NewSnapshotExporter(stockService, store)
		if err := scheduler.AddJob("stock-snapshot", cfg.Snapshot.Interval, exporter.Run); err != nil {
			return err
		}
	}
	sup.Add(scheduler)

	log.Info().Str("env", cfg.App.Env).Str("cache", cfg.Cache.Backend).Str("instance", instance).
		Msg("inventory manager starting")
	if err := sup.Serve(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	log.Info().Msg("inventory manager stopped")
	return nil
}

// openCache picks the response cache backend. Every real backend sits
// behind a circuit breaker so an outage degrades to uncached reads.
func openCache(cfg config.CacheConfig) (caching.ResponseCache, error) {
	switch cfg.Backend {
	case "redis":
		return caching.NewBreakerCache(
			caching.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB),
			caching.DefaultBreakerSettings()), nil
	case "badger":
		inner, err := caching.NewBadgerCache(cfg.BadgerDir)
		if err != nil {
			return nil, err
		}
		return caching.NewBreakerCache(inner, caching.DefaultBreakerSettings()), nil
	default:
		return caching.NewNoopCache(), nil
	}
}

func openSnapshotStore(ctx context.Context, cfg config.SnapshotConfig) (services.SnapshotStore, error) {
	store, err := services.NewMinioSnapshotStore(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey, cfg.Bucket, cfg.UseSSL)
	if err != nil {
		return nil, fmt.Errorf("create snapshot store: %w", err)
	}
	if err := store.EnsureBucketExists(ctx); err != nil {
		return nil, fmt.Errorf("ensure snapshot bucket %s: %w", cfg.Bucket, err)
	}
	return store, nil
}
