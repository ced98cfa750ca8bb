// Command inventoryctl administers an inventory manager database: schema
// setup, demo data, API key issuing and one-off stock snapshots.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"inventorymanager/internal/caching"
	"inventorymanager/internal/config"
	"inventorymanager/internal/hypermedia"
	"inventorymanager/internal/jobs"
	"inventorymanager/internal/repositories"
	"inventorymanager/internal/services"
	"inventorymanager/pkg/database"
	"inventorymanager/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"
)

const usage = `Usage: inventoryctl <command> [flags]

Commands:
  migrate                          create the schema
  seed                             insert demo locations, warehouses, items, stock and catalogue,
                                   then drop cached API responses
  create-admin-key                 issue an API key valid for every operation
  create-warehouse-key --warehouse N
                                   issue an API key for one warehouse
  snapshot [--expiry D]            export all stock to the snapshot bucket now
`

type command struct {
	flags *flag.FlagSet
	run   func(ctx context.Context, env *env) error
}

// env is what every command gets after flags are parsed.
type env struct {
	cfg  *config.Config
	pool *pgxpool.Pool
	out  io.Writer
}

func commands() map[string]*command {
	warehouseFlags := flag.NewFlagSet("create-warehouse-key", flag.ContinueOnError)
	warehouseID := warehouseFlags.IntP("warehouse", "w", 0, "warehouse id the key is valid for")

	snapshotFlags := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	expiry := snapshotFlags.Duration("expiry", time.Hour, "lifetime of the printed download link")

	return map[string]*command{
		"migrate": {
			flags: flag.NewFlagSet("migrate", flag.ContinueOnError),
			run: func(ctx context.Context, e *env) error {
				if err := database.Migrate(ctx, e.pool); err != nil {
					return err
				}
				fmt.Fprintln(e.out, "schema ready")
				return nil
			},
		},
		"seed": {
			flags: flag.NewFlagSet("seed", flag.ContinueOnError),
			run: func(ctx context.Context, e *env) error {
				if err := database.Seed(ctx, e.pool); err != nil {
					return err
				}
				fmt.Fprintln(e.out, "demo data inserted")
				if err := refreshCaches(ctx, e.cfg); err != nil {
					return fmt.Errorf("cached responses may be stale: %w", err)
				}
				return nil
			},
		},
		"create-admin-key": {
			flags: flag.NewFlagSet("create-admin-key", flag.ContinueOnError),
			run: func(ctx context.Context, e *env) error {
				token, err := keyService(e.pool).IssueAdminKey(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(e.out, token)
				return nil
			},
		},
		"create-warehouse-key": {
			flags: warehouseFlags,
			run: func(ctx context.Context, e *env) error {
				if *warehouseID <= 0 {
					return errors.New("--warehouse is required")
				}
				token, err := keyService(e.pool).IssueWarehouseKey(ctx, *warehouseID)
				if err != nil {
					return err
				}
				fmt.Fprintln(e.out, token)
				return nil
			},
		},
		"snapshot": {
			flags: snapshotFlags,
			run: func(ctx context.Context, e *env) error {
				return snapshot(ctx, e, *expiry)
			},
		},
	}
}

func keyService(pool *pgxpool.Pool) services.APIKeyService {
	return services.NewAPIKeyService(repositories.NewAPIKeyRepository(pool), repositories.NewWarehouseRepository(pool))
}

// refreshCaches drops every cached API response after the store changed
// outside a server: the shared redis cache directly, embedded caches of
// running servers through the NATS invalidation subject.
func refreshCaches(ctx context.Context, cfg *config.Config) error {
	cache := caching.NewNoopCache()
	if cfg.Cache.Backend == "redis" {
		cache = caching.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		defer cache.Close()
	}

	var publisher caching.Publisher
	if cfg.NATS.URL != "" {
		nc, err := nats.Connect(cfg.NATS.URL, nats.Name("inventoryctl"))
		if err != nil {
			return fmt.Errorf("connect nats: %w", err)
		}
		defer nc.Close()
		publisher = caching.NewNATSBroadcaster(nc, "inventoryctl-"+uuid.NewString())
		defer func() {
			if err := nc.FlushWithContext(ctx); err != nil {
				log.Warn().Err(err).Msg("flush cache invalidation")
			}
		}()
	} else if cfg.Cache.Backend == "badger" {
		log.Warn().Msg("NATS_URL unset: restart running servers to drop their embedded caches")
	}

	return purgeResponses(ctx, cache, publisher)
}

// purgeResponses removes every cached /api/ response and tells peers to do
// the same. publisher may be nil.
func purgeResponses(ctx context.Context, cache caching.ResponseCache, publisher caching.Publisher) error {
	inv := caching.Invalidation{Prefixes: []string{hypermedia.EntryURL()}}
	var errs []error
	if err := caching.NewInvalidator(cache, nil).Apply(ctx, inv); err != nil {
		errs = append(errs, err)
	}
	if publisher != nil {
		if err := publisher.Publish(ctx, inv); err != nil {
			errs = append(errs, fmt.Errorf("publish invalidation: %w", err))
		}
	}
	return errors.Join(errs...)
}

func snapshot(ctx context.Context, e *env, expiry time.Duration) error {
	if !e.cfg.Snapshot.Enabled() {
		return errors.New("MINIO_ENDPOINT is not set")
	}
	store, err := services.NewMinioSnapshotStore(e.cfg.Snapshot.Endpoint, e.cfg.Snapshot.AccessKey,
		e.cfg.Snapshot.SecretKey, e.cfg.Snapshot.Bucket, e.cfg.Snapshot.UseSSL)
	if err != nil {
		return err
	}
	if err := store.EnsureBucketExists(ctx); err != nil {
		return err
	}

	// Reads only; nothing to invalidate.
	invalidator := caching.NewInvalidator(caching.NewNoopCache(), nil)
	stock := services.NewStockService(repositories.NewStockRepository(e.pool), repositories.NewItemRepository(e.pool),
		repositories.NewWarehouseRepository(e.pool), invalidator)

	name, err := jobs.NewSnapshotExporter(stock, store).Export(ctx)
	if err != nil {
		return err
	}
	link, err := store.GetPresignedURL(ctx, name, expiry)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "%s\n%s\n", name, link)
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "inventoryctl:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		fmt.Fprint(out, usage)
		return nil
	}

	cmd, ok := commands()[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q\n\n%s", args[0], usage)
	}
	if err := cmd.flags.Parse(args[1:]); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.DB.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	log.Debug().Str("command", args[0]).Msg("running")
	return cmd.run(ctx, &env{cfg: cfg, pool: pool, out: out})
}
