package database

import (
	"context"
	_ "embed"
	"fmt"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

//go:embed schema.sql
var schemaSQL string

//go:embed seed.sql
var seedSQL string

// NewPool connects to Postgres and registers decimal support for NUMERIC
// columns on every connection.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	config.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	log.Info().Str("database", config.ConnConfig.Database).Msg("database connected")
	return pool, nil
}

// Executor is the subset of a pool or connection needed to run scripts.
type Executor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Migrate creates the schema. It is safe to run repeatedly.
func Migrate(ctx context.Context, db Executor) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	log.Info().Msg("database schema applied")
	return nil
}

// Seed inserts a small fixed data set of two locations, two warehouses,
// three items, two stock rows and two catalogue entries.
func Seed(ctx context.Context, db Executor) error {
	if _, err := db.Exec(ctx, seedSQL); err != nil {
		return fmt.Errorf("seed database: %w", err)
	}
	log.Info().Msg("database seeded")
	return nil
}
