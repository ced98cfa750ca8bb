package repositories

import (
	"context"
	"errors"
	"fmt"

	"inventorymanager/internal/common"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Database is satisfied by *pgxpool.Pool and by pgxmock pools.
type Database interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"

	pgNumericOutOfRange         = "22003"
	pgInvalidTextRepresentation = "22P02"
)

// readError maps a failed single-row lookup.
func readError(err error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, common.ErrNotFound)
	}
	if bad := dataError(err, what); bad != nil {
		return bad
	}
	return fmt.Errorf("get %s: %w", what, err)
}

// writeError maps a failed INSERT or UPDATE. A foreign key violation here
// means the referenced row does not exist.
func writeError(err error, what string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("write %s: %w", what, err)
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%s: %w", what, common.ErrConflict)
	case pgForeignKeyViolation:
		return fmt.Errorf("%s references a missing row (%s): %w", what, pgErr.ConstraintName, common.ErrNotFound)
	case pgCheckViolation, pgNotNullViolation:
		return fmt.Errorf("%s violates %s: %w", what, constraint(pgErr), common.ErrValidation)
	case pgNumericOutOfRange, pgInvalidTextRepresentation:
		return dataError(err, what)
	}
	return fmt.Errorf("write %s: %w", what, err)
}

// deleteError maps a failed DELETE. A foreign key violation here means a
// dependent row blocks the removal.
func deleteError(err error, what string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return fmt.Errorf("%s is referenced by %s: %w", what, pgErr.TableName, common.ErrReferenced)
	}
	if bad := dataError(err, what); bad != nil {
		return bad
	}
	return fmt.Errorf("delete %s: %w", what, err)
}

// dataError reports a value Postgres could not store or compare as a
// validation failure. It returns nil for every other error.
func dataError(err error, what string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	switch pgErr.Code {
	case pgNumericOutOfRange, pgInvalidTextRepresentation:
		return fmt.Errorf("%s: %s: %w", what, pgErr.Message, common.ErrValidation)
	}
	return nil
}

func constraint(pgErr *pgconn.PgError) string {
	if pgErr.ConstraintName != "" {
		return pgErr.ConstraintName
	}
	return pgErr.ColumnName
}

func mustAffect(tag pgconn.CommandTag, what string) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", what, common.ErrNotFound)
	}
	return nil
}
