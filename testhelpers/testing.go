//go:build integration

package testhelpers

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"inventorymanager/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB holds a migrated database for one test package.
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func()
}

const postgresImage = "postgres:16-alpine"

// SetupTestDB connects to TEST_DATABASE_URL when set, otherwise starts a
// throwaway Postgres container. The schema is applied either way. Tests
// are skipped when neither is possible.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dsn := os.Getenv("TEST_DATABASE_URL")
	var container testcontainers.Container
	if dsn == "" {
		if !dockerAvailable(ctx) {
			t.Skip("Skipping test: TEST_DATABASE_URL unset and Docker not available")
		}
		var err error
		container, dsn, err = startPostgres(ctx)
		if err != nil {
			t.Fatalf("Failed to start postgres container: %v", err)
		}
	}

	pool, err := database.NewPool(ctx, dsn)
	if err != nil {
		terminate(t, container)
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		terminate(t, container)
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return &TestDB{
		Pool: pool,
		Cleanup: func() {
			pool.Close()
			terminate(t, container)
		},
	}
}

// Reset empties every table and restarts the id sequences.
func (db *TestDB) Reset(t *testing.T) {
	t.Helper()
	_, err := db.Pool.Exec(context.Background(),
		`TRUNCATE api_keys, catalogue, stock, warehouses, locations, items RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("Failed to reset test database: %v", err)
	}
}

func startPostgres(ctx context.Context) (testcontainers.Container, string, error) {
	req := testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "inventory",
			"POSTGRES_PASSWORD": "inventory",
			"POSTGRES_DB":       "inventory_test",
		},
		// Postgres restarts once after initdb; the second message is the real one.
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(90 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, "", err
	}

	host, err := container.Host(ctx)
	if err != nil {
		return container, "", err
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return container, "", err
	}
	dsn := fmt.Sprintf("postgres://inventory:inventory@%s:%s/inventory_test?sslmode=disable", host, port.Port())
	return container, dsn, nil
}

func dockerAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return exec.CommandContext(ctx, "docker", "info").Run() == nil
}

func terminate(t *testing.T, container testcontainers.Container) {
	if container == nil {
		return
	}
	if err := container.Terminate(context.Background()); err != nil {
		t.Logf("Warning: failed to terminate container: %v", err)
	}
}
