// Package testutils provides the shared environment for repository
// integration tests: a throwaway Postgres container with the migrations
// applied.
package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	authmigrations "github.com/ZRunner/Axobot-API-V2/app/modules/auth/infrastructure/repositories/migrations"
	discordmigrations "github.com/ZRunner/Axobot-API-V2/app/modules/discord/infrastructure/repositories/migrations"
	configmigrations "github.com/ZRunner/Axobot-API-V2/app/modules/guildconfig/infrastructure/repositories/migrations"
	"github.com/ZRunner/Axobot-API-V2/integration_tests/containers"
)

// TestEnvironment holds the resources shared by one integration test suite.
type TestEnvironment struct {
	Ctx         context.Context
	cancel      context.CancelFunc
	PgContainer *postgres.PostgresContainer
	DB          *bun.DB
}

// NewTestEnvironment starts a Postgres container, connects bun to it and
// applies every migration set. Call Cleanup when done.
func NewTestEnvironment() (*TestEnvironment, error) {
	ctx, cancel := context.WithCancel(context.Background())

	pgContainer, connStr, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		cancel()
		return nil, err
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(connStr)))
	db := bun.NewDB(sqldb, pgdialect.New())
	if err := db.PingContext(ctx); err != nil {
		_ = pgContainer.Terminate(ctx)
		cancel()
		return nil, fmt.Errorf("failed to ping test database: %w", err)
	}

	if err := applyMigrations(ctx, db); err != nil {
		_ = db.Close()
		_ = pgContainer.Terminate(ctx)
		cancel()
		return nil, err
	}

	return &TestEnvironment{
		Ctx:         ctx,
		cancel:      cancel,
		PgContainer: pgContainer,
		DB:          db,
	}, nil
}

func applyMigrations(ctx context.Context, db *bun.DB) error {
	for name, set := range map[string]*migrate.Migrations{
		"guildconfig": configmigrations.Migrations,
		"discord":     discordmigrations.Migrations,
		"auth":        authmigrations.Migrations,
	} {
		migrator := migrate.NewMigrator(db, set)
		if err := migrator.Init(ctx); err != nil {
			return fmt.Errorf("failed to init %s migrations: %w", name, err)
		}
		if _, err := migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to apply %s migrations: %w", name, err)
		}
	}
	return nil
}

// Cleanup tears down the container and database connection.
func (env *TestEnvironment) Cleanup() {
	ctx := context.Background()
	if env.DB != nil {
		_ = env.DB.Close()
	}
	if env.PgContainer != nil {
		_ = env.PgContainer.Terminate(ctx)
	}
	env.cancel()
}

// TruncateTables empties the given tables between tests.
func (env *TestEnvironment) TruncateTables(t *testing.T, tables ...string) {
	t.Helper()
	for _, table := range tables {
		if _, err := env.DB.ExecContext(env.Ctx, "TRUNCATE TABLE "+table); err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}
}
