package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"weather-info/internal/config"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate применяет встроенные миграции для драйвера. *sql.DB остаётся открытым.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	src, err := iofs.New(migrationsFS, "migrations/"+driver)
	if err != nil {
		return fmt.Errorf("migrations source: %w", err)
	}

	var (
		target database.Driver
		conn   *sql.Conn
	)
	switch driver {
	case config.DriverPostgres:
		conn, err = db.Conn(ctx)
		if err != nil {
			return fmt.Errorf("migrations conn: %w", err)
		}
		defer conn.Close()
		target, err = postgres.WithConnection(ctx, conn, &postgres.Config{})
	case config.DriverSQLite:
		target, err = sqlite3.WithInstance(db, &sqlite3.Config{})
	default:
		return fmt.Errorf("migrations: unsupported driver %q", driver)
	}
	if err != nil {
		return fmt.Errorf("migrations driver: %w", err)
	}

	// m.Close() закрыл бы и *sql.DB, поэтому не вызываем.
	m, err := migrate.NewWithInstance("iofs", src, driver, target)
	if err != nil {
		return fmt.Errorf("migrations init: %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Debug("migrations up to date", "driver", driver)
			return nil
		}
		return fmt.Errorf("migrations up: %w", err)
	}

	version, _, _ := m.Version()
	slog.Info("migrations applied", "driver", driver, "version", version)
	return nil
}
