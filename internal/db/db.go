package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"weather-info/internal/config"
)

// Open подключается к БД; первый ping повторяется с ретраями.
func Open(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	dsn, err := buildDSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.DBDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}

	if cfg.DBDriver == config.DriverSQLite {
		// один писатель, иначе "database is locked"; :memory: живёт, пока жив коннект
		db.SetMaxOpenConns(1)
	} else {
		if cfg.DBMaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.DBMaxOpenConns)
			db.SetMaxIdleConns(cfg.DBMaxOpenConns / 2)
		}
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	err = retry.Do(
		func() error {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return db.PingContext(pingCtx)
		},
		retry.Context(ctx),
		retry.Attempts(uint(cfg.DBConnectAttempts)),
		retry.Delay(3*time.Second),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("db ping failed, retrying", "driver", cfg.DBDriver, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping after %d attempts: %w", cfg.DBConnectAttempts, err)
	}

	slog.Info("database connected", "driver", cfg.DBDriver)
	return db, nil
}

func Close(db *sql.DB) error {
	if db == nil {
		return nil
	}
	return db.Close()
}

func buildDSN(cfg *config.Config) (string, error) {
	if cfg.DBDriver == config.DriverPostgres {
		return cfg.DatabaseURL, nil
	}
	if cfg.DatabaseURL != "" {
		return cfg.DatabaseURL, nil
	}
	return SQLiteDSN(cfg.SQLitePath)
}

// SQLiteDSN собирает DSN для mattn/go-sqlite3: внешние ключи и WAL.
func SQLiteDSN(path string) (string, error) {
	params := []string{
		"_foreign_keys=on",
		"_busy_timeout=5000",
	}
	if path == ":memory:" {
		return "file::memory:?" + strings.Join(params, "&"), nil
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	params = append(params, "_journal_mode=WAL")

	if strings.HasPrefix(path, "file:") {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return path + sep + strings.Join(params, "&"), nil
	}
	return fmt.Sprintf("file:%s?%s", path, strings.Join(params, "&")), nil
}
