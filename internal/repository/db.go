package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type Config struct {
	DSN             string
	MaxConns        int
	MaxConnLifetime time.Duration
	DialTimeout     time.Duration
}

// Open connects to the configured database. A postgres:// DSN goes through
// pgx; anything else is treated as a SQLite path (":memory:" included), so
// batch runs work without any server.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*sql.DB, error) {
	driver := "sqlite"
	dsn := cfg.DSN
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		driver = "pgx"
	}
	logger.Info("connecting to database", "driver", driver)

	db, err := sql.Open(driver, dsn)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return nil, err
	}
	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
	}
	if driver == "sqlite" {
		// modernc sqlite misbehaves with concurrent writers on one file.
		db.SetMaxOpenConns(1)
	}
	if cfg.MaxConnLifetime > 0 {
		db.SetConnMaxLifetime(cfg.MaxConnLifetime)
	}

	pingCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("failed to ping database", "error", err)
		_ = db.Close()
		return nil, err
	}

	if err := migrate(ctx, db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		_ = db.Close()
		return nil, err
	}

	logger.Info("successfully connected to database")
	return db, nil
}

// migrate creates the schema when missing. Types are kept to the portable
// TEXT/REAL/INTEGER subset both engines accept.
func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS batches (
			id TEXT PRIMARY KEY,
			month_label TEXT,
			bill_number TEXT,
			office_name TEXT,
			record_count INTEGER NOT NULL,
			valid INTEGER NOT NULL,
			total_gross REAL NOT NULL,
			total_deductions REAL NOT NULL,
			total_net_pay REAL NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS payroll_records (
			batch_id TEXT NOT NULL,
			employee_id TEXT NOT NULL,
			name TEXT NOT NULL,
			designation TEXT,
			gross REAL NOT NULL,
			total_deductions REAL NOT NULL,
			net_pay REAL NOT NULL,
			PRIMARY KEY (batch_id, employee_id)
		)`,
		`CREATE TABLE IF NOT EXISTS record_fields (
			batch_id TEXT NOT NULL,
			employee_id TEXT NOT NULL,
			category TEXT NOT NULL,
			field_key TEXT NOT NULL,
			amount REAL NOT NULL,
			PRIMARY KEY (batch_id, employee_id, category, field_key)
		)`,
		`CREATE TABLE IF NOT EXISTS diagnostics (
			batch_id TEXT NOT NULL,
			severity TEXT NOT NULL,
			message TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS bill_files (
			id TEXT PRIMARY KEY,
			source_path TEXT NOT NULL,
			content_hash TEXT NOT NULL UNIQUE,
			filename TEXT NOT NULL,
			file_ext TEXT,
			file_size INTEGER NOT NULL,
			discovered_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS parse_jobs (
			file_id TEXT PRIMARY KEY,
			format TEXT NOT NULL,
			status TEXT NOT NULL,
			error TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// HealthCheck pings the database to catch DSN issues early.
func HealthCheck(ctx context.Context, db *sql.DB, timeout time.Duration, logger *slog.Logger) error {
	logger.Debug("pinging database")
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return db.PingContext(ctx)
}
