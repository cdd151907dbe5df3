package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-site-forms/internal/config"
	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/migrations"
)

// sqliteParams are appended to a draft DSN that carries no parameters of its
// own.
const sqliteParams = "_busy_timeout=5000&_foreign_keys=on"

// pool describes how one database/sql driver is opened.
type pool struct {
	driver   string
	maxOpen  int
	maxIdle  int
	classify ErrorClassificator
	migrate  func(*sql.DB) error
}

var (
	postgresPool = pool{
		driver:   "pgx",
		maxOpen:  10,
		maxIdle:  4,
		classify: NewPostgresErrorClassifier(),
		migrate:  migrations.Migrate,
	}
	// sqlite allows a single writer; more connections end in "database is locked".
	sqlitePool = pool{
		driver:  "sqlite3",
		maxOpen: 1,
		maxIdle: 1,
		migrate: migrations.MigrateDrafts,
	}
)

// NewConnectPostgres opens and pings the forms database described by cfg.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	return connect(ctx, postgresPool, cfg.DSN, log)
}

// NewConnectSQLite opens the client draft database stored in the file dsn.
// Missing parent directories are created.
func NewConnectSQLite(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	file, _, _ := strings.Cut(dsn, "?")
	if dir := filepath.Dir(file); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("error creating drafts directory: %w", err)
		}
	}
	if !strings.Contains(dsn, "?") {
		dsn += "?" + sqliteParams
	}

	return connect(ctx, sqlitePool, dsn, log)
}

func connect(ctx context.Context, p pool, dsn string, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open(p.driver, dsn)
	if err != nil {
		log.Err(err).Str("driver", p.driver).Msg("error opening database")
		return nil, fmt.Errorf("error opening %s database: %w", p.driver, err)
	}

	conn.SetMaxOpenConns(p.maxOpen)
	conn.SetMaxIdleConns(p.maxIdle)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("driver", p.driver).Msg("error connecting database (ping)")
		conn.Close()
		return nil, fmt.Errorf("error pinging %s database: %w", p.driver, err)
	}
	log.Info().Str("driver", p.driver).Msg("connected to database")

	return &DB{
		DB:                 conn,
		logger:             log,
		errorClassificator: p.classify,
		migrate:            p.migrate,
	}, nil
}
