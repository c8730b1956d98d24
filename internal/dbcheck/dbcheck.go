// Package dbcheck verifies that a database can be registered: the
// registration data is complete and the server answers.
package dbcheck

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/sonroyaalmerol/groupware/internal/admin"
)

var ErrUnsupportedDriver = errors.New("unsupported database driver")

type Result struct {
	Driver  string
	Version string
	Elapsed time.Duration
}

type Checker struct {
	timeout time.Duration
	logger  zerolog.Logger
}

func New(timeout time.Duration, logger zerolog.Logger) *Checker {
	return &Checker{
		timeout: timeout,
		logger:  logger.With().Str("component", "dbcheck").Logger(),
	}
}

// Check validates db for registration, connects and reads the server
// version. Nothing is written; sqlite files are opened read-only.
func (c *Checker) Check(ctx context.Context, db *admin.Database) (*Result, error) {
	if err := admin.Validate(db, admin.OpRegister); err != nil {
		return nil, err
	}
	dsn, err := db.DSN()
	if err != nil {
		return nil, err
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	driver := strings.ToLower(db.Driver.Value())
	start := time.Now()
	var version string
	switch driver {
	case "postgres", "postgresql", "pgx":
		driver = "postgres"
		version, err = postgresVersion(ctx, dsn)
	case "sqlite", "sqlite3":
		driver = "sqlite"
		version, err = sqliteVersion(ctx, sqliteDSN(dsn))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, db.Driver.Value())
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("driver", driver).Str("name", db.Name.Value()).Msg("database check failed")
		return nil, err
	}

	res := &Result{Driver: driver, Version: version, Elapsed: time.Since(start)}
	c.logger.Info().
		Str("driver", driver).
		Str("name", db.Name.Value()).
		Str("version", version).
		Dur("elapsed", res.Elapsed).
		Msg("database reachable")
	return res, nil
}

func postgresVersion(ctx context.Context, dsn string) (string, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return "", fmt.Errorf("parse postgres dsn: %w", err)
	}
	cfg.MaxConns = 1
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return "", fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	var version string
	if err := pool.QueryRow(ctx, "SHOW server_version").Scan(&version); err != nil {
		return "", fmt.Errorf("query postgres version: %w", err)
	}
	return version, nil
}

func sqliteVersion(ctx context.Context, dsn string) (string, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return "", fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return "", fmt.Errorf("ping sqlite: %w", err)
	}
	var version string
	if err := db.QueryRowContext(ctx, "SELECT sqlite_version()").Scan(&version); err != nil {
		return "", fmt.Errorf("query sqlite version: %w", err)
	}
	return version, nil
}

// sqliteDSN turns a path or file URI into a read-only file URI. Any mode
// given in the URI is replaced.
func sqliteDSN(dsn string) string {
	if dsn == ":memory:" {
		return dsn
	}
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	path, query, _ := strings.Cut(dsn, "?")
	params := []string{}
	for _, p := range strings.Split(query, "&") {
		if p == "" || strings.HasPrefix(p, "mode=") {
			continue
		}
		params = append(params, p)
	}
	return path + "?" + strings.Join(append(params, "mode=ro"), "&")
}
