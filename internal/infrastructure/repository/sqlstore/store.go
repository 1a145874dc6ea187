// Package sqlstore persists records through database/sql on SQLite or
// PostgreSQL, selected from the database URL.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
)

const DefaultDatabaseURL = "sqlite:///./ca_suite.db"

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "pgx"
)

// Store owns the connection pool. Every call runs its own context-scoped
// statement.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// ParseURL maps a database URL onto a driver and its DSN.
func ParseURL(databaseURL string) (Dialect, string, error) {
	raw := strings.TrimSpace(databaseURL)
	if raw == "" {
		raw = DefaultDatabaseURL
	}
	lower := strings.ToLower(raw)

	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return DialectPostgres, raw, nil
	case strings.HasPrefix(lower, "file:"):
		return DialectSQLite, raw, nil
	case strings.HasPrefix(lower, "sqlite://"):
		path := raw[len("sqlite://"):]
		path = strings.TrimPrefix(path, "/")
		if path == "" || path == ":memory:" {
			return DialectSQLite, ":memory:", nil
		}
		return DialectSQLite, path, nil
	default:
		return "", "", fmt.Errorf("unsupported database url scheme: %q", raw)
	}
}

func Open(databaseURL string) (*Store, error) {
	dialect, dsn, err := ParseURL(databaseURL)
	if err != nil {
		return nil, domain.WrapError(domain.ErrConfiguration, "open database", err)
	}

	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	switch dialect {
	case DialectSQLite:
		// One connection keeps in-memory databases alive and serializes writers.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	default:
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return &Store{db: db, dialect: dialect}, nil
}

// New wraps an existing pool.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

func (s *Store) Dialect() Dialect {
	return s.dialect
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	statements := sqliteSchema
	if s.dialect == DialectPostgres {
		// Serialize bootstrap DDL across concurrent startups.
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026101901)); err != nil {
			return fmt.Errorf("acquire schema lock: %w", err)
		}
		statements = postgresSchema
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("execute schema ddl: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS client (
	id INTEGER NOT NULL PRIMARY KEY,
	name VARCHAR NOT NULL,
	email VARCHAR
)`,
	`CREATE TABLE IF NOT EXISTS task (
	id INTEGER NOT NULL PRIMARY KEY,
	description VARCHAR NOT NULL,
	status VARCHAR NOT NULL,
	client_id INTEGER REFERENCES client (id)
)`,
	`CREATE TABLE IF NOT EXISTS appointment (
	id INTEGER NOT NULL PRIMARY KEY,
	client_id INTEGER NOT NULL REFERENCES client (id),
	scheduled_time VARCHAR NOT NULL,
	description VARCHAR
)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS client (
	id SERIAL PRIMARY KEY,
	name VARCHAR NOT NULL,
	email VARCHAR
)`,
	`CREATE TABLE IF NOT EXISTS task (
	id SERIAL PRIMARY KEY,
	description VARCHAR NOT NULL,
	status VARCHAR NOT NULL,
	client_id INTEGER REFERENCES client (id)
)`,
	`CREATE TABLE IF NOT EXISTS appointment (
	id SERIAL PRIMARY KEY,
	client_id INTEGER NOT NULL REFERENCES client (id),
	scheduled_time VARCHAR NOT NULL,
	description VARCHAR
)`,
}

// insertError turns a PostgreSQL foreign key violation into invalid input.
func insertError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return domain.WrapError(domain.ErrInvalidInput, operation, errors.New(pgErr.Detail))
	}
	return fmt.Errorf("%s: %w", operation, err)
}

func nullableString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func intPtr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}
