package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Supported storage backends.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// DB wraps a sql.DB together with the backend it was opened against, so
// repositories can pick the right placeholder style and key-return idiom.
type DB struct {
	Client  *sql.DB
	Backend string
}

// Open connects to the configured backend and runs migrations.
// For sqlite the DSN is a file path; parent directories are created as
// needed. Returns ErrStorageUnavailable when the store cannot be opened.
func Open(backend, dsn string) (*DB, error) {
	var db *sql.DB
	var err error

	switch backend {
	case BackendPostgres:
		db, err = sql.Open("pgx", dsn)
		if err == nil {
			db.SetMaxOpenConns(10)
			db.SetMaxIdleConns(5)
			db.SetConnMaxLifetime(time.Hour)
		}
	case BackendSQLite, "":
		if dir := filepath.Dir(dsn); dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		db, err = sql.Open("sqlite3", sqliteDSN(dsn))
		if err == nil {
			// SQLite writes are serialized through a single connection.
			db.SetMaxOpenConns(1)
		}
		backend = BackendSQLite
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrStorageUnavailable, backend)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrStorageUnavailable, backend, err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", ErrStorageUnavailable, backend, err)
	}

	d := &DB{Client: db, Backend: backend}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: migrate: %v", ErrStorageUnavailable, err)
	}
	return d, nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_journal_mode=WAL&_busy_timeout=5000"
}

func (d *DB) migrate() error {
	idCol := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if d.Backend == BackendPostgres {
		idCol = "BIGSERIAL PRIMARY KEY"
	}

	schema := `
	CREATE TABLE IF NOT EXISTS records (
		id            ` + idCol + `,
		complete_name TEXT NOT NULL,
		sex           TEXT NOT NULL,
		designation   TEXT NOT NULL,
		division      TEXT NOT NULL,
		status_pwd    INTEGER NOT NULL DEFAULT 0,
		status_senior INTEGER NOT NULL DEFAULT 0,
		status_osy    INTEGER NOT NULL DEFAULT 0,
		signature     TEXT NOT NULL,
		timestamp_ms  INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS event_config (
		id            INTEGER PRIMARY KEY CHECK (id = 1),
		activity_name TEXT NOT NULL DEFAULT '',
		venue         TEXT NOT NULL DEFAULT '',
		event_date    TEXT NOT NULL DEFAULT '',
		updated_at_ms INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_records_timestamp ON records(timestamp_ms);
	`
	_, err := d.Client.Exec(schema)
	return err
}

// Rebind converts ?-style placeholders to the backend's native style.
// SQLite takes the query as-is; Postgres needs $1..$n.
func (d *DB) Rebind(query string) string {
	if d.Backend != BackendPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	if d == nil || d.Client == nil {
		return nil
	}
	return d.Client.Close()
}
