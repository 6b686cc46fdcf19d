package sqlutils

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rowfs/rowfs/pkg/config"
	"github.com/rowfs/rowfs/pkg/fserr"
	"github.com/rowfs/rowfs/pkg/rowpath"
)

// queries holds the statement shapes used by a Store, built once per
// store with validated identifiers interpolated and the row key left as
// a placeholder. Nothing else is ever spliced into SQL.
type queries struct {
	listNames string
	sizeOf    string
	contentOf string
	countRows string
}

func buildQueries(d Dialect, cfg config.Config) queries {
	table := d.QuoteIdentifier(cfg.Table)
	name := d.QuoteIdentifier(cfg.NameColumn)
	data := d.QuoteIdentifier(cfg.DataColumn)
	return queries{
		listNames: "SELECT " + name + " FROM " + table + " ORDER BY " + name,
		sizeOf:    "SELECT " + d.ByteLength(data) + " FROM " + table + " WHERE " + name + " = ?",
		contentOf: "SELECT " + data + " FROM " + table + " WHERE " + name + " = ?",
		countRows: "SELECT COUNT(*) FROM " + table,
	}
}

// rebind converts the ? placeholders to whatever the driver expects.
func (q queries) rebind(db *sqlx.DB) queries {
	return queries{
		listNames: db.Rebind(q.listNames),
		sizeOf:    db.Rebind(q.sizeOf),
		contentOf: db.Rebind(q.contentOf),
		countRows: db.Rebind(q.countRows),
	}
}

// Pool sizing for the shared handle. Filesystem operations may arrive
// concurrently from the kernel; each one runs a single statement on one
// pooled connection.
const (
	maxOpenConns    = 10
	maxIdleConns    = 10
	connMaxLifetime = 3 * time.Minute
)

// Store runs the filesystem's queries against one database table. It is
// safe for concurrent use.
type Store struct {
	db     *sqlx.DB
	q      queries
	logger *slog.Logger
}

// Open validates cfg, connects to the configured backend, and verifies
// the connection with a ping before returning. The returned Store holds
// a connection pool; Close it when done.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dialect, ok := AvailableDialects[cfg.Backend]
	if !ok {
		return nil, fserr.Config("unknown backend %q (supported: %s)",
			cfg.Backend, strings.Join(BackendNames(), ", "))
	}

	db, err := sqlx.Open(dialect.Name(), dialect.DSN(cfg))
	if err != nil {
		return nil, fserr.Storage("opening %s database: %w", cfg.Backend, err)
	}
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fserr.Storage("connecting to %s database %s: %w", cfg.Backend, cfg.Database, err)
	}

	logger.Debug("database connection established",
		"backend", cfg.Backend, "table", cfg.Table,
		"name_column", cfg.NameColumn, "data_column", cfg.DataColumn)

	return &Store{
		db:     db,
		q:      buildQueries(dialect, cfg).rebind(db),
		logger: logger,
	}, nil
}

// ForEachName streams every name value in the table's ascending name
// order, calling fn once per row. Iteration reads live from the
// database, stops at the first error from fn, and cannot be restarted.
func (s *Store) ForEachName(ctx context.Context, fn func(name string) error) error {
	rows, err := s.db.QueryContext(ctx, s.q.listNames)
	if err != nil {
		return fserr.Storage("listing rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name sql.NullString
		if err := rows.Scan(&name); err != nil {
			return fserr.Storage("scanning name value: %w", err)
		}
		// NULL and empty names cannot appear in a directory; skip them.
		if !name.Valid || name.String == "" {
			continue
		}
		if err := fn(name.String); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fserr.Storage("iterating rows: %w", err)
	}
	return nil
}

// SizeOf reports the byte length of the content for the row named key.
// found is false when no such row exists; err is reserved for storage
// failures, so absence is never conflated with unavailability. A NULL
// content value sizes as zero.
func (s *Store) SizeOf(ctx context.Context, key string) (size uint64, found bool, err error) {
	if !rowpath.ValidKey(key) {
		return 0, false, fserr.InvalidPath("row key %q is not a decimal integer", key)
	}

	var length sql.NullInt64
	err = s.db.GetContext(ctx, &length, s.q.sizeOf, key)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fserr.Storage("sizing row %s: %w", key, err)
	}
	if !length.Valid || length.Int64 < 0 {
		return 0, true, nil
	}
	return uint64(length.Int64), true, nil
}

// ContentOf fetches the full content bytes for the row named key. found
// is false when no such row exists. A NULL content value reads as empty.
func (s *Store) ContentOf(ctx context.Context, key string) (data []byte, found bool, err error) {
	if !rowpath.ValidKey(key) {
		return nil, false, fserr.InvalidPath("row key %q is not a decimal integer", key)
	}

	err = s.db.GetContext(ctx, &data, s.q.contentOf, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fserr.Storage("reading row %s: %w", key, err)
	}
	return data, true, nil
}

// CountRows reports the table's row count, addressable or not.
func (s *Store) CountRows(ctx context.Context) (uint64, error) {
	var n uint64
	if err := s.db.GetContext(ctx, &n, s.q.countRows); err != nil {
		return 0, fserr.Storage("counting rows: %w", err)
	}
	return n, nil
}

// Ping verifies the database is still reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fserr.Storage("pinging database: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
