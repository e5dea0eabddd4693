package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"github.com/mms8452/baby/internal/logging"
	"github.com/mms8452/baby/internal/metrics"
)

// Default timeout for database operations
const defaultTimeout = 5 * time.Second

// Store manages all database operations for the catalog.
//
// A single RWMutex serializes access: one logical writer at a time,
// readers never observe a partial write. Critical sections are short and
// the lock is never held across image or filesystem work.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex
}

// New creates a new Store instance.
// dbPath must be the full path to the database FILE (e.g.
// "/database/catalog.db"); the parent directory must already exist and be
// writable. Use startup.LoadConfig() for directory validation before
// calling this.
func New(ctx context.Context, dbPath string) (*Store, error) {
	logging.Info("Database path: %s", dbPath)

	// WAL mode and busy_timeout prevent "database is locked" errors
	// under concurrent callers.
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close database after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{
		db:     db,
		dbPath: dbPath,
	}

	if err := s.initialize(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close database after initialization failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	logging.Info("Database initialized successfully at %s", dbPath)
	return s, nil
}

func (s *Store) initialize(ctx context.Context) error {
	schema := `
	-- Main files table, one row per cataloged media asset
	CREATE TABLE IF NOT EXISTS files (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		path TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		mime_type TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL,
		modified_at INTEGER NOT NULL,
		age_label TEXT NOT NULL,
		thumbnail_path TEXT,
		note TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_files_created_at ON files(created_at);
	CREATE INDEX IF NOT EXISTS idx_files_kind ON files(kind);

	-- Settings as flat key/value pairs
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// BeginBatch starts a transaction for batch operations.
// The caller is responsible for calling EndBatch when done.
// The write lock is held only while the transaction starts, not for its
// entire duration.
func (s *Store) BeginBatch() (*sql.Tx, error) {
	s.mu.Lock()
	// Background context: the transaction's lifetime is managed by
	// EndBatch, not a timeout; a deferred cancel here would kill the
	// transaction as soon as this function returned.
	tx, err := s.db.BeginTx(context.Background(), nil)
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return tx, nil
}

// EndBatch commits or rolls back a transaction.
func (s *Store) EndBatch(tx *sql.Tx, err error) error {
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback also failed: %w", rbErr))
		}
		return err
	}
	return tx.Commit()
}

// recordQuery records database query metrics
func recordQuery(operation string, start time.Time, err error) {
	duration := time.Since(start).Seconds()
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.DBQueryTotal.WithLabelValues(operation, status).Inc()
	metrics.DBQueryDuration.WithLabelValues(operation).Observe(duration)
}

// recordRows records the rows-affected metric for write operations.
func recordRows(operation string, rows int64) {
	if rows > 0 {
		metrics.DBRowsAffected.WithLabelValues(operation).Observe(float64(rows))
	}
}
