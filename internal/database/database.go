package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/rohinthram/sanskrita-saarathi/internal/schema"
)

// DefaultOperationTimeout bounds each unit of work when no explicit timeout
// is configured.
const DefaultOperationTimeout = 30 * time.Second

// Manager is the generic record access layer: one database connection plus a
// registry of record type descriptors. Every operation resolves the table
// name against the registry, runs inside its own transactional unit of work,
// and returns a Result envelope instead of a Go error, so automated callers
// can branch on the status field without handling faults.
type Manager struct {
	conn      *sql.DB
	url       string
	registry  *schema.Registry
	opTimeout time.Duration
	mu        sync.Mutex
}

// Option configures a Manager.
type Option func(*Manager)

// WithOperationTimeout bounds every unit of work with the given deadline.
func WithOperationTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.opTimeout = d
		}
	}
}

// New opens the database and builds a manager over the given registry.
// databaseURL is a SQLite file path or DSN; pool and journal settings follow
// the usual WAL setup for concurrent readers with serialized writes.
func New(databaseURL string, registry *schema.Registry, opts ...Option) (*Manager, error) {
	if registry == nil {
		return nil, fmt.Errorf("schema registry is required")
	}

	dsn := databaseURL
	if !strings.Contains(dsn, "?") {
		dsn = fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", dsn)
	}

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)

	m := &Manager{
		conn:      conn,
		url:       databaseURL,
		registry:  registry,
		opTimeout: DefaultOperationTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}

	log.Debug().Str("url", databaseURL).Int("tables", registry.Len()).Msg("Database engine initialized")

	return m, nil
}

// URL returns the connection string the manager was opened with.
func (m *Manager) URL() string {
	return m.url
}

// Registry returns the schema registry backing the manager.
func (m *Manager) Registry() *schema.Registry {
	return m.registry
}

// withUnitOfWork runs fn inside one bounded transaction: commit on success,
// rollback on any failure, connection released before returning. Writes are
// serialized through the manager mutex to match SQLite's single-writer model.
func (m *Manager) withUnitOfWork(fn func(ctx context.Context, tx *sql.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn == nil {
		return fmt.Errorf("database connection is closed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.opTimeout)
	defer cancel()

	tx, err := m.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("Failed to rollback transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Close releases the database connection. A second close without an active
// connection reports an error envelope rather than failing silently.
func (m *Manager) Close() Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn == nil {
		return failure("No active database connection")
	}

	if err := m.conn.Close(); err != nil {
		return failure("Error closing database connection: %v", err)
	}
	m.conn = nil

	log.Debug().Str("url", m.url).Msg("Database connection closed")

	return success("Database connection closed", nil)
}
