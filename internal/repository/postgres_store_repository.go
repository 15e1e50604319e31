package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"
)

var tableNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// PostgresStoreRepository keeps the shared string store in a two-column table.
type PostgresStoreRepository struct {
	db    *sqlx.DB
	table string
}

// NewPostgresStoreRepository constructs a table-backed store. The table name
// is interpolated into SQL, so only lower-case identifiers are accepted.
func NewPostgresStoreRepository(db *sqlx.DB, table string) (*PostgresStoreRepository, error) {
	if table == "" {
		table = "kv_store"
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid store table name %q", table)
	}
	return &PostgresStoreRepository{db: db, table: table}, nil
}

// EnsureSchema creates the backing table when missing.
func (r *PostgresStoreRepository) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`, r.table)
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create %s: %w", r.table, err)
	}
	return nil
}

// GetAllKeys lists every key in the table.
func (r *PostgresStoreRepository) GetAllKeys(ctx context.Context) ([]string, error) {
	keys := make([]string, 0)
	query := fmt.Sprintf("SELECT key FROM %s", r.table)
	if err := r.db.SelectContext(ctx, &keys, query); err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	return keys, nil
}

// GetItem returns the value stored under key.
func (r *PostgresStoreRepository) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	query := fmt.Sprintf("SELECT value FROM %s WHERE key = $1", r.table)
	if err := r.db.GetContext(ctx, &value, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// SetItem upserts value under key.
func (r *PostgresStoreRepository) SetItem(ctx context.Context, key, value string) error {
	query := fmt.Sprintf(`INSERT INTO %s (key, value, updated_at) VALUES ($1, $2, NOW())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`, r.table)
	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Ping checks connectivity.
func (r *PostgresStoreRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close releases the connection pool.
func (r *PostgresStoreRepository) Close() error {
	return r.db.Close()
}
