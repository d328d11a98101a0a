package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/CreativeUnicorns/vaultprefs"
)

// sqlOpenFunc is a package-level variable that can be overridden for testing.
var sqlOpenFunc = sql.Open

const (
	createTableSQL = `
		CREATE TABLE IF NOT EXISTS vault_preferences (
			profile_id TEXT NOT NULL,
			key TEXT NOT NULL,
			type TEXT NOT NULL,
			value JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (profile_id, key)
		);
	`

	upsertSQL = `
		INSERT INTO vault_preferences (profile_id, key, type, value, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (profile_id, key)
		DO UPDATE SET type = $3, value = $4, updated_at = $5
	`

	selectSQL = `
		SELECT profile_id, key, type, value, updated_at
		FROM vault_preferences
		WHERE profile_id = $1 AND key = $2
	`

	selectAllSQL = `
		SELECT profile_id, key, type, value, updated_at
		FROM vault_preferences
		WHERE profile_id = $1
	`

	deleteSQL = `
		DELETE FROM vault_preferences
		WHERE profile_id = $1 AND key = $2
	`
)

// PostgresStorage implements the Storage interface using PostgreSQL.
// Several vault profiles can share one table.
type PostgresStorage struct {
	db *sql.DB
}

// NewPostgresStorage connects using connString and runs migrations.
func NewPostgresStorage(connString string) (*PostgresStorage, error) {
	db, err := sqlOpenFunc("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: failed to ping database: %w", err)
	}

	storage := &PostgresStorage{db: db}
	if err := storage.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: failed to run migrations: %w", err)
	}

	return storage, nil
}

func (s *PostgresStorage) migrate() error {
	if _, err := s.db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("postgres: failed to execute create table statement: %w", err)
	}
	return nil
}

// Get retrieves an entry by profile and key.
// It returns ErrNotFound if the entry does not exist.
func (s *PostgresStorage) Get(ctx context.Context, profileID, key string) (*vaultprefs.Entry, error) {
	var e vaultprefs.Entry
	var valueJSON []byte

	err := s.db.QueryRowContext(ctx, selectSQL, profileID, key).Scan(
		&e.ProfileID,
		&e.Key,
		&e.Type,
		&valueJSON,
		&e.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, vaultprefs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to scan preference for profile '%s', key '%s': %w", profileID, key, err)
	}

	if e.Value, err = decodeValue(key, valueJSON); err != nil {
		return nil, err
	}
	return &e, nil
}

// Set inserts or replaces an entry.
func (s *PostgresStorage) Set(ctx context.Context, e *vaultprefs.Entry) error {
	valueJSON, err := encodeValue(e.Key, e.Value)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, upsertSQL,
		e.ProfileID,
		e.Key,
		e.Type,
		valueJSON,
		e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to execute upsert for profile '%s', key '%s': %w", e.ProfileID, e.Key, err)
	}
	return nil
}

// GetAll retrieves every entry of a profile.
func (s *PostgresStorage) GetAll(ctx context.Context, profileID string) (map[string]*vaultprefs.Entry, error) {
	rows, err := s.db.QueryContext(ctx, selectAllSQL, profileID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query preferences for profile '%s': %w", profileID, err)
	}
	defer rows.Close()

	entries := make(map[string]*vaultprefs.Entry)
	for rows.Next() {
		var e vaultprefs.Entry
		var valueJSON []byte

		if err := rows.Scan(&e.ProfileID, &e.Key, &e.Type, &valueJSON, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan preference row: %w", err)
		}
		if e.Value, err = decodeValue(e.Key, valueJSON); err != nil {
			return nil, err
		}
		entries[e.Key] = &e
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: error iterating preference rows: %w", err)
	}
	return entries, nil
}

// Delete removes an entry by profile and key.
// It returns ErrNotFound if the entry does not exist.
func (s *PostgresStorage) Delete(ctx context.Context, profileID, key string) error {
	result, err := s.db.ExecContext(ctx, deleteSQL, profileID, key)
	if err != nil {
		return fmt.Errorf("postgres: failed to execute delete for profile '%s', key '%s': %w", profileID, key, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("postgres: failed to get affected rows for profile '%s', key '%s': %w", profileID, key, err)
	}
	if n == 0 {
		return vaultprefs.ErrNotFound
	}
	return nil
}

// Close closes the PostgreSQL database connection.
func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
