package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/CreativeUnicorns/vaultprefs"
)

const (
	sqliteCreateTableSQL = `
		CREATE TABLE IF NOT EXISTS vault_preferences (
			profile_id TEXT NOT NULL,
			key TEXT NOT NULL,
			type TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (profile_id, key)
		);
	`

	sqliteUpsertSQL = `
		INSERT INTO vault_preferences (profile_id, key, type, value, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(profile_id, key)
		DO UPDATE SET type = excluded.type, value = excluded.value, updated_at = excluded.updated_at
	`

	sqliteSelectSQL = `
		SELECT profile_id, key, type, value, updated_at
		FROM vault_preferences
		WHERE profile_id = ? AND key = ?
	`

	sqliteSelectAllSQL = `
		SELECT profile_id, key, type, value, updated_at
		FROM vault_preferences
		WHERE profile_id = ?
	`

	sqliteDeleteSQL = `
		DELETE FROM vault_preferences
		WHERE profile_id = ? AND key = ?
	`
)

// SQLiteStorage implements the Storage interface using SQLite. Values are
// kept as JSON text next to their type tag.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage connects to the SQLite database at dbPath and runs migrations.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to ping database: %w", err)
	}

	storage := &SQLiteStorage{db: db}
	if err := storage.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to run migrations: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) migrate() error {
	_, err := s.db.Exec(sqliteCreateTableSQL)
	return err
}

// Get retrieves an entry by profile and key.
// It returns ErrNotFound if the entry does not exist.
func (s *SQLiteStorage) Get(ctx context.Context, profileID, key string) (*vaultprefs.Entry, error) {
	var e vaultprefs.Entry
	var valueJSON string

	err := s.db.QueryRowContext(ctx, sqliteSelectSQL, profileID, key).Scan(
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
		return nil, fmt.Errorf("sqlite: failed to get preference: %w", err)
	}

	if e.Value, err = decodeValue(key, []byte(valueJSON)); err != nil {
		return nil, err
	}
	return &e, nil
}

// Set inserts or replaces an entry.
func (s *SQLiteStorage) Set(ctx context.Context, e *vaultprefs.Entry) error {
	valueJSON, err := encodeValue(e.Key, e.Value)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, sqliteUpsertSQL,
		e.ProfileID,
		e.Key,
		e.Type,
		string(valueJSON),
		e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: failed to set preference: %w", err)
	}
	return nil
}

// GetAll retrieves every entry of a profile.
func (s *SQLiteStorage) GetAll(ctx context.Context, profileID string) (map[string]*vaultprefs.Entry, error) {
	rows, err := s.db.QueryContext(ctx, sqliteSelectAllSQL, profileID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to query preferences: %w", err)
	}
	defer rows.Close()

	entries := make(map[string]*vaultprefs.Entry)
	for rows.Next() {
		var e vaultprefs.Entry
		var valueJSON string

		if err := rows.Scan(&e.ProfileID, &e.Key, &e.Type, &valueJSON, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan preference: %w", err)
		}
		if e.Value, err = decodeValue(e.Key, []byte(valueJSON)); err != nil {
			return nil, err
		}
		entries[e.Key] = &e
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: error iterating rows: %w", err)
	}
	return entries, nil
}

// Delete removes an entry by profile and key.
// It returns ErrNotFound if the entry does not exist.
func (s *SQLiteStorage) Delete(ctx context.Context, profileID, key string) error {
	result, err := s.db.ExecContext(ctx, sqliteDeleteSQL, profileID, key)
	if err != nil {
		return fmt.Errorf("sqlite: failed to delete preference: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: failed to get affected rows: %w", err)
	}
	if n == 0 {
		return vaultprefs.ErrNotFound
	}
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
