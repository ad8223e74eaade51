package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// KVRepository persists string key-value pairs with optional expiry.
//
// Backs the token store; keys are namespaced by the caller
// (e.g. "credential/session", "pkce/verifier").
type KVRepository struct {
	db *sql.DB
}

// NewKVRepository creates a new KVRepository with the given database connection
func NewKVRepository(db *sql.DB) *KVRepository {
	return &KVRepository{db: db}
}

// Get retrieves a value by key. Rows past their expiry are treated as absent
// and removed lazily.
func (r *KVRepository) Get(key string) (string, bool, error) {
	query := `SELECT value, expires_at FROM kv WHERE key = ?`

	var (
		value     string
		expiresAt sql.NullTime
	)

	err := r.db.QueryRow(query, key).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query kv row: %w", err)
	}

	if expiresAt.Valid && !expiresAt.Time.After(time.Now()) {
		_ = r.Delete(key)
		return "", false, nil
	}

	return value, true, nil
}

// Set stores a value without expiry, overwriting any existing row.
func (r *KVRepository) Set(key, value string) error {
	return r.set(key, value, nil)
}

// SetUntil stores a value that becomes absent at the given time.
func (r *KVRepository) SetUntil(key, value string, expiry time.Time) error {
	return r.set(key, value, &expiry)
}

func (r *KVRepository) set(key, value string, expiry *time.Time) error {
	query := `
		INSERT INTO kv (key, value, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at,
			updated_at = CURRENT_TIMESTAMP
	`

	var expiresAt any
	if expiry != nil {
		expiresAt = expiry.UTC()
	}

	if _, err := r.db.Exec(query, key, value, expiresAt); err != nil {
		return fmt.Errorf("failed to upsert kv row: %w", err)
	}
	return nil
}

// Expiry reports the stored expiry for a key, if any.
func (r *KVRepository) Expiry(key string) (time.Time, bool, error) {
	var expiresAt sql.NullTime

	err := r.db.QueryRow(`SELECT expires_at FROM kv WHERE key = ?`, key).Scan(&expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to query kv expiry: %w", err)
	}

	if !expiresAt.Valid {
		return time.Time{}, false, nil
	}
	return expiresAt.Time, true, nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (r *KVRepository) Delete(key string) error {
	if _, err := r.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete kv row: %w", err)
	}
	return nil
}

// DeletePrefix removes every key sharing the given prefix.
func (r *KVRepository) DeletePrefix(prefix string) error {
	if _, err := r.db.Exec(`DELETE FROM kv WHERE key LIKE ? || '%'`, prefix); err != nil {
		return fmt.Errorf("failed to delete kv rows: %w", err)
	}
	return nil
}
