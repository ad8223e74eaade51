package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SheCodesAus/vibelab/internal/models"
)

// ShareAccessRepository persists remembered share passphrases.
type ShareAccessRepository struct {
	db *sql.DB
}

// NewShareAccessRepository creates a new ShareAccessRepository with the given database connection
func NewShareAccessRepository(db *sql.DB) *ShareAccessRepository {
	return &ShareAccessRepository{db: db}
}

// Create inserts a remembered passphrase, overwriting any previous entry for
// the playlist. A re-unlock with a new passphrase replaces the old one.
func (r *ShareAccessRepository) Create(access *models.ShareAccess) error {
	if err := access.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO share_access (playlist_id, passphrase, remembered_at)
		VALUES (?, ?, ?)
		ON CONFLICT(playlist_id) DO UPDATE SET
			passphrase = excluded.passphrase,
			remembered_at = excluded.remembered_at
	`

	_, err := r.db.Exec(query, access.ID(), access.Passphrase(), access.CreatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert share access: %w", err)
	}

	return nil
}

// Get retrieves the remembered passphrase for a playlist.
func (r *ShareAccessRepository) Get(playlistID string) (*models.ShareAccess, error) {
	query := `
		SELECT playlist_id, passphrase, remembered_at
		FROM share_access
		WHERE playlist_id = ?
	`

	var (
		id           string
		passphrase   string
		rememberedAt time.Time
	)

	err := r.db.QueryRow(query, playlistID).Scan(&id, &passphrase, &rememberedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no remembered passphrase for playlist %s: %w", playlistID, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query share access: %w", err)
	}

	access := models.NewShareAccess(id, passphrase)
	access.SetRememberedAt(rememberedAt)
	return access, nil
}

// Delete forgets the passphrase for a playlist.
func (r *ShareAccessRepository) Delete(playlistID string) error {
	result, err := r.db.Exec(`DELETE FROM share_access WHERE playlist_id = ?`, playlistID)
	if err != nil {
		return fmt.Errorf("failed to delete share access: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("no remembered passphrase for playlist %s", playlistID)
	}

	return nil
}

// List retrieves every remembered passphrase, most recent first.
func (r *ShareAccessRepository) List() ([]*models.ShareAccess, error) {
	query := `
		SELECT playlist_id, passphrase, remembered_at
		FROM share_access
		ORDER BY remembered_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query share access: %w", err)
	}
	defer rows.Close()

	var entries []*models.ShareAccess
	for rows.Next() {
		var (
			id           string
			passphrase   string
			rememberedAt time.Time
		)

		if err := rows.Scan(&id, &passphrase, &rememberedAt); err != nil {
			return nil, fmt.Errorf("failed to scan share access: %w", err)
		}

		access := models.NewShareAccess(id, passphrase)
		access.SetRememberedAt(rememberedAt)
		entries = append(entries, access)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}
