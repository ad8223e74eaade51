package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SheCodesAus/vibelab/internal/models"
)

// PlaylistCacheRepository stores JSON snapshots of backend playlists.
//
// Snapshots serve `playlist show --cached` when the backend is unreachable;
// they are overwritten on every successful fetch.
type PlaylistCacheRepository struct {
	db *sql.DB
}

// NewPlaylistCacheRepository creates a new PlaylistCacheRepository with the given database connection
func NewPlaylistCacheRepository(db *sql.DB) *PlaylistCacheRepository {
	return &PlaylistCacheRepository{db: db}
}

// Put stores or refreshes the snapshot for a playlist.
func (r *PlaylistCacheRepository) Put(playlist models.Playlist) error {
	snapshot, err := json.Marshal(playlist)
	if err != nil {
		return fmt.Errorf("failed to marshal playlist snapshot: %w", err)
	}

	cached := models.NewCachedPlaylist(playlist.ID, string(snapshot))
	if err := cached.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO playlist_cache (playlist_id, snapshot, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(playlist_id) DO UPDATE SET
			snapshot = excluded.snapshot,
			fetched_at = excluded.fetched_at
	`

	if _, err := r.db.Exec(query, cached.ID(), cached.Snapshot(), cached.CreatedAt()); err != nil {
		return fmt.Errorf("failed to upsert playlist snapshot: %w", err)
	}

	return nil
}

// Get retrieves a cached playlist snapshot together with its fetch time.
func (r *PlaylistCacheRepository) Get(playlistID string) (*models.Playlist, time.Time, error) {
	query := `SELECT snapshot, fetched_at FROM playlist_cache WHERE playlist_id = ?`

	var (
		snapshot  string
		fetchedAt time.Time
	)

	err := r.db.QueryRow(query, playlistID).Scan(&snapshot, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, fmt.Errorf("no cached snapshot for playlist %s: %w", playlistID, err)
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to query playlist snapshot: %w", err)
	}

	var playlist models.Playlist
	if err := json.Unmarshal([]byte(snapshot), &playlist); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to decode playlist snapshot: %w", err)
	}

	return &playlist, fetchedAt, nil
}

// Delete removes the snapshot for a playlist.
func (r *PlaylistCacheRepository) Delete(playlistID string) error {
	if _, err := r.db.Exec(`DELETE FROM playlist_cache WHERE playlist_id = ?`, playlistID); err != nil {
		return fmt.Errorf("failed to delete playlist snapshot: %w", err)
	}
	return nil
}
