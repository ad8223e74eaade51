package models

import (
	"fmt"
	"time"
)

// ShareAccess is a remembered passphrase for a shared playlist, persisted
// locally so return visits can auto-unlock.
type ShareAccess struct {
	playlistID   string
	passphrase   string
	rememberedAt time.Time
}

// NewShareAccess creates a remembered passphrase entry for a playlist.
func NewShareAccess(playlistID, passphrase string) *ShareAccess {
	return &ShareAccess{
		playlistID:   playlistID,
		passphrase:   passphrase,
		rememberedAt: time.Now(),
	}
}

func (a *ShareAccess) ID() string           { return a.playlistID }
func (a *ShareAccess) Passphrase() string   { return a.passphrase }
func (a *ShareAccess) CreatedAt() time.Time { return a.rememberedAt }
func (a *ShareAccess) UpdatedAt() time.Time { return a.rememberedAt }

func (a *ShareAccess) SetRememberedAt(t time.Time) { a.rememberedAt = t }

func (a *ShareAccess) Validate() error {
	if a.playlistID == "" {
		return fmt.Errorf("share access requires a playlist id")
	}
	if a.passphrase == "" {
		return fmt.Errorf("share access requires a passphrase")
	}
	return nil
}

// CachedPlaylist is a locally stored snapshot of a backend playlist,
// used for offline display.
type CachedPlaylist struct {
	playlistID string
	snapshot   string
	fetchedAt  time.Time
}

// NewCachedPlaylist wraps a playlist snapshot (JSON) for persistence.
func NewCachedPlaylist(playlistID, snapshot string) *CachedPlaylist {
	return &CachedPlaylist{
		playlistID: playlistID,
		snapshot:   snapshot,
		fetchedAt:  time.Now(),
	}
}

func (c *CachedPlaylist) ID() string           { return c.playlistID }
func (c *CachedPlaylist) Snapshot() string     { return c.snapshot }
func (c *CachedPlaylist) CreatedAt() time.Time { return c.fetchedAt }
func (c *CachedPlaylist) UpdatedAt() time.Time { return c.fetchedAt }

func (c *CachedPlaylist) SetFetchedAt(t time.Time) { c.fetchedAt = t }

func (c *CachedPlaylist) Validate() error {
	if c.playlistID == "" {
		return fmt.Errorf("cached playlist requires a playlist id")
	}
	if c.snapshot == "" {
		return fmt.Errorf("cached playlist requires a snapshot")
	}
	return nil
}
