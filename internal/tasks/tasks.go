// package tasks implements the multi-step playlist operations behind the
// CLI and TUI: publishing a draft to the backend, syncing the playlist
// library into the local cache, and resolving free-text track queries.
//
// Operations emit progress updates via channels for non-blocking status
// reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SheCodesAus/vibelab/internal/models"
	"github.com/SheCodesAus/vibelab/internal/services"
	"github.com/SheCodesAus/vibelab/internal/shared"
)

// Backend is the slice of the VibeLab API the engine needs.
// Implemented by services.VibeLabService.
type Backend interface {
	CreatePlaylist(ctx context.Context, req services.CreatePlaylistRequest) (*models.Playlist, error)
	AddItem(ctx context.Context, playlistID string, item models.TrackItem, passphrase string) (*models.TrackItem, error)
	Playlists(ctx context.Context) ([]models.Playlist, error)
	Playlist(ctx context.Context, id string) (*models.Playlist, error)
}

// Catalog searches the track catalog. Implemented by services.SearchService.
type Catalog interface {
	Search(ctx context.Context, query string, limit int) ([]models.CatalogTrack, error)
}

// Cache stores playlist snapshots locally.
// Implemented by repositories.PlaylistCacheRepository.
type Cache interface {
	Put(playlist models.Playlist) error
	Get(playlistID string) (*models.Playlist, time.Time, error)
}

// Draft is a playlist waiting to be published: its metadata plus the
// tracks picked from the catalog.
type Draft struct {
	Name        string
	Description string
	Vibe        models.Vibe
	Open        bool
	Tracks      []models.TrackItem
}

// Validate checks the draft is publishable.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: playlist name is required", shared.ErrInvalidInput)
	}
	if _, err := models.ParseVibe(string(d.Vibe)); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	return nil
}

// ItemResult records the outcome of adding one track.
type ItemResult struct {
	Item  models.TrackItem
	Error error
}

// PublishResult contains all data from a publish operation.
type PublishResult struct {
	Playlist     *models.Playlist // Created playlist
	ItemResults  []ItemResult     // Per-track outcomes
	SuccessCount int              // Tracks added
	FailedCount  int              // Tracks that failed
}

// ResolveResult maps one free-text query to its best catalog match.
type ResolveResult struct {
	Query   string
	Matched *models.CatalogTrack // nil if nothing matched
	Error   error
}

// LibraryResult summarizes a library sync.
type LibraryResult struct {
	Playlists []models.Playlist
	Cached    int
	Failed    int
}

// PlaylistEngine orchestrates draft publishing and library sync.
type PlaylistEngine struct {
	backend Backend
	catalog Catalog
	cache   Cache
}

// NewPlaylistEngine creates an engine. catalog and cache may be nil when
// the corresponding operations are not needed.
func NewPlaylistEngine(backend Backend, catalog Catalog, cache Cache) *PlaylistEngine {
	return &PlaylistEngine{
		backend: backend,
		catalog: catalog,
		cache:   cache,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *PlaylistEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Publish creates the draft's playlist on the backend and adds its
// tracks one by one. Individual track failures do not abort the run;
// they are recorded in the result. The finished playlist is snapshotted
// into the local cache when one is configured.
func (e *PlaylistEngine) Publish(ctx context.Context, progress chan<- ProgressUpdate, draft Draft) (*PublishResult, error) {
	if e.backend == nil {
		return nil, fmt.Errorf("%w: backend not initialized", shared.ErrServiceUnavailable)
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	e.sendProgress(progress, createPlaylistUpdate(draft.Name))

	playlist, err := e.backend.CreatePlaylist(ctx, services.CreatePlaylistRequest{
		Name:        draft.Name,
		Description: draft.Description,
		Vibe:        draft.Vibe,
		Open:        draft.Open,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}

	result := &PublishResult{
		Playlist:    playlist,
		ItemResults: make([]ItemResult, 0, len(draft.Tracks)),
	}

	total := len(draft.Tracks)

	for i, item := range draft.Tracks {
		e.sendProgress(progress, addTrackUpdate(i+1, total, &item))

		created, err := e.backend.AddItem(ctx, playlist.ID, item, "")
		if err != nil {
			result.ItemResults = append(result.ItemResults, ItemResult{Item: item, Error: err})
			result.FailedCount++
			continue
		}

		playlist.Items = append(playlist.Items, *created)
		result.ItemResults = append(result.ItemResults, ItemResult{Item: *created})
		result.SuccessCount++
	}

	if e.cache != nil {
		if err := e.cache.Put(*playlist); err != nil {
			return result, fmt.Errorf("published, but failed to cache snapshot: %w", err)
		}
	}

	return result, nil
}

// Resolve maps free-text queries ("title - artist" lines, typically from
// a file) to their best catalog match. A query with no match is recorded
// with a nil Matched rather than failing the batch.
func (e *PlaylistEngine) Resolve(ctx context.Context, progress chan<- ProgressUpdate, queries []string) ([]ResolveResult, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog search not initialized", shared.ErrServiceUnavailable)
	}

	results := make([]ResolveResult, 0, len(queries))
	total := len(queries)

	for i, raw := range queries {
		query := strings.TrimSpace(raw)
		if query == "" {
			continue
		}

		e.sendProgress(progress, resolveTrackUpdate(i+1, total, query))

		matches, err := e.catalog.Search(ctx, query, 1)
		if err != nil {
			results = append(results, ResolveResult{Query: query, Error: err})
			continue
		}

		result := ResolveResult{Query: query}
		if len(matches) > 0 {
			match := matches[0]
			result.Matched = &match
		}

		results = append(results, result)
	}

	return results, nil
}

// SyncLibrary fetches the user's playlists with their items and caches a
// snapshot of each. Cached snapshots back offline display and export.
func (e *PlaylistEngine) SyncLibrary(ctx context.Context, progress chan<- ProgressUpdate) (*LibraryResult, error) {
	if e.backend == nil {
		return nil, fmt.Errorf("%w: backend not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, fetchPlaylistsUpdate())

	playlists, err := e.backend.Playlists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlists: %w", err)
	}

	result := &LibraryResult{Playlists: playlists}
	total := len(playlists)

	for i, summary := range playlists {
		e.sendProgress(progress, cachePlaylistUpdate(i+1, total, summary.Name))

		full, err := e.backend.Playlist(ctx, summary.ID)
		if err != nil {
			result.Failed++
			continue
		}

		result.Playlists[i] = *full

		if e.cache != nil {
			if err := e.cache.Put(*full); err != nil {
				result.Failed++
				continue
			}
		}

		result.Cached++
	}

	return result, nil
}
