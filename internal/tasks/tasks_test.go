package tasks

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SheCodesAus/vibelab/internal/models"
	"github.com/SheCodesAus/vibelab/internal/services"
	"github.com/SheCodesAus/vibelab/internal/shared"
)

// fakeBackend scripts playlist creation and item writes.
type fakeBackend struct {
	playlists []models.Playlist
	created   []services.CreatePlaylistRequest
	added     []models.TrackItem
	// failTitles lists track titles whose AddItem call should fail.
	failTitles map[string]bool
	createErr  error
	listErr    error
	fetchErr   map[string]error
}

func (f *fakeBackend) CreatePlaylist(ctx context.Context, req services.CreatePlaylistRequest) (*models.Playlist, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, req)
	return &models.Playlist{ID: "pl-new", Name: req.Name, Vibe: req.Vibe, Open: req.Open}, nil
}

func (f *fakeBackend) AddItem(ctx context.Context, playlistID string, item models.TrackItem, passphrase string) (*models.TrackItem, error) {
	if f.failTitles[item.Title] {
		return nil, fmt.Errorf("%w: rejected", shared.ErrAPIRequest)
	}
	item.ID = len(f.added) + 1
	f.added = append(f.added, item)
	return &item, nil
}

func (f *fakeBackend) Playlists(ctx context.Context) ([]models.Playlist, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.playlists, nil
}

func (f *fakeBackend) Playlist(ctx context.Context, id string) (*models.Playlist, error) {
	if err := f.fetchErr[id]; err != nil {
		return nil, err
	}
	for _, p := range f.playlists {
		if p.ID == id {
			full := p
			full.Items = []models.TrackItem{{ID: 1, Title: "Holocene"}}
			return &full, nil
		}
	}
	return nil, shared.ErrPlaylistNotFound
}

// fakeCatalog returns one match per known query.
type fakeCatalog struct {
	matches map[string]models.CatalogTrack
	errs    map[string]error
	queries []string
}

func (f *fakeCatalog) Search(ctx context.Context, query string, limit int) ([]models.CatalogTrack, error) {
	f.queries = append(f.queries, query)
	if err := f.errs[query]; err != nil {
		return nil, err
	}
	if match, ok := f.matches[query]; ok {
		return []models.CatalogTrack{match}, nil
	}
	return nil, nil
}

// fakeCache records snapshots in a map.
type fakeCache struct {
	snapshots map[string]models.Playlist
	putErr    error
}

func newFakeCache() *fakeCache {
	return &fakeCache{snapshots: make(map[string]models.Playlist)}
}

func (f *fakeCache) Put(playlist models.Playlist) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.snapshots[playlist.ID] = playlist
	return nil
}

func (f *fakeCache) Get(playlistID string) (*models.Playlist, time.Time, error) {
	p, ok := f.snapshots[playlistID]
	if !ok {
		return nil, time.Time{}, fmt.Errorf("no snapshot for %s", playlistID)
	}
	return &p, time.Now(), nil
}

func collect(progress chan ProgressUpdate) []ProgressUpdate {
	var updates []ProgressUpdate
	for {
		select {
		case u := <-progress:
			updates = append(updates, u)
		default:
			return updates
		}
	}
}

func TestDraftValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		draft := Draft{Name: "Rainy Day", Vibe: models.VibeRock}
		if err := draft.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		draft := Draft{Name: "   ", Vibe: models.VibeRock}
		if err := draft.Validate(); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("unknown vibe", func(t *testing.T) {
		draft := Draft{Name: "Rainy Day", Vibe: "Jazz"}
		if err := draft.Validate(); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestPublish(t *testing.T) {
	ctx := context.Background()

	draft := Draft{
		Name: "Rainy Day",
		Vibe: models.VibeRock,
		Tracks: []models.TrackItem{
			{SpotifyID: "t1", Title: "Holocene"},
			{SpotifyID: "t2", Title: "Re: Stacks"},
		},
	}

	t.Run("creates the playlist then adds every track", func(t *testing.T) {
		backend := &fakeBackend{}
		cache := newFakeCache()
		engine := NewPlaylistEngine(backend, nil, cache)
		progress := make(chan ProgressUpdate, 16)

		result, err := engine.Publish(ctx, progress, draft)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if result.SuccessCount != 2 || result.FailedCount != 0 {
			t.Errorf("expected 2 successes, got %+v", result)
		}
		if len(backend.created) != 1 || backend.created[0].Vibe != models.VibeRock {
			t.Errorf("unexpected create request: %+v", backend.created)
		}
		if len(result.Playlist.Items) != 2 {
			t.Errorf("expected items on the result playlist, got %d", len(result.Playlist.Items))
		}

		snapshot, ok := cache.snapshots["pl-new"]
		if !ok || len(snapshot.Items) != 2 {
			t.Error("expected the finished playlist to be cached")
		}

		updates := collect(progress)
		if len(updates) != 3 {
			t.Fatalf("expected 3 progress updates, got %d", len(updates))
		}
		if updates[0].Phase != CreatePlaylist || updates[1].Phase != AddTracks {
			t.Errorf("unexpected phases: %v, %v", updates[0].Phase, updates[1].Phase)
		}
		if updates[2].Step != 2 || updates[2].Total != 2 {
			t.Errorf("expected step 2 of 2, got %d of %d", updates[2].Step, updates[2].Total)
		}
	})

	t.Run("track failures are recorded, not fatal", func(t *testing.T) {
		backend := &fakeBackend{failTitles: map[string]bool{"Holocene": true}}
		engine := NewPlaylistEngine(backend, nil, nil)

		result, err := engine.Publish(ctx, nil, draft)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if result.SuccessCount != 1 || result.FailedCount != 1 {
			t.Errorf("expected one of each, got %+v", result)
		}
		if result.ItemResults[0].Error == nil || result.ItemResults[1].Error != nil {
			t.Errorf("expected the failure on the first track: %+v", result.ItemResults)
		}
	})

	t.Run("invalid draft never reaches the backend", func(t *testing.T) {
		backend := &fakeBackend{}
		engine := NewPlaylistEngine(backend, nil, nil)

		_, err := engine.Publish(ctx, nil, Draft{Vibe: models.VibeRock})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		if len(backend.created) != 0 {
			t.Error("expected no create request for an invalid draft")
		}
	})

	t.Run("create failure aborts", func(t *testing.T) {
		backend := &fakeBackend{createErr: errors.New("boom")}
		engine := NewPlaylistEngine(backend, nil, nil)

		if _, err := engine.Publish(ctx, nil, draft); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("cache failure reports but keeps the result", func(t *testing.T) {
		cache := newFakeCache()
		cache.putErr = errors.New("disk full")
		engine := NewPlaylistEngine(&fakeBackend{}, nil, cache)

		result, err := engine.Publish(ctx, nil, draft)
		if err == nil {
			t.Fatal("expected an error")
		}
		if result == nil || result.SuccessCount != 2 {
			t.Errorf("expected the publish result alongside the error, got %+v", result)
		}
	})
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("matches, misses and blanks", func(t *testing.T) {
		catalog := &fakeCatalog{
			matches: map[string]models.CatalogTrack{
				"Holocene - Bon Iver": {ID: "t1", Title: "Holocene", Artist: "Bon Iver"},
			},
		}
		engine := NewPlaylistEngine(nil, catalog, nil)

		results, err := engine.Resolve(ctx, nil, []string{
			"Holocene - Bon Iver",
			"   ",
			"no such song xyzzy",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(results) != 2 {
			t.Fatalf("expected blanks skipped, got %d results", len(results))
		}
		if results[0].Matched == nil || results[0].Matched.ID != "t1" {
			t.Errorf("expected a match for the first query: %+v", results[0])
		}
		if results[1].Matched != nil || results[1].Error != nil {
			t.Errorf("expected a silent miss: %+v", results[1])
		}
	})

	t.Run("search errors are recorded per query", func(t *testing.T) {
		catalog := &fakeCatalog{
			errs: map[string]error{"bad": shared.ErrServiceUnavailable},
		}
		engine := NewPlaylistEngine(nil, catalog, nil)

		results, err := engine.Resolve(ctx, nil, []string{"bad"})
		if err != nil {
			t.Fatalf("expected no batch error, got %v", err)
		}
		if !errors.Is(results[0].Error, shared.ErrServiceUnavailable) {
			t.Errorf("expected the query's error recorded, got %+v", results[0])
		}
	})

	t.Run("no catalog configured", func(t *testing.T) {
		engine := NewPlaylistEngine(&fakeBackend{}, nil, nil)

		if _, err := engine.Resolve(ctx, nil, []string{"x"}); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestSyncLibrary(t *testing.T) {
	ctx := context.Background()

	t.Run("caches every playlist", func(t *testing.T) {
		backend := &fakeBackend{
			playlists: []models.Playlist{
				{ID: "pl-1", Name: "Rainy Day"},
				{ID: "pl-2", Name: "Gym"},
			},
		}
		cache := newFakeCache()
		engine := NewPlaylistEngine(backend, nil, cache)
		progress := make(chan ProgressUpdate, 16)

		result, err := engine.SyncLibrary(ctx, progress)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if result.Cached != 2 || result.Failed != 0 {
			t.Errorf("expected 2 cached, got %+v", result)
		}
		if len(cache.snapshots) != 2 {
			t.Errorf("expected 2 snapshots, got %d", len(cache.snapshots))
		}
		if len(result.Playlists[0].Items) != 1 {
			t.Error("expected the full playlist in the result")
		}

		updates := collect(progress)
		if updates[0].Phase != FetchPlaylists {
			t.Errorf("expected the fetch phase first, got %v", updates[0].Phase)
		}
	})

	t.Run("a failing playlist does not abort the sync", func(t *testing.T) {
		backend := &fakeBackend{
			playlists: []models.Playlist{
				{ID: "pl-1", Name: "Rainy Day"},
				{ID: "pl-2", Name: "Gym"},
			},
			fetchErr: map[string]error{"pl-1": shared.ErrAPIRequest},
		}
		engine := NewPlaylistEngine(backend, nil, newFakeCache())

		result, err := engine.SyncLibrary(ctx, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Cached != 1 || result.Failed != 1 {
			t.Errorf("expected one of each, got %+v", result)
		}
	})

	t.Run("list failure aborts", func(t *testing.T) {
		backend := &fakeBackend{listErr: errors.New("down")}
		engine := NewPlaylistEngine(backend, nil, nil)

		if _, err := engine.SyncLibrary(ctx, nil); err == nil {
			t.Error("expected an error")
		}
	})
}
