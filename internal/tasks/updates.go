package tasks

import (
	"fmt"

	"github.com/SheCodesAus/vibelab/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	CreatePlaylist Phase = iota
	AddTracks
	ResolveTracks
	FetchPlaylists
	CachePlaylists
)

func (p Phase) String() string {
	switch p {
	case CreatePlaylist:
		return "create_playlist"
	case AddTracks:
		return "add_tracks"
	case ResolveTracks:
		return "resolve_tracks"
	case FetchPlaylists:
		return "fetch_playlists"
	case CachePlaylists:
		return "cache_playlists"
	default:
		return ""
	}
}

func createPlaylistUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreatePlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Creating playlist (%s)...", name),
	}
}

func addTrackUpdate(step, total int, item *models.TrackItem) ProgressUpdate {
	update := ProgressUpdate{
		Phase:   AddTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Adding tracks (%d/%d)...", step, total),
		Data:    item,
	}

	if item != nil {
		update.Message = fmt.Sprintf("Adding %q by %s (%d/%d)...", item.Title, item.Artist, step, total)
	}

	return update
}

func resolveTrackUpdate(step, total int, query string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Searching catalog for %q (%d/%d)...", query, step, total),
	}
}

func fetchPlaylistsUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPlaylists,
		Step:    1,
		Total:   1,
		Message: "Fetching your playlists...",
	}
}

func cachePlaylistUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CachePlaylists,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Caching %q (%d/%d)...", name, step, total),
	}
}
