package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/SheCodesAus/vibelab/internal/models"
)

var (
	_ list.Item = playlistItem{}
	_ list.Item = trackItem{}
	_ list.Item = catalogItem{}
)

// playlistItem wraps [models.Playlist] to implement [list.Item].
type playlistItem struct {
	playlist models.Playlist
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }
func (i playlistItem) Title() string       { return i.playlist.Name }
func (i playlistItem) Description() string {
	desc := fmt.Sprintf("%s • %d tracks", i.playlist.Vibe, len(i.playlist.Items))
	if i.playlist.Description != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.playlist.Description)
	}
	return desc
}

// trackItem wraps [models.TrackItem] to implement [list.Item].
type trackItem struct {
	track models.TrackItem
}

func (i trackItem) FilterValue() string { return i.track.Title }
func (i trackItem) Title() string       { return i.track.Title }
func (i trackItem) Description() string {
	desc := i.track.Artist
	if i.track.Album != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.track.Album)
	}
	return desc
}

// catalogItem wraps [models.CatalogTrack] to implement [list.Item].
type catalogItem struct {
	track models.CatalogTrack
}

func (i catalogItem) FilterValue() string { return i.track.Title }
func (i catalogItem) Title() string       { return i.track.Title }
func (i catalogItem) Description() string {
	desc := i.track.Artist
	if i.track.Album != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.track.Album)
	}
	return desc
}
