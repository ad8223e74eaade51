package models

import (
	"fmt"
	"strings"
)

// Vibe is the closed set of genre tags a playlist can carry.
type Vibe string

const (
	VibeCountry Vibe = "Country"
	VibeLatin   Vibe = "Latin"
	VibePop     Vibe = "Pop"
	VibeRnB     Vibe = "R&B"
	VibeRock    Vibe = "Rock"
	VibeTechno  Vibe = "Techno"
)

// Vibes lists every valid vibe tag, in display order.
func Vibes() []Vibe {
	return []Vibe{VibeCountry, VibeLatin, VibePop, VibeRnB, VibeRock, VibeTechno}
}

// ParseVibe matches a string against the vibe set, case-insensitively.
func ParseVibe(s string) (Vibe, error) {
	for _, v := range Vibes() {
		if strings.EqualFold(string(v), s) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown vibe %q (valid: %s)", s, joinVibes())
}

func joinVibes() string {
	names := make([]string, 0, len(Vibes()))
	for _, v := range Vibes() {
		names = append(names, string(v))
	}
	return strings.Join(names, ", ")
}

// Playlist represents a VibeLab playlist as returned by the backend.
type Playlist struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Vibe        Vibe        `json:"vibe"`
	Open        bool        `json:"is_open"`
	Owner       Owner       `json:"owner"`
	Items       []TrackItem `json:"items"`
}

// Owner identifies the playlist creator.
type Owner struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// TrackItem is a single song entry inside a playlist.
type TrackItem struct {
	ID        int    `json:"id"`
	SpotifyID string `json:"spotify_id"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Album     string `json:"album"`
}

// CatalogTrack is a Spotify search result offered for selection.
type CatalogTrack struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
	URI    string `json:"uri"`
	Cover  string `json:"cover,omitempty"`
}

// Item converts a selected catalog track into a playlist track item.
func (t CatalogTrack) Item() TrackItem {
	return TrackItem{
		SpotifyID: t.ID,
		Title:     t.Title,
		Artist:    t.Artist,
		Album:     t.Album,
	}
}

// ShareMeta is the public, pre-unlock view of a shared playlist.
type ShareMeta struct {
	PlaylistID       string `json:"id"`
	Title            string `json:"title"`
	Creator          string `json:"creator"`
	RequiresPassword bool   `json:"requires_password"`
}

// ShareGrant is an issued share token for a playlist.
type ShareGrant struct {
	Token      string `json:"share_token"`
	ShareURL   string `json:"share_url"`
	PlaylistID string `json:"playlist_id"`
	Protected  bool   `json:"requires_password"`
}

// User is the authenticated VibeLab account.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
}
