// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for building and sharing playlists:
//  1. [LoginView] / [SignupView] : First-party account forms
//  2. [PlaylistListView] : Browse your playlists
//  3. [TrackListView] : View a playlist's tracks
//  4. [CreateView] : Name a new playlist and pick its vibe
//  5. [SearchView] : Search the catalog and collect tracks for the draft
//  6. [PublishView] : Monitor real-time progress while the draft is published
//  7. [GateView] / [SharedView] : Unlock and view a shared playlist
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the PlaylistEngine, providing
// non-blocking status reporting during publishing.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
