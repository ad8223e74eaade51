package ui

import (
	"github.com/SheCodesAus/vibelab/internal/models"
	"github.com/SheCodesAus/vibelab/internal/tasks"
)

// loginResultMsg reports a login attempt.
type loginResultMsg struct {
	user models.User
	err  error
}

// signupResultMsg reports an account creation attempt.
type signupResultMsg struct {
	user models.User
	err  error
}

// playlistsFetchedMsg carries the user's playlist library.
type playlistsFetchedMsg struct {
	playlists []models.Playlist
	err       error
}

// playlistFetchedMsg carries one playlist with its items.
type playlistFetchedMsg struct {
	playlist *models.Playlist
	err      error
}

// searchResultsMsg carries catalog search results.
type searchResultsMsg struct {
	query   string
	results []models.CatalogTrack
	err     error
}

// itemRemovedMsg reports a track removal from the selected playlist.
type itemRemovedMsg struct {
	itemID int
	err    error
}

// sharedMsg carries a freshly created share link.
type sharedMsg struct {
	grant *models.ShareGrant
	err   error
}

// gateLoadedMsg reports the shared playlist's public metadata, plus
// whether a remembered passphrase already unlocked it.
type gateLoadedMsg struct {
	meta     *models.ShareMeta
	unlocked bool
	err      error
}

// gateResultMsg reports a passphrase submission.
type gateResultMsg struct {
	unlocked bool
	reason   string
	err      error
}

// progressUpdateMsg streams publish progress into the view.
type progressUpdateMsg tasks.ProgressUpdate

// publishCompleteMsg reports the end of a publish run.
type publishCompleteMsg struct {
	result *tasks.PublishResult
	err    error
}
