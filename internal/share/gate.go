// Package share gates access to shared playlists behind their passphrase.
//
// A [Gate] is created per shared playlist. Recipients without an account
// see the playlist's public metadata immediately; the items stay behind
// the gate until the server accepts a passphrase. Accepted passphrases
// can be remembered locally so a return visit auto-unlocks.
package share

import (
	"context"
	"errors"
	"fmt"

	"github.com/SheCodesAus/vibelab/internal/models"
	"github.com/SheCodesAus/vibelab/internal/shared"
)

// State is the gate's position in the unlock handshake.
type State int

const (
	// Locked means the playlist's items are withheld.
	Locked State = iota
	// Validating means a passphrase is in flight to the server.
	Validating
	// Unlocked means the server accepted a passphrase (or none was
	// required) and the items are available.
	Unlocked
)

func (s State) String() string {
	switch s {
	case Locked:
		return "locked"
	case Validating:
		return "validating"
	case Unlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

// Service is the backend surface the gate needs. Implemented by
// services.VibeLabService.
type Service interface {
	SharedMeta(ctx context.Context, playlistID string) (*models.ShareMeta, error)
	ValidateShare(ctx context.Context, playlistID, passphrase string) (*models.Playlist, error)
}

// AccessStore persists remembered passphrases keyed by playlist id.
// Implemented by repositories.ShareAccessRepository.
type AccessStore interface {
	Create(access *models.ShareAccess) error
	Get(playlistID string) (*models.ShareAccess, error)
	Delete(playlistID string) error
}

// Gate mediates access to one shared playlist. The zero value is not
// usable; construct with [NewGate] and call [Gate.Load] first.
//
// The gate only ever trusts the server: a locally remembered passphrase
// is re-submitted, never assumed valid. It is re-enterable; a rejected
// passphrase returns the gate to Locked and another Submit may follow.
type Gate struct {
	playlistID string
	service    Service
	access     AccessStore

	state    State
	meta     *models.ShareMeta
	playlist *models.Playlist
	reason   string
}

// NewGate creates a locked gate for a playlist. access may be nil when
// remembering passphrases is disabled.
func NewGate(playlistID string, service Service, access AccessStore) *Gate {
	return &Gate{
		playlistID: playlistID,
		service:    service,
		access:     access,
		state:      Locked,
	}
}

// State reports the gate's current position.
func (g *Gate) State() State {
	return g.state
}

// Reason returns the server's rejection text from the most recent failed
// Submit, verbatim. Empty when nothing has been rejected.
func (g *Gate) Reason() string {
	return g.reason
}

// Load fetches the playlist's public metadata. An unprotected playlist
// unlocks immediately; a protected one stays Locked with the metadata
// available for display.
func (g *Gate) Load(ctx context.Context) (*models.ShareMeta, error) {
	meta, err := g.service.SharedMeta(ctx, g.playlistID)
	if err != nil {
		return nil, err
	}

	g.meta = meta

	if !meta.RequiresPassword {
		playlist, err := g.service.ValidateShare(ctx, g.playlistID, "")
		if err != nil {
			return nil, err
		}
		g.playlist = playlist
		g.state = Unlocked
	}

	return meta, nil
}

// Meta returns the public metadata. Available in every state once Load
// has succeeded.
func (g *Gate) Meta() (*models.ShareMeta, bool) {
	if g.meta == nil {
		return nil, false
	}
	return g.meta, true
}

// Playlist returns the unlocked playlist with its items. Before the gate
// is Unlocked it returns shared.ErrShareLocked and never any items.
func (g *Gate) Playlist() (*models.Playlist, error) {
	if g.state != Unlocked || g.playlist == nil {
		return nil, shared.ErrShareLocked
	}
	return g.playlist, nil
}

// Submit sends a passphrase to the server. While the request is in
// flight the gate reads as Validating. Acceptance unlocks the gate and,
// when remember is set, stores the passphrase for return visits. A
// rejection returns the gate to Locked with the server's reason and the
// error wraps shared.ErrShareRejected.
func (g *Gate) Submit(ctx context.Context, passphrase string, remember bool) error {
	if g.state == Unlocked {
		return nil
	}

	g.state = Validating
	g.reason = ""

	playlist, err := g.service.ValidateShare(ctx, g.playlistID, passphrase)
	if err != nil {
		g.state = Locked

		if errors.Is(err, shared.ErrShareRejected) {
			g.reason = rejectionText(err)
		}

		return err
	}

	g.playlist = playlist
	g.state = Unlocked

	if remember && g.access != nil {
		if err := g.access.Create(models.NewShareAccess(g.playlistID, passphrase)); err != nil {
			return fmt.Errorf("unlocked, but failed to remember passphrase: %w", err)
		}
	}

	return nil
}

// TryRemembered replays a locally remembered passphrase, if one exists.
// It reports whether the gate ended up Unlocked. A remembered passphrase
// the server now rejects is forgotten and the gate stays Locked without
// an error; the user simply gets the prompt.
func (g *Gate) TryRemembered(ctx context.Context) (bool, error) {
	if g.state == Unlocked {
		return true, nil
	}

	if g.access == nil {
		return false, nil
	}

	remembered, err := g.access.Get(g.playlistID)
	if err != nil {
		return false, nil
	}

	err = g.Submit(ctx, remembered.Passphrase(), false)
	if err != nil {
		if errors.Is(err, shared.ErrShareRejected) {
			_ = g.access.Delete(g.playlistID)
			g.reason = ""
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// Forget drops the remembered passphrase for this playlist. The gate's
// state is unchanged; an unlocked session stays unlocked.
func (g *Gate) Forget() error {
	if g.access == nil {
		return nil
	}
	return g.access.Delete(g.playlistID)
}

// rejectionText strips the sentinel prefix so only the server's own
// message remains for display.
func rejectionText(err error) string {
	msg := err.Error()
	prefix := shared.ErrShareRejected.Error() + ": "

	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
