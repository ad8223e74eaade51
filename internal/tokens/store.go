package tokens

import (
	"fmt"
	"time"
)

// Kind identifies one of the independent credential slots.
type Kind string

const (
	// SessionToken is the first-party session JWT from the VibeLab backend.
	SessionToken Kind = "session"
	// SpotifyUserToken is the user-delegated Spotify token (PKCE flow).
	SpotifyUserToken Kind = "spotify_user"
	// SpotifySearchToken is the anonymous client-credentials search token.
	SpotifySearchToken Kind = "spotify_search"
)

// Kinds lists every credential slot.
func Kinds() []Kind {
	return []Kind{SessionToken, SpotifyUserToken, SpotifySearchToken}
}

// kvPrefix namespaces credential rows in the key-value store.
const kvPrefix = "credential/"

// ExpirySkew is the safety window: a credential this close to expiry is
// already treated as absent so an in-flight request cannot outlive it.
const ExpirySkew = 30 * time.Second

// Credential is a stored token value with its computed expiry.
// A zero Expiry means the credential does not expire.
type Credential struct {
	Kind   Kind
	Value  string
	Expiry time.Time
}

// Store is the minimal key-value contract the token store needs.
// Implemented by repositories.KVRepository and by [Memory] for tests.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	SetUntil(key, value string, expiry time.Time) error
	Expiry(key string) (time.Time, bool, error)
	Delete(key string) error
}

// TokenStore reads and writes credentials by kind on top of a [Store].
type TokenStore struct {
	store Store
	now   func() time.Time
}

// NewTokenStore creates a TokenStore backed by the given key-value store.
func NewTokenStore(store Store) *TokenStore {
	return &TokenStore{store: store, now: time.Now}
}

func key(kind Kind) string {
	return kvPrefix + string(kind)
}

// Valid returns the credential for a kind only if it is present and not
// within the expiry window. Expired credentials read as absent.
func (t *TokenStore) Valid(kind Kind) (Credential, bool) {
	value, ok, err := t.store.Get(key(kind))
	if err != nil || !ok {
		return Credential{}, false
	}

	expiry, hasExpiry, err := t.store.Expiry(key(kind))
	if err != nil {
		return Credential{}, false
	}

	cred := Credential{Kind: kind, Value: value}
	if hasExpiry {
		if !t.now().Add(ExpirySkew).Before(expiry) {
			return Credential{}, false
		}
		cred.Expiry = expiry
	}

	return cred, true
}

// Put stores a credential expiring after the given duration.
// A non-positive duration stores a credential without expiry.
func (t *TokenStore) Put(kind Kind, value string, expiresIn time.Duration) error {
	if value == "" {
		return fmt.Errorf("refusing to store empty %s credential", kind)
	}
	if expiresIn <= 0 {
		return t.store.Set(key(kind), value)
	}
	return t.store.SetUntil(key(kind), value, t.now().Add(expiresIn))
}

// PutUntil stores a credential with an absolute expiry timestamp.
func (t *TokenStore) PutUntil(kind Kind, value string, expiry time.Time) error {
	if value == "" {
		return fmt.Errorf("refusing to store empty %s credential", kind)
	}
	if expiry.IsZero() {
		return t.store.Set(key(kind), value)
	}
	return t.store.SetUntil(key(kind), value, expiry)
}

// Clear removes one credential kind, leaving the others untouched.
func (t *TokenStore) Clear(kind Kind) error {
	return t.store.Delete(key(kind))
}

// ClearAll removes every credential kind.
func (t *TokenStore) ClearAll() error {
	for _, kind := range Kinds() {
		if err := t.store.Delete(key(kind)); err != nil {
			return fmt.Errorf("failed to clear %s credential: %w", kind, err)
		}
	}
	return nil
}
