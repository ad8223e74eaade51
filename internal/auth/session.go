package auth

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/SheCodesAus/vibelab/internal/models"
	"github.com/SheCodesAus/vibelab/internal/shared"
	"github.com/SheCodesAus/vibelab/internal/tokens"
)

// userKey is where the logged-in user's profile is persisted alongside
// the session credential.
const userKey = "session/user"

// Session is the shared view of the first-party login state. Everything
// that needs to know whether a user is logged in asks the Session rather
// than the token store, and can subscribe to be told when that changes.
type Session struct {
	tokens      *tokens.TokenStore
	store       tokens.Store
	user        *models.User
	subscribers map[int]func(loggedIn bool)
	nextID      int
}

// NewSession loads any persisted login state from the store.
func NewSession(store tokens.Store, ts *tokens.TokenStore) *Session {
	s := &Session{
		tokens:      ts,
		store:       store,
		subscribers: make(map[int]func(bool)),
	}

	if raw, ok, err := store.Get(userKey); err == nil && ok {
		var u models.User

		if json.Unmarshal([]byte(raw), &u) == nil {
			s.user = &u
		}
	}

	return s
}

// LoggedIn reports whether a valid first-party session credential exists.
func (s *Session) LoggedIn() bool {
	_, ok := s.tokens.Valid(tokens.SessionToken)
	return ok
}

// Token returns the current session credential.
func (s *Session) Token() (tokens.Credential, bool) {
	return s.tokens.Valid(tokens.SessionToken)
}

// User returns the profile captured at login. It may be present even
// when the credential has expired; LoggedIn is the authority.
func (s *Session) User() (models.User, bool) {
	if s.user == nil {
		return models.User{}, false
	}

	return *s.user, true
}

// Login stores the session credential and profile, then notifies
// subscribers before returning. A zero expiry stores the token without
// one.
func (s *Session) Login(token string, expiry time.Time, user models.User) error {
	var err error

	if expiry.IsZero() {
		err = s.tokens.Put(tokens.SessionToken, token, 0)
	} else {
		err = s.tokens.PutUntil(tokens.SessionToken, token, expiry)
	}

	if err != nil {
		return err
	}

	raw, err := json.Marshal(user)

	if err != nil {
		return fmt.Errorf("encoding user profile: %w", err)
	}

	if err := s.store.Set(userKey, string(raw)); err != nil {
		return fmt.Errorf("persisting user profile: %w", err)
	}

	s.user = &user
	s.notify()

	return nil
}

// Logout drops the session credential and profile. Spotify credentials
// are untouched; linking is independent of the first-party login.
func (s *Session) Logout() error {
	if err := s.tokens.Clear(tokens.SessionToken); err != nil {
		return err
	}

	if err := s.store.Delete(userKey); err != nil {
		return err
	}

	s.user = nil
	s.notify()

	return nil
}

// LogoutAll drops every stored credential along with the profile.
func (s *Session) LogoutAll() error {
	if err := s.tokens.ClearAll(); err != nil {
		return err
	}

	if err := s.store.Delete(userKey); err != nil {
		return err
	}

	s.user = nil
	s.notify()

	return nil
}

// Require returns the session credential or ErrNotAuthenticated.
func (s *Session) Require() (tokens.Credential, error) {
	cred, ok := s.tokens.Valid(tokens.SessionToken)

	if !ok {
		return tokens.Credential{}, shared.ErrNotAuthenticated
	}

	return cred, nil
}

// Subscribe registers fn to run synchronously whenever login state
// changes. The returned function cancels the subscription.
func (s *Session) Subscribe(fn func(loggedIn bool)) func() {
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn

	return func() { delete(s.subscribers, id) }
}

func (s *Session) notify() {
	loggedIn := s.LoggedIn()

	for _, fn := range s.subscribers {
		fn(loggedIn)
	}
}
