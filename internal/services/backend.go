// VibeLab backend API client.
//
// The backend is a conventional JSON-over-HTTP API: bearer-token
// authenticated under /api/, with playlist share endpoints that are
// deliberately public so recipients without an account can use them.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/SheCodesAus/vibelab/internal/models"
	"github.com/SheCodesAus/vibelab/internal/shared"
)

// VibeLabService talks to the VibeLab backend.
type VibeLabService struct {
	baseURL string
	client  *http.Client
	bearer  func() string
}

// NewVibeLabService creates a backend client. bearer supplies the current
// session token for authenticated endpoints and may return "" when the
// user is logged out.
func NewVibeLabService(baseURL string, bearer func() string) *VibeLabService {
	return &VibeLabService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  http.DefaultClient,
		bearer:  bearer,
	}
}

// WithClient swaps the underlying HTTP client. Used by tests.
func (v *VibeLabService) WithClient(client *http.Client) *VibeLabService {
	v.client = client
	return v
}

func (v *VibeLabService) url(path string) string {
	return v.baseURL + path
}

// loginResponse is the token endpoint's payload. Older deployments used
// "access", current ones "token"; both are accepted.
type loginResponse struct {
	Token  string `json:"token"`
	Access string `json:"access"`
}

func (r loginResponse) token() string {
	if r.Token != "" {
		return r.Token
	}
	return r.Access
}

// Login exchanges credentials for a session token. Invalid credentials
// surface as shared.ErrInvalidCredentials with the server's reason.
func (v *VibeLabService) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}

	var resp loginResponse

	err := doJSON(ctx, v.client, http.MethodPost, v.url("/api/auth/token/"), "", body, &resp)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && (se.Code == http.StatusBadRequest || se.Code == http.StatusUnauthorized) {
			return "", fmt.Errorf("%w: %s", shared.ErrInvalidCredentials, se.Text)
		}
		return "", err
	}

	if resp.token() == "" {
		return "", fmt.Errorf("%w: token endpoint returned no token", shared.ErrAuthFailed)
	}

	return resp.token(), nil
}

// SignupRequest is the account creation payload.
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"first_name"`
	LastName string `json:"last_name"`
}

// Register creates a new account. The caller validates the two password
// fields match before this is reached; the server never sees a mismatch.
func (v *VibeLabService) Register(ctx context.Context, req SignupRequest) (models.User, error) {
	var user models.User

	err := doJSON(ctx, v.client, http.MethodPost, v.url("/api/auth/signup/"), "", req, &user)
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Me fetches the logged-in user's profile.
func (v *VibeLabService) Me(ctx context.Context) (models.User, error) {
	var user models.User

	err := doJSON(ctx, v.client, http.MethodGet, v.url("/api/users/me/"), v.bearer(), nil, &user)
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Playlists lists the playlists owned by the logged-in user.
func (v *VibeLabService) Playlists(ctx context.Context) ([]models.Playlist, error) {
	var playlists []models.Playlist

	err := doJSON(ctx, v.client, http.MethodGet, v.url("/api/playlists/"), v.bearer(), nil, &playlists)
	if err != nil {
		return nil, err
	}

	return playlists, nil
}

// Playlist fetches one playlist with its items.
func (v *VibeLabService) Playlist(ctx context.Context, id string) (*models.Playlist, error) {
	var playlist models.Playlist

	endpoint := fmt.Sprintf("/api/playlists/%s/", id)

	err := doJSON(ctx, v.client, http.MethodGet, v.url(endpoint), v.bearer(), nil, &playlist)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
		}
		return nil, err
	}

	return &playlist, nil
}

// CreatePlaylistRequest is the playlist creation payload.
type CreatePlaylistRequest struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Vibe        models.Vibe `json:"vibe"`
	Open        bool        `json:"is_open"`
}

// CreatePlaylist creates an empty playlist.
func (v *VibeLabService) CreatePlaylist(ctx context.Context, req CreatePlaylistRequest) (*models.Playlist, error) {
	var playlist models.Playlist

	err := doJSON(ctx, v.client, http.MethodPost, v.url("/api/playlists/"), v.bearer(), req, &playlist)
	if err != nil {
		return nil, err
	}

	return &playlist, nil
}

// UpdatePlaylist updates name, description, vibe or visibility.
func (v *VibeLabService) UpdatePlaylist(ctx context.Context, id string, req CreatePlaylistRequest) (*models.Playlist, error) {
	var playlist models.Playlist

	endpoint := fmt.Sprintf("/api/playlists/%s/", id)

	err := doJSON(ctx, v.client, http.MethodPut, v.url(endpoint), v.bearer(), req, &playlist)
	if err != nil {
		return nil, err
	}

	return &playlist, nil
}

// DeletePlaylist removes a playlist and its items.
func (v *VibeLabService) DeletePlaylist(ctx context.Context, id string) error {
	endpoint := fmt.Sprintf("/api/playlists/%s/", id)
	return doJSON(ctx, v.client, http.MethodDelete, v.url(endpoint), v.bearer(), nil, nil)
}

// addItemRequest carries the track plus, when editing a shared playlist
// as a guest, the passphrase that authorizes the write.
type addItemRequest struct {
	models.TrackItem
	Passphrase string `json:"password,omitempty"`
}

// AddItem appends a track to a playlist. passphrase is only needed when
// the caller holds share access instead of ownership; owners pass "".
func (v *VibeLabService) AddItem(ctx context.Context, playlistID string, item models.TrackItem, passphrase string) (*models.TrackItem, error) {
	var created models.TrackItem

	endpoint := fmt.Sprintf("/api/playlists/%s/items/", playlistID)
	body := addItemRequest{TrackItem: item, Passphrase: passphrase}

	err := doJSON(ctx, v.client, http.MethodPost, v.url(endpoint), v.bearer(), body, &created)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// RemoveItem deletes a track from a playlist.
func (v *VibeLabService) RemoveItem(ctx context.Context, playlistID string, itemID int) error {
	endpoint := fmt.Sprintf("/api/playlists/%s/items/%d/", playlistID, itemID)
	return doJSON(ctx, v.client, http.MethodDelete, v.url(endpoint), v.bearer(), nil, nil)
}

// SharedMeta fetches the public metadata for a shared playlist: title,
// creator, and whether a passphrase is required. No credential is sent;
// the endpoint exists for recipients without an account.
func (v *VibeLabService) SharedMeta(ctx context.Context, playlistID string) (*models.ShareMeta, error) {
	var meta models.ShareMeta

	endpoint := fmt.Sprintf("/api/playlists/%s/share-meta/", playlistID)

	err := doJSON(ctx, v.client, http.MethodGet, v.url(endpoint), "", nil, &meta)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
		}
		return nil, err
	}

	return &meta, nil
}

// ValidateShare submits a passphrase for a protected playlist. On
// success the full playlist is returned. A rejection surfaces as
// shared.ErrShareRejected wrapping the server's own error text, which
// callers display verbatim.
func (v *VibeLabService) ValidateShare(ctx context.Context, playlistID, passphrase string) (*models.Playlist, error) {
	endpoint := fmt.Sprintf("/api/playlists/%s/validate-password/", playlistID)
	body := map[string]string{"password": passphrase}

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.url(endpoint), strings.NewReader(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", shared.ErrAPIRequest, err)
	}

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: %s", shared.ErrShareRejected, decodeError(resp.Status, respBody))
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: %s", shared.ErrAPIRequest, decodeError(resp.Status, respBody))
	}

	var playlist models.Playlist

	if err := json.Unmarshal(respBody, &playlist); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &playlist, nil
}

// shareRequest sets or clears the passphrase on a new share link.
type shareRequest struct {
	Password string `json:"password,omitempty"`
}

// CreateShare generates a share link for an owned playlist, optionally
// protected by a passphrase.
func (v *VibeLabService) CreateShare(ctx context.Context, playlistID, passphrase string) (*models.ShareGrant, error) {
	var grant models.ShareGrant

	endpoint := fmt.Sprintf("/api/playlists/%s/share/", playlistID)

	err := doJSON(ctx, v.client, http.MethodPost, v.url(endpoint), v.bearer(), shareRequest{Password: passphrase}, &grant)
	if err != nil {
		return nil, err
	}

	return &grant, nil
}
