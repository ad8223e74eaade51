package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SheCodesAus/vibelab/internal/shared"
	"github.com/SheCodesAus/vibelab/internal/tokens"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/oauth2/spotify"
)

const (
	// verifierKey is where the pending code verifier lives between
	// Begin and Complete.
	verifierKey = "pkce/verifier"

	// searchTokenLifetime is assumed when the token endpoint omits
	// expires_in from a client-credentials response.
	searchTokenLifetime = time.Hour
)

// Flow drives the Spotify authorization handshake and owns the two
// Spotify-issued credential kinds in the token store.
type Flow struct {
	oauth  *oauth2.Config
	secret string
	store  tokens.Store
	tokens *tokens.TokenStore
	client *http.Client
	now    func() time.Time
}

// NewFlow wires a Flow from configuration. The store holds the pending
// verifier; ts receives exchanged credentials.
func NewFlow(cfg *shared.Config, store tokens.Store, ts *tokens.TokenStore) *Flow {
	return &Flow{
		oauth: &oauth2.Config{
			ClientID:    cfg.Spotify.ClientID,
			RedirectURL: cfg.Spotify.RedirectURI,
			Scopes:      cfg.Spotify.ScopeList(),
			Endpoint:    spotify.Endpoint,
		},
		secret: cfg.Spotify.ClientSecret,
		store:  store,
		tokens: ts,
		client: http.DefaultClient,
		now:    time.Now,
	}
}

// Begin generates a fresh code verifier, persists it for the matching
// Complete call, and returns the authorize URL the browser should open.
// The state value is echoed back by the authorization server and checked
// by the callback handler.
func (f *Flow) Begin(ctx context.Context, state string) (string, error) {
	verifier, err := GenerateVerifier()

	if err != nil {
		return "", err
	}

	if err := f.store.Set(verifierKey, verifier); err != nil {
		return "", fmt.Errorf("persisting code verifier: %w", err)
	}

	authURL := f.oauth.AuthCodeURL(state,
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
		oauth2.SetAuthURLParam("code_challenge", Challenge(verifier)),
	)

	return authURL, nil
}

// Complete consumes the callback URL the authorization server redirected
// to. It exchanges the authorization code and the persisted verifier for
// an access token and stores it under [tokens.SpotifyUserToken].
//
// The verifier is deleted once the exchange has been attempted, success
// or not. Without a code the token endpoint is never contacted.
func (f *Flow) Complete(ctx context.Context, callbackURL string) (tokens.Credential, error) {
	parsed, err := url.Parse(callbackURL)

	if err != nil {
		return tokens.Credential{}, fmt.Errorf("parsing callback URL: %w", err)
	}

	query := parsed.Query()
	code := query.Get("code")

	if code == "" {
		if reason := query.Get("error"); reason != "" {
			return tokens.Credential{}, fmt.Errorf("%w: %s", shared.ErrMissingCode, reason)
		}

		return tokens.Credential{}, shared.ErrMissingCode
	}

	verifier, ok, err := f.store.Get(verifierKey)

	if err != nil {
		return tokens.Credential{}, fmt.Errorf("reading code verifier: %w", err)
	}

	if !ok {
		return tokens.Credential{}, shared.ErrMissingVerifier
	}

	defer f.store.Delete(verifierKey)

	form := url.Values{
		"client_id":     {f.oauth.ClientID},
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {f.oauth.RedirectURL},
		"code_verifier": {verifier},
	}

	tok, err := f.exchange(ctx, form)

	if err != nil {
		return tokens.Credential{}, err
	}

	expiresIn := time.Duration(tok.ExpiresIn) * time.Second

	if err := f.tokens.Put(tokens.SpotifyUserToken, tok.AccessToken, expiresIn); err != nil {
		return tokens.Credential{}, err
	}

	cred, _ := f.tokens.Valid(tokens.SpotifyUserToken)
	return cred, nil
}

// tokenResponse is the subset of the token endpoint's payload the client
// cares about.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func (f *Flow) exchange(ctx context.Context, form url.Values) (*tokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		f.oauth.Endpoint.TokenURL, strings.NewReader(form.Encode()))

	if err != nil {
		return nil, fmt.Errorf("building token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.client.Do(req)

	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrExchangeFailed, err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", shared.ErrExchangeFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s: %s",
			shared.ErrExchangeFailed, resp.Status, strings.TrimSpace(string(body)))
	}

	var tok tokenResponse

	if err := json.Unmarshal(body, &tok); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %w", shared.ErrExchangeFailed, err)
	}

	if tok.AccessToken == "" {
		return nil, fmt.Errorf("%w: response carried no access token", shared.ErrExchangeFailed)
	}

	return &tok, nil
}

// SearchToken returns a credential usable for catalog search. A valid
// delegated token wins; otherwise the cached client-credentials token is
// reused or a new one fetched with the configured client secret.
func (f *Flow) SearchToken(ctx context.Context) (tokens.Credential, error) {
	if cred, ok := f.tokens.Valid(tokens.SpotifyUserToken); ok {
		return cred, nil
	}

	if cred, ok := f.tokens.Valid(tokens.SpotifySearchToken); ok {
		return cred, nil
	}

	if f.secret == "" {
		return tokens.Credential{}, fmt.Errorf("%w: spotify client secret", shared.ErrMissingConfig)
	}

	cc := clientcredentials.Config{
		ClientID:     f.oauth.ClientID,
		ClientSecret: f.secret,
		TokenURL:     f.oauth.Endpoint.TokenURL,
	}

	tok, err := cc.TokenSource(context.WithValue(ctx, oauth2.HTTPClient, f.client)).Token()

	if err != nil {
		return tokens.Credential{}, fmt.Errorf("%w: %w", shared.ErrExchangeFailed, err)
	}

	lifetime := searchTokenLifetime

	if !tok.Expiry.IsZero() {
		lifetime = tok.Expiry.Sub(f.now())
	}

	if err := f.tokens.Put(tokens.SpotifySearchToken, tok.AccessToken, lifetime); err != nil {
		return tokens.Credential{}, err
	}

	cred, _ := f.tokens.Valid(tokens.SpotifySearchToken)
	return cred, nil
}

// Unlink drops the delegated Spotify credential, leaving the first-party
// session and the anonymous search token untouched.
func (f *Flow) Unlink() error {
	return f.tokens.Clear(tokens.SpotifyUserToken)
}
