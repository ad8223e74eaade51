package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SheCodesAus/vibelab/internal/shared"
	"github.com/SheCodesAus/vibelab/internal/tokens"
	"golang.org/x/oauth2"
)

// newTestFlow wires a Flow against a fake token endpoint and counts how
// often that endpoint is hit.
func newTestFlow(t *testing.T, handler http.HandlerFunc) (*Flow, *tokens.TokenStore, *atomic.Int64) {
	t.Helper()

	hits := &atomic.Int64{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	store := tokens.NewMemory()
	ts := tokens.NewTokenStore(store)

	flow := &Flow{
		oauth: &oauth2.Config{
			ClientID:    "test-client",
			RedirectURL: "http://127.0.0.1:3000/callback",
			Scopes:      []string{"user-read-private"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  srv.URL + "/authorize",
				TokenURL: srv.URL + "/api/token",
			},
		},
		secret: "test-secret",
		store:  store,
		tokens: ts,
		client: srv.Client(),
		now:    time.Now,
	}

	return flow, ts, hits
}

func tokenHandler(accessToken string, expiresIn int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":%q,"token_type":"Bearer","expires_in":%d}`, accessToken, expiresIn)
	}
}

func TestFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("Begin", func(t *testing.T) {
		flow, _, _ := newTestFlow(t, tokenHandler("tok", 3600))

		authURL, err := flow.Begin(ctx, "test-state")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		parsed, err := url.Parse(authURL)
		if err != nil {
			t.Fatalf("expected parseable URL, got %v", err)
		}

		query := parsed.Query()
		if query.Get("code_challenge_method") != "S256" {
			t.Errorf("expected S256 challenge method, got %s", query.Get("code_challenge_method"))
		}
		if query.Get("state") != "test-state" {
			t.Errorf("expected state to round-trip, got %s", query.Get("state"))
		}

		verifier, ok, err := flow.store.Get(verifierKey)
		if err != nil || !ok {
			t.Fatal("expected verifier to be persisted")
		}
		if query.Get("code_challenge") != Challenge(verifier) {
			t.Error("expected challenge to derive from the persisted verifier")
		}
	})

	t.Run("Complete", func(t *testing.T) {
		t.Run("missing code never contacts the token endpoint", func(t *testing.T) {
			flow, _, hits := newTestFlow(t, tokenHandler("tok", 3600))
			flow.store.Set(verifierKey, "some-verifier")

			_, err := flow.Complete(ctx, "http://127.0.0.1:3000/callback?state=abc")
			if !errors.Is(err, shared.ErrMissingCode) {
				t.Errorf("expected ErrMissingCode, got %v", err)
			}
			if hits.Load() != 0 {
				t.Errorf("expected 0 token endpoint hits, got %d", hits.Load())
			}
		})

		t.Run("denial reason is carried in the error", func(t *testing.T) {
			flow, _, _ := newTestFlow(t, tokenHandler("tok", 3600))

			_, err := flow.Complete(ctx, "http://127.0.0.1:3000/callback?error=access_denied")
			if !errors.Is(err, shared.ErrMissingCode) {
				t.Fatalf("expected ErrMissingCode, got %v", err)
			}
			if !strings.Contains(err.Error(), "access_denied") {
				t.Errorf("expected denial reason in error, got %v", err)
			}
		})

		t.Run("missing verifier fails before the exchange", func(t *testing.T) {
			flow, _, hits := newTestFlow(t, tokenHandler("tok", 3600))

			_, err := flow.Complete(ctx, "http://127.0.0.1:3000/callback?code=abc123")
			if !errors.Is(err, shared.ErrMissingVerifier) {
				t.Errorf("expected ErrMissingVerifier, got %v", err)
			}
			if hits.Load() != 0 {
				t.Errorf("expected 0 token endpoint hits, got %d", hits.Load())
			}
		})

		t.Run("successful exchange stores the credential", func(t *testing.T) {
			var gotForm url.Values

			flow, ts, _ := newTestFlow(t, func(w http.ResponseWriter, r *http.Request) {
				r.ParseForm()
				gotForm = r.PostForm
				tokenHandler("delegated-token", 3600)(w, r)
			})

			if _, err := flow.Begin(ctx, "st"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			verifier, _, _ := flow.store.Get(verifierKey)

			cred, err := flow.Complete(ctx, "http://127.0.0.1:3000/callback?code=abc123&state=st")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if cred.Value != "delegated-token" {
				t.Errorf("expected stored token value, got %s", cred.Value)
			}
			if gotForm.Get("code") != "abc123" {
				t.Errorf("expected code in exchange form, got %s", gotForm.Get("code"))
			}
			if gotForm.Get("code_verifier") != verifier {
				t.Error("expected the persisted verifier in the exchange form")
			}
			if gotForm.Get("grant_type") != "authorization_code" {
				t.Errorf("expected authorization_code grant, got %s", gotForm.Get("grant_type"))
			}

			if _, ok := ts.Valid(tokens.SpotifyUserToken); !ok {
				t.Error("expected delegated credential in the token store")
			}
		})

		t.Run("verifier is consumed even when the exchange fails", func(t *testing.T) {
			flow, _, _ := newTestFlow(t, func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
			})

			flow.Begin(ctx, "st")

			_, err := flow.Complete(ctx, "http://127.0.0.1:3000/callback?code=bad")
			if !errors.Is(err, shared.ErrExchangeFailed) {
				t.Fatalf("expected ErrExchangeFailed, got %v", err)
			}

			if _, ok, _ := flow.store.Get(verifierKey); ok {
				t.Error("expected verifier to be deleted after the attempt")
			}

			// a second attempt now fails on the missing verifier
			_, err = flow.Complete(ctx, "http://127.0.0.1:3000/callback?code=bad")
			if !errors.Is(err, shared.ErrMissingVerifier) {
				t.Errorf("expected ErrMissingVerifier on replay, got %v", err)
			}
		})

		t.Run("server error text is surfaced", func(t *testing.T) {
			flow, _, _ := newTestFlow(t, func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "invalid client", http.StatusUnauthorized)
			})

			flow.Begin(ctx, "st")

			_, err := flow.Complete(ctx, "http://127.0.0.1:3000/callback?code=abc")
			if err == nil || !strings.Contains(err.Error(), "invalid client") {
				t.Errorf("expected server text in error, got %v", err)
			}
		})
	})

	t.Run("SearchToken", func(t *testing.T) {
		t.Run("prefers a valid delegated token", func(t *testing.T) {
			flow, ts, hits := newTestFlow(t, tokenHandler("anon", 3600))
			ts.Put(tokens.SpotifyUserToken, "delegated", time.Hour)

			cred, err := flow.SearchToken(ctx)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if cred.Value != "delegated" {
				t.Errorf("expected delegated token, got %s", cred.Value)
			}
			if hits.Load() != 0 {
				t.Errorf("expected no token endpoint hits, got %d", hits.Load())
			}
		})

		t.Run("fetches and caches an anonymous token", func(t *testing.T) {
			flow, ts, hits := newTestFlow(t, tokenHandler("anon", 3600))

			cred, err := flow.SearchToken(ctx)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if cred.Value != "anon" {
				t.Errorf("expected anonymous token, got %s", cred.Value)
			}
			if _, ok := ts.Valid(tokens.SpotifySearchToken); !ok {
				t.Error("expected anonymous credential in the token store")
			}

			// second call hits the cache
			if _, err := flow.SearchToken(ctx); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if hits.Load() != 1 {
				t.Errorf("expected 1 token endpoint hit, got %d", hits.Load())
			}
		})

		t.Run("missing secret fails without a request", func(t *testing.T) {
			flow, _, hits := newTestFlow(t, tokenHandler("anon", 3600))
			flow.secret = ""

			if _, err := flow.SearchToken(ctx); !errors.Is(err, shared.ErrMissingConfig) {
				t.Errorf("expected ErrMissingConfig, got %v", err)
			}
			if hits.Load() != 0 {
				t.Errorf("expected no token endpoint hits, got %d", hits.Load())
			}
		})
	})

	t.Run("Unlink", func(t *testing.T) {
		flow, ts, _ := newTestFlow(t, tokenHandler("tok", 3600))
		ts.Put(tokens.SessionToken, "session", time.Hour)
		ts.Put(tokens.SpotifyUserToken, "delegated", time.Hour)

		if err := flow.Unlink(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if _, ok := ts.Valid(tokens.SpotifyUserToken); ok {
			t.Error("expected delegated credential to be gone")
		}
		if _, ok := ts.Valid(tokens.SessionToken); !ok {
			t.Error("expected session credential to survive")
		}
	})
}
