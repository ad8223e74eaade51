package tokens

import (
	"testing"
	"time"
)

func newTestStore(now time.Time) *TokenStore {
	ts := NewTokenStore(NewMemory())
	ts.now = func() time.Time { return now }
	return ts
}

func TestTokenStore(t *testing.T) {
	// keep stored expiries in the real future so the backing store's own
	// lazy expiry never interferes with the injected clock
	base := time.Now().Add(24 * time.Hour).Truncate(time.Second)

	t.Run("Put and Valid", func(t *testing.T) {
		t.Run("stores and reads a credential", func(t *testing.T) {
			ts := newTestStore(base)

			if err := ts.Put(SessionToken, "abc", time.Hour); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			cred, ok := ts.Valid(SessionToken)
			if !ok {
				t.Fatal("expected credential to be valid")
			}
			if cred.Value != "abc" {
				t.Errorf("expected value 'abc', got %s", cred.Value)
			}
			if cred.Kind != SessionToken {
				t.Errorf("expected kind %s, got %s", SessionToken, cred.Kind)
			}
		})

		t.Run("refuses an empty value", func(t *testing.T) {
			ts := newTestStore(base)

			if err := ts.Put(SessionToken, "", time.Hour); err == nil {
				t.Error("expected error for empty credential")
			}
		})

		t.Run("non-positive duration stores without expiry", func(t *testing.T) {
			ts := newTestStore(base)

			if err := ts.Put(SessionToken, "abc", 0); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			cred, ok := ts.Valid(SessionToken)
			if !ok {
				t.Fatal("expected credential to be valid")
			}
			if !cred.Expiry.IsZero() {
				t.Errorf("expected zero expiry, got %v", cred.Expiry)
			}
		})

		t.Run("missing kind reads as absent", func(t *testing.T) {
			ts := newTestStore(base)

			if _, ok := ts.Valid(SpotifyUserToken); ok {
				t.Error("expected missing credential to be absent")
			}
		})
	})

	t.Run("Expiry window", func(t *testing.T) {
		t.Run("past expiry reads as absent", func(t *testing.T) {
			ts := newTestStore(base)
			ts.Put(SessionToken, "abc", time.Hour)

			ts.now = func() time.Time { return base.Add(2 * time.Hour) }

			if _, ok := ts.Valid(SessionToken); ok {
				t.Error("expected expired credential to be absent")
			}
		})

		t.Run("within the skew window reads as absent", func(t *testing.T) {
			ts := newTestStore(base)
			ts.Put(SessionToken, "abc", time.Hour)

			// 10s of real validity left, below the 30s window
			ts.now = func() time.Time { return base.Add(time.Hour - 10*time.Second) }

			if _, ok := ts.Valid(SessionToken); ok {
				t.Error("expected credential inside the skew window to be absent")
			}
		})

		t.Run("outside the skew window stays valid", func(t *testing.T) {
			ts := newTestStore(base)
			ts.Put(SessionToken, "abc", time.Hour)

			ts.now = func() time.Time { return base.Add(time.Hour - 2*time.Minute) }

			if _, ok := ts.Valid(SessionToken); !ok {
				t.Error("expected credential to still be valid")
			}
		})
	})

	t.Run("Independence of kinds", func(t *testing.T) {
		t.Run("Clear removes only one kind", func(t *testing.T) {
			ts := newTestStore(base)
			ts.Put(SessionToken, "session", time.Hour)
			ts.Put(SpotifyUserToken, "delegated", time.Hour)
			ts.Put(SpotifySearchToken, "anon", time.Hour)

			if err := ts.Clear(SessionToken); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if _, ok := ts.Valid(SessionToken); ok {
				t.Error("expected session credential to be gone")
			}
			if _, ok := ts.Valid(SpotifyUserToken); !ok {
				t.Error("expected delegated credential to survive")
			}
			if _, ok := ts.Valid(SpotifySearchToken); !ok {
				t.Error("expected search credential to survive")
			}
		})

		t.Run("ClearAll removes every kind", func(t *testing.T) {
			ts := newTestStore(base)
			ts.Put(SessionToken, "session", time.Hour)
			ts.Put(SpotifySearchToken, "anon", time.Hour)

			if err := ts.ClearAll(); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			for _, kind := range Kinds() {
				if _, ok := ts.Valid(kind); ok {
					t.Errorf("expected %s to be gone", kind)
				}
			}
		})

		t.Run("one expiring does not touch the others", func(t *testing.T) {
			ts := newTestStore(base)
			ts.Put(SessionToken, "session", time.Minute)
			ts.Put(SpotifyUserToken, "delegated", time.Hour)

			ts.now = func() time.Time { return base.Add(10 * time.Minute) }

			if _, ok := ts.Valid(SessionToken); ok {
				t.Error("expected session credential to expire")
			}
			if _, ok := ts.Valid(SpotifyUserToken); !ok {
				t.Error("expected delegated credential to survive")
			}
		})
	})

	t.Run("PutUntil", func(t *testing.T) {
		ts := newTestStore(base)

		if err := ts.PutUntil(SessionToken, "abc", base.Add(time.Hour)); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		cred, ok := ts.Valid(SessionToken)
		if !ok {
			t.Fatal("expected credential to be valid")
		}
		if !cred.Expiry.Equal(base.Add(time.Hour)) {
			t.Errorf("expected expiry %v, got %v", base.Add(time.Hour), cred.Expiry)
		}
	})
}
