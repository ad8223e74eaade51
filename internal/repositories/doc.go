// Package repositories implements SQLite persistence for local client state.
//
// The client keeps three small tables:
//
//   - [KVRepository] : key-value rows with optional expiry (credentials,
//     the in-flight PKCE verifier)
//   - [ShareAccessRepository] : remembered share passphrases keyed by
//     playlist id
//   - [PlaylistCacheRepository] : JSON snapshots of backend playlists for
//     offline display
//
// Repositories return shared sentinel errors wrapped with context; callers
// distinguish "missing" from "failed" via [sql.ErrNoRows] wrapping.
package repositories
