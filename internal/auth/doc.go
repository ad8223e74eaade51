// Package auth implements the credential lifecycle for the VibeLab client.
//
// # Authorization Flow
//
// [Flow] drives the Spotify authorization-code handshake with PKCE:
// [Flow.Begin] persists a fresh code verifier and builds the authorize URL;
// [Flow.Complete] consumes the callback URL, exchanges the code plus verifier
// at the token endpoint, and stores the resulting credential. The verifier is
// deleted after the exchange whether it succeeds or fails - it proves
// possession exactly once.
//
// Failure modes are sentinel errors from the shared package:
// [shared.ErrMissingCode] when the callback URL carries no code (the token
// endpoint is never contacted), [shared.ErrMissingVerifier] when the
// handshake was started elsewhere, and [shared.ErrExchangeFailed] wrapping
// the authorization server's own error text.
//
// [Flow.SearchToken] fetches and caches the anonymous client-credentials
// token used for catalog search without a linked Spotify account.
//
// # Session Context
//
// [Session] is the single source of truth for "is the user logged in".
// Views subscribe to it instead of reading storage directly, so login and
// logout propagate consistently; subscribers are notified synchronously
// before the triggering call returns.
package auth
