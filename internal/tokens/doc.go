// Package tokens tracks the three independent credential kinds the client
// holds: the first-party session token issued by the VibeLab backend, the
// Spotify token obtained by user authorization, and the anonymous Spotify
// search token from the client-credentials grant.
//
// Credentials live behind the [Store] interface so tests run against an
// in-memory map while the CLI uses the SQLite key-value repository. A
// credential whose expiry falls inside the safety window is treated as
// absent; nothing here touches the network.
package tokens
