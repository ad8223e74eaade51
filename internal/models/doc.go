// Package models defines domain entities for the VibeLab terminal client.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): structs mirroring the backend and catalog APIs
//   - [Playlist] : a VibeLab playlist with its ordered track items
//   - [TrackItem] : a single song entry inside a playlist
//   - [ShareMeta] : public metadata for a share link before unlock
//   - [ShareGrant] : an issued share token for a playlist
//   - [CatalogTrack] : a Spotify search result used to populate track pickers
//   - [User] : the authenticated account
//
// 2. Persistence interfaces: the [Model] contract implemented by locally stored
// entities and the generic [Repository] interface for data access.
package models
