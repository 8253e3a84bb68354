// Package models defines the value types shared by the catalog, playback and rendering layers.
//
// The package contains three groups of types:
//
// 1. Catalog values
//   - [Song] : Immutable song record (title, audio locator, banner locator)
//   - [CatalogState] : Tagged union over Pending, Ready(songs) and Failed(kind)
//   - [ErrorKind] : Failure taxonomy surfaced by the catalog (NotFound, Unreadable, Malformed)
//
// 2. Selection
//   - [Selection] : "no song active" or "song at index N is active"
//
// 3. Persistence
//   - [PersistedSong] : SQLite-backed catalog entry used by the database catalog source
//
// A song's identity for playback purposes is its index in the resolved catalog, never its content:
// catalogs may contain duplicate titles.
package models
