// Package catalog loads the song list asynchronously and publishes its state to observers.
//
// # Resource
//
// [Resource] owns the single [models.CatalogState] for a session. It moves between
// Pending, Ready(songs) and Failed(kind) and notifies subscribers synchronously, in
// registration order, on every transition.
//
// [Resource.Refetch] resets observers to Pending before fetching again; there is no
// stale-while-revalidate. Each invocation gets a generation number and only the newest
// generation may publish a result. A superseded fetch is not aborted, its result is
// simply dropped when it settles.
//
// # Sources
//
// A [Fetcher] is the collaborator that actually reads the catalog. The location is passed
// to every call explicitly. Implementations:
//
//   - [FileSource] : JSON or TOML file shaped { songs: [{title, ogg, banner}, ...] }
//   - [DirSource] : directory listing of audio files with tag-derived titles
//   - [M3USource] : .m3u playlist
//   - [DBSource] : SQLite catalog maintained by `jukebox catalog import`
//   - [HTTPSource] : JSON catalog served by a remote backend
//
// Fetch errors are wrapped with the shared catalog sentinels and mapped to a
// [models.ErrorKind] by [Classify].
package catalog
