// Package repositories implements SQLite persistence for the song catalog.
//
// [SongRepository] implements models.Repository[*models.PersistedSong]. Deletes are soft,
// via deleted_at, and deleted rows are excluded from every query.
//
// Catalog order comes from per-table sequence counters. [NextSequence] atomically
// increments the counter stored in the table's dedicated <table>_sequence table.
package repositories
