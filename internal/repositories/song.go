package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/shared"
)

const songColumns = `id, position, title, audio, banner, created_at, updated_at, deleted_at`

// SongRepository implements models.Repository[*models.PersistedSong] for the db catalog source.
type SongRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.PersistedSong] = (*SongRepository)(nil)

// NewSongRepository creates a new SongRepository with the given database connection
func NewSongRepository(db *sql.DB) *SongRepository {
	return &SongRepository{db: db}
}

// Create appends song to the end of the catalog, assigning its ID and position.
func (r *SongRepository) Create(song *models.PersistedSong) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}

	position, err := NextSequence(r.db, "songs")
	if err != nil {
		return fmt.Errorf("failed to generate position: %w", err)
	}

	song.SetID(shared.GenerateID())
	song.SetPosition(position)

	return insertSong(r.db, song)
}

// Get retrieves a song by ID, excluding soft-deleted songs
func (r *SongRepository) Get(id string) (*models.PersistedSong, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE id = ? AND deleted_at IS NULL`

	song, err := scanSong(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrSongNotFound, id)
	}
	return song, err
}

// Delete soft-deletes a song by ID
func (r *SongRepository) Delete(id string) error {
	query := `UPDATE songs SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrSongNotFound, id)
	}

	return nil
}

// List returns every live song in catalog order.
func (r *SongRepository) List() ([]*models.PersistedSong, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE deleted_at IS NULL ORDER BY position ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	var songs []*models.PersistedSong
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return songs, nil
}

// ReplaceAll soft-deletes the current catalog and inserts songs in order, in a single
// transaction. Nothing changes if any song is invalid.
func (r *SongRepository) ReplaceAll(songs []models.Song) ([]*models.PersistedSong, error) {
	persisted := make([]*models.PersistedSong, len(songs))
	for i, s := range songs {
		persisted[i] = models.NewPersistedSong(0, s)
		if err := persisted[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: song %d: %w", shared.ErrInvalidInput, i, err)
		}
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE songs SET deleted_at = ? WHERE deleted_at IS NULL`, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to clear catalog: %w", err)
	}

	if len(persisted) > 0 {
		first, err := reserveSequence(tx, "songs", len(persisted))
		if err != nil {
			return nil, err
		}
		for i, song := range persisted {
			song.SetID(shared.GenerateID())
			song.SetPosition(first + i)
			if err := insertSong(tx, song); err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit catalog import: %w", err)
	}

	return persisted, nil
}

func insertSong(q queryer, song *models.PersistedSong) error {
	query := `
		INSERT INTO songs (id, position, title, audio, banner, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := q.Exec(query,
		song.ID(),
		song.Position(),
		song.Title(),
		song.Audio(),
		song.Banner(),
		song.CreatedAt(),
		song.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert song: %w", err)
	}
	return nil
}

// scanner is satisfied by both [sql.Row] and [sql.Rows].
type scanner interface {
	Scan(dest ...any) error
}

// scanSong scans one row into a [models.PersistedSong]. sql.ErrNoRows is returned unwrapped.
func scanSong(row scanner) (*models.PersistedSong, error) {
	var (
		id        string
		position  int
		song      models.Song
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(&id, &position, &song.Title, &song.Audio, &song.Banner, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan song: %w", err)
	}

	var deleted *time.Time
	if deletedAt.Valid {
		deleted = &deletedAt.Time
	}

	return models.RestorePersistedSong(id, position, song, createdAt, updatedAt, deleted), nil
}
