package models

import (
	"fmt"
	"strings"
	"time"
)

// Model defines the base interface for all persistent models.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
type Repository[T Model] interface {
	Create(model T) error     // Create inserts a new model into the database
	Get(id string) (T, error) // Get retrieves a model by its ID
	Delete(id string) error   // Delete soft-deletes a model by its ID
	List() ([]T, error)       // List retrieves all live models in catalog order
}

// PersistedSong is a catalog entry stored in SQLite.
//
// Position determines catalog order and is assigned from the songs sequence on insert.
type PersistedSong struct {
	id        string
	position  int
	song      Song
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

var _ Model = (*PersistedSong)(nil)

// NewPersistedSong wraps a [Song] for insertion.
func NewPersistedSong(position int, song Song) *PersistedSong {
	now := time.Now()
	return &PersistedSong{position: position, song: song, createdAt: now, updatedAt: now}
}

// RestorePersistedSong rebuilds a row scanned from the database.
func RestorePersistedSong(id string, position int, song Song, createdAt, updatedAt time.Time, deletedAt *time.Time) *PersistedSong {
	return &PersistedSong{
		id:        id,
		position:  position,
		song:      song,
		createdAt: createdAt,
		updatedAt: updatedAt,
		deletedAt: deletedAt,
	}
}

func (p *PersistedSong) ID() string            { return p.id }
func (p *PersistedSong) Position() int         { return p.position }
func (p *PersistedSong) Song() Song            { return p.song }
func (p *PersistedSong) Title() string         { return p.song.Title }
func (p *PersistedSong) Audio() string         { return p.song.Audio }
func (p *PersistedSong) Banner() string        { return p.song.Banner }
func (p *PersistedSong) CreatedAt() time.Time  { return p.createdAt }
func (p *PersistedSong) UpdatedAt() time.Time  { return p.updatedAt }
func (p *PersistedSong) DeletedAt() *time.Time { return p.deletedAt }

func (p *PersistedSong) SetID(id string)          { p.id = id }
func (p *PersistedSong) SetPosition(position int) { p.position = position }

// Validate requires every locator field to be present.
func (p *PersistedSong) Validate() error {
	var missing []string
	if strings.TrimSpace(p.song.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(p.song.Audio) == "" {
		missing = append(missing, "audio")
	}
	if strings.TrimSpace(p.song.Banner) == "" {
		missing = append(missing, "banner")
	}
	if len(missing) > 0 {
		return fmt.Errorf("song missing %s", strings.Join(missing, ", "))
	}
	return nil
}
