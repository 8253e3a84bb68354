package catalog

import (
	"context"
	"fmt"

	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/shared"
)

// SongLister is the read side of the song repository.
type SongLister interface {
	List() ([]*models.PersistedSong, error)
}

// DBSource reads the catalog from the SQLite songs table in position order.
// The location path is ignored; the root still resolves relative locators.
type DBSource struct {
	Songs SongLister
}

func (s DBSource) Fetch(ctx context.Context, loc models.Location) ([]models.Song, error) {
	if s.Songs == nil {
		return nil, fmt.Errorf("%w: database not configured", shared.ErrCatalogNotFound)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := s.Songs.List()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrCatalogUnreadable, err)
	}

	songs := make([]models.Song, len(rows))
	for i, row := range rows {
		if err := row.Validate(); err != nil {
			return nil, fmt.Errorf("%w: song %s: %w", shared.ErrCatalogMalformed, row.ID(), err)
		}
		songs[i] = models.Song{
			Title:  row.Title(),
			Audio:  shared.ResolveLocator(loc.Root, row.Audio()),
			Banner: shared.ResolveLocator(loc.Root, row.Banner()),
		}
	}
	return songs, nil
}
