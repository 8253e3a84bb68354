package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/shared"
	"github.com/ushis/m3u"
)

// M3USource reads an .m3u playlist. Relative track paths resolve against the location
// root, or the playlist's own directory when no root is set.
type M3USource struct{}

func (M3USource) Fetch(ctx context.Context, loc models.Location) ([]models.Song, error) {
	f, err := os.Open(loc.Path)
	if err != nil {
		return nil, readError(err)
	}
	defer f.Close()

	playlist, err := m3u.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrCatalogMalformed, err)
	}

	root := loc.Root
	if root == "" {
		root = filepath.Dir(loc.Path)
	}

	songs := make([]models.Song, 0, len(playlist))
	for i, track := range playlist {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if strings.TrimSpace(track.Path) == "" {
			return nil, fmt.Errorf("%w: track %d has no path", shared.ErrCatalogMalformed, i)
		}

		audio := shared.ResolveLocator(root, track.Path)
		title := strings.TrimSpace(track.Title)
		if title == "" {
			title = trimExt(filepath.Base(track.Path))
		}

		banner := findBanner(audio)
		if banner == "" {
			banner = findCover(filepath.Dir(audio))
		}

		songs = append(songs, models.Song{Title: title, Audio: audio, Banner: banner})
	}

	return songs, nil
}
