package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/shared"
)

// entry is one song in the catalog file schema { songs: [{title, ogg, banner}, ...] }.
type entry struct {
	Title  string `json:"title" toml:"title"`
	Ogg    string `json:"ogg" toml:"ogg"`
	Banner string `json:"banner" toml:"banner"`
}

type document struct {
	Songs *[]entry `json:"songs" toml:"songs"`
}

// FileSource reads a catalog file. Files ending in .json are decoded as JSON,
// anything else as TOML.
type FileSource struct{}

func (FileSource) Fetch(ctx context.Context, loc models.Location) ([]models.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(loc.Path)
	if err != nil {
		return nil, readError(err)
	}

	var doc document
	if strings.EqualFold(filepath.Ext(loc.Path), ".json") {
		err = json.Unmarshal(data, &doc)
	} else {
		err = toml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrCatalogMalformed, err)
	}

	return doc.songs(loc.Root)
}

// songs validates every entry and resolves its locators against root. One bad entry
// fails the whole catalog.
func (d document) songs(root string) ([]models.Song, error) {
	if d.Songs == nil {
		return nil, fmt.Errorf("%w: missing songs list", shared.ErrCatalogMalformed)
	}

	songs := make([]models.Song, 0, len(*d.Songs))
	for i, e := range *d.Songs {
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("%w: song %d: %w", shared.ErrCatalogMalformed, i, err)
		}
		songs = append(songs, models.Song{
			Title:  e.Title,
			Audio:  shared.ResolveLocator(root, e.Ogg),
			Banner: shared.ResolveLocator(root, e.Banner),
		})
	}
	return songs, nil
}

func (e entry) validate() error {
	var missing []string
	if strings.TrimSpace(e.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(e.Ogg) == "" {
		missing = append(missing, "ogg")
	}
	if strings.TrimSpace(e.Banner) == "" {
		missing = append(missing, "banner")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// readError wraps a filesystem error with the matching catalog sentinel.
func readError(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", shared.ErrCatalogNotFound, err)
	}
	return fmt.Errorf("%w: %w", shared.ErrCatalogUnreadable, err)
}
