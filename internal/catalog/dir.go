package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/shared"
	"github.com/dhowden/tag"
)

var (
	audioExts  = []string{".ogg", ".mp3", ".flac", ".m4a", ".wav"}
	bannerExts = []string{".png", ".jpg", ".jpeg", ".webp"}
	// Directory-wide fallbacks, checked in order when a song has no banner of its own.
	coverNames = []string{"banner.png", "banner.jpg", "cover.png", "cover.jpg"}
)

// DirSource lists the audio files of a directory in name order.
//
// Titles come from embedded tags when present, otherwise from the file name. A song's
// banner is the image sharing its base name, falling back to the directory cover. A
// relative directory is resolved against the location root.
type DirSource struct{}

func (DirSource) Fetch(ctx context.Context, loc models.Location) ([]models.Song, error) {
	dir := shared.ResolveLocator(loc.Root, loc.Path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, readError(err)
	}

	cover := findCover(dir)

	var songs []models.Song
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || !hasExt(e.Name(), audioExts) {
			continue
		}

		path := filepath.Join(dir, e.Name())
		banner := findBanner(path)
		if banner == "" {
			banner = cover
		}

		songs = append(songs, models.Song{
			Title:  readTitle(path),
			Audio:  path,
			Banner: banner,
		})
	}

	return songs, nil
}

// readTitle returns the tagged title of the audio file, or its base name.
func readTitle(path string) string {
	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		if m, err := tag.ReadFrom(f); err == nil {
			if title := strings.TrimSpace(m.Title()); title != "" {
				return title
			}
		}
	}
	return trimExt(filepath.Base(path))
}

// findBanner looks for an image next to audioPath with the same base name.
func findBanner(audioPath string) string {
	stem := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))
	for _, ext := range bannerExts {
		if fileExists(stem + ext) {
			return stem + ext
		}
	}
	return ""
}

func findCover(dir string) string {
	for _, name := range coverNames {
		if p := filepath.Join(dir, name); fileExists(p) {
			return p
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func hasExt(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
