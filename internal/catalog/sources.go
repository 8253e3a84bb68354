package catalog

import (
	"fmt"
	"net/http"

	"github.com/desertthunder/jukebox/internal/shared"
)

// SourceOpts carries the dependencies some sources need.
type SourceOpts struct {
	Songs  SongLister   // Required by the db source
	Client *http.Client // Used by the http source
}

// NewSource returns the [Fetcher] registered under the config name kind.
func NewSource(kind string, opts SourceOpts) (Fetcher, error) {
	switch kind {
	case "file":
		return FileSource{}, nil
	case "dir":
		return DirSource{}, nil
	case "m3u":
		return M3USource{}, nil
	case "db":
		if opts.Songs == nil {
			return nil, fmt.Errorf("%w: db source requires a song repository", shared.ErrInvalidConfig)
		}
		return DBSource{Songs: opts.Songs}, nil
	case "http":
		return HTTPSource{Client: opts.Client}, nil
	default:
		return nil, fmt.Errorf("%w: unknown catalog source %q", shared.ErrInvalidConfig, kind)
	}
}
