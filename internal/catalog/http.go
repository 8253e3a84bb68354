package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/shared"
)

// HTTPSource fetches a JSON catalog, in the same schema as [FileSource], from the URL in
// the location path. Relative locators resolve against the location root when set,
// otherwise against the catalog URL.
type HTTPSource struct {
	Client *http.Client
}

func (s HTTPSource) Fetch(ctx context.Context, loc models.Location) ([]models.Song, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	base, err := url.Parse(loc.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid catalog URL: %w", shared.ErrCatalogNotFound, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", shared.ErrCatalogUnreadable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", shared.ErrCatalogUnreadable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s returned %d", shared.ErrCatalogNotFound, loc.Path, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: %s returned %d", shared.ErrCatalogUnreadable, loc.Path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", shared.ErrCatalogUnreadable, err)
	}

	var doc document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrCatalogMalformed, err)
	}

	songs, err := doc.songs(loc.Root)
	if err != nil || loc.Root != "" {
		return songs, err
	}

	for i := range songs {
		songs[i].Audio = resolveURL(base, songs[i].Audio)
		songs[i].Banner = resolveURL(base, songs[i].Banner)
	}
	return songs, nil
}

func resolveURL(base *url.URL, ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}
