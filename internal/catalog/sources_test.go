package catalog

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/shared"
	tu "github.com/desertthunder/jukebox/internal/testing"
	"github.com/go-test/deep"
	"github.com/ushis/m3u"
)

const tomlCatalog = `
[[songs]]
title = "Opening"
ogg = "audio/opening.ogg"
banner = "img/opening.png"

[[songs]]
title = "Ending"
ogg = "https://cdn.example.com/ending.ogg"
banner = "/srv/img/ending.png"
`

const jsonCatalog = `{"songs": [
	{"title": "Opening", "ogg": "audio/opening.ogg", "banner": "img/opening.png"},
	{"title": "Ending", "ogg": "https://cdn.example.com/ending.ogg", "banner": "/srv/img/ending.png"}
]}`

func TestFileSource(t *testing.T) {
	want := []models.Song{
		{Title: "Opening", Audio: filepath.Join("/site", "audio/opening.ogg"), Banner: filepath.Join("/site", "img/opening.png")},
		{Title: "Ending", Audio: "https://cdn.example.com/ending.ogg", Banner: "/srv/img/ending.png"},
	}

	tt := []struct {
		name     string
		file     string
		content  string
		want     []models.Song
		wantKind models.ErrorKind
	}{
		{name: "toml", file: "songs.toml", content: tomlCatalog, want: want},
		{name: "json", file: "songs.json", content: jsonCatalog, want: want},
		{name: "empty list", file: "songs.json", content: `{"songs": []}`, want: []models.Song{}},
		{name: "missing songs key", file: "songs.json", content: `{"tracks": []}`, wantKind: models.Malformed},
		{name: "invalid syntax", file: "songs.toml", content: `[[songs]`, wantKind: models.Malformed},
		{
			name:     "one bad entry fails everything",
			file:     "songs.json",
			content:  `{"songs": [{"title": "A", "ogg": "a.ogg", "banner": "a.png"}, {"title": "B", "ogg": "b.ogg"}]}`,
			wantKind: models.Malformed,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.file)
			tu.MustWriteFile(t, path, tc.content)

			songs, err := FileSource{}.Fetch(context.Background(), models.Location{Root: "/site", Path: path})

			if tc.wantKind != models.NoError {
				if err == nil {
					t.Fatalf("expected error, got %d songs", len(songs))
				}
				if got := Classify(err); got != tc.wantKind {
					t.Errorf("expected %s, got %s (%v)", tc.wantKind, got, err)
				}
				if songs != nil {
					t.Error("expected no partial data on failure")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := deep.Equal(songs, tc.want); diff != nil {
				t.Error(diff)
			}
		})
	}

	t.Run("missing file is NotFound", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nope.toml")
		_, err := FileSource{}.Fetch(context.Background(), models.Location{Path: path})
		if !errors.Is(err, shared.ErrCatalogNotFound) {
			t.Errorf("expected ErrCatalogNotFound, got %v", err)
		}
	})

	t.Run("directory is Unreadable", func(t *testing.T) {
		_, err := FileSource{}.Fetch(context.Background(), models.Location{Path: t.TempDir()})
		if got := Classify(err); got != models.Unreadable {
			t.Errorf("expected Unreadable, got %s (%v)", got, err)
		}
	})
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b-side.ogg", "a-side.mp3", "a-side.png", "cover.jpg", "notes.txt"} {
		tu.MustWriteFile(t, filepath.Join(dir, name), "not really media")
	}
	if err := os.Mkdir(filepath.Join(dir, "extras.ogg"), 0755); err != nil {
		t.Fatal(err)
	}

	songs, err := DirSource{}.Fetch(context.Background(), models.Location{Path: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []models.Song{
		{Title: "a-side", Audio: filepath.Join(dir, "a-side.mp3"), Banner: filepath.Join(dir, "a-side.png")},
		{Title: "b-side", Audio: filepath.Join(dir, "b-side.ogg"), Banner: filepath.Join(dir, "cover.jpg")},
	}
	if diff := deep.Equal(songs, want); diff != nil {
		t.Error(diff)
	}

	t.Run("relative directory resolves against root", func(t *testing.T) {
		got, err := DirSource{}.Fetch(context.Background(), models.Location{Root: filepath.Dir(dir), Path: filepath.Base(dir)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := deep.Equal(got, want); diff != nil {
			t.Error(diff)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := DirSource{}.Fetch(context.Background(), models.Location{Path: filepath.Join(dir, "gone")})
		if got := Classify(err); got != models.NotFound {
			t.Errorf("expected NotFound, got %s", got)
		}
	})
}

func TestM3USource(t *testing.T) {
	dir := t.TempDir()
	tu.MustWriteFile(t, filepath.Join(dir, "intro.ogg"), "")
	tu.MustWriteFile(t, filepath.Join(dir, "intro.jpg"), "")

	path := filepath.Join(dir, "set.m3u")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	playlist := m3u.Playlist{
		{Path: "intro.ogg", Title: "Intro", Time: 90},
		{Path: "/music/outro.ogg", Time: 120},
	}
	if _, err := playlist.WriteTo(f); err != nil {
		t.Fatal(err)
	}
	f.Close()

	songs, err := M3USource{}.Fetch(context.Background(), models.Location{Path: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []models.Song{
		{Title: "Intro", Audio: filepath.Join(dir, "intro.ogg"), Banner: filepath.Join(dir, "intro.jpg")},
		{Title: "outro", Audio: "/music/outro.ogg", Banner: ""},
	}
	if diff := deep.Equal(songs, want); diff != nil {
		t.Error(diff)
	}
}

type fakeLister struct {
	rows []*models.PersistedSong
	err  error
}

func (f fakeLister) List() ([]*models.PersistedSong, error) { return f.rows, f.err }

func TestDBSource(t *testing.T) {
	tt := []struct {
		name     string
		lister   SongLister
		want     []models.Song
		wantKind models.ErrorKind
	}{
		{
			name: "rows in order",
			lister: fakeLister{rows: []*models.PersistedSong{
				models.NewPersistedSong(1, models.Song{Title: "One", Audio: "one.ogg", Banner: "one.png"}),
				models.NewPersistedSong(2, models.Song{Title: "Two", Audio: "/abs/two.ogg", Banner: "two.png"}),
			}},
			want: []models.Song{
				{Title: "One", Audio: filepath.Join("/media", "one.ogg"), Banner: filepath.Join("/media", "one.png")},
				{Title: "Two", Audio: "/abs/two.ogg", Banner: filepath.Join("/media", "two.png")},
			},
		},
		{name: "no repository", lister: nil, wantKind: models.NotFound},
		{name: "query error", lister: fakeLister{err: errors.New("database is locked")}, wantKind: models.Unreadable},
		{
			name:     "invalid row",
			lister:   fakeLister{rows: []*models.PersistedSong{models.NewPersistedSong(1, models.Song{Title: "x"})}},
			wantKind: models.Malformed,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			songs, err := DBSource{Songs: tc.lister}.Fetch(context.Background(), models.Location{Root: "/media"})
			if tc.wantKind != models.NoError {
				if got := Classify(err); got != tc.wantKind {
					t.Errorf("expected %s, got %s (%v)", tc.wantKind, got, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := deep.Equal(songs, tc.want); diff != nil {
				t.Error(diff)
			}
		})
	}
}

func TestHTTPSource(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/catalog/songs.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"songs": [{"title": "Remote", "ogg": "audio/remote.ogg", "banner": "https://img.example.com/r.png"}]}`)
	})
	mux.HandleFunc("/catalog/broken.json", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"songs": [`)
	})
	mux.HandleFunc("/catalog/down.json", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	t.Run("resolves locators against the catalog URL", func(t *testing.T) {
		songs, err := HTTPSource{Client: srv.Client()}.Fetch(context.Background(), models.Location{Path: srv.URL + "/catalog/songs.json"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []models.Song{{Title: "Remote", Audio: srv.URL + "/catalog/audio/remote.ogg", Banner: "https://img.example.com/r.png"}}
		if diff := deep.Equal(songs, want); diff != nil {
			t.Error(diff)
		}
	})

	tt := []struct {
		path string
		want models.ErrorKind
	}{
		{path: "/catalog/missing.json", want: models.NotFound},
		{path: "/catalog/broken.json", want: models.Malformed},
		{path: "/catalog/down.json", want: models.Unreadable},
	}
	for _, tc := range tt {
		t.Run(strings.TrimPrefix(tc.path, "/catalog/"), func(t *testing.T) {
			_, err := HTTPSource{Client: srv.Client()}.Fetch(context.Background(), models.Location{Path: srv.URL + tc.path})
			if got := Classify(err); got != tc.want {
				t.Errorf("expected %s, got %s (%v)", tc.want, got, err)
			}
		})
	}

	t.Run("transport failure", func(t *testing.T) {
		client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))}
		_, err := HTTPSource{Client: client}.Fetch(context.Background(), models.Location{Path: "http://catalog.invalid/songs.json"})
		if !errors.Is(err, shared.ErrCatalogUnreadable) {
			t.Errorf("expected ErrCatalogUnreadable, got %v", err)
		}
	})

	t.Run("body read failure", func(t *testing.T) {
		resp := &http.Response{StatusCode: http.StatusOK, Body: &tu.FCloser{}, Header: http.Header{}}
		client := &http.Client{Transport: tu.NewMockRoundTripper(resp, nil)}
		_, err := HTTPSource{Client: client}.Fetch(context.Background(), models.Location{Path: "http://catalog.invalid/songs.json"})
		if got := Classify(err); got != models.Unreadable {
			t.Errorf("expected Unreadable, got %s (%v)", got, err)
		}
	})
}

func TestNewSource(t *testing.T) {
	tt := []struct {
		kind    string
		opts    SourceOpts
		want    Fetcher
		wantErr bool
	}{
		{kind: "file", want: FileSource{}},
		{kind: "dir", want: DirSource{}},
		{kind: "m3u", want: M3USource{}},
		{kind: "http", want: HTTPSource{}},
		{kind: "db", opts: SourceOpts{Songs: fakeLister{}}, want: DBSource{Songs: fakeLister{}}},
		{kind: "db", wantErr: true},
		{kind: "ftp", wantErr: true},
	}

	for _, tc := range tt {
		t.Run(tc.kind, func(t *testing.T) {
			got, err := NewSource(tc.kind, tc.opts)
			if tc.wantErr {
				if !errors.Is(err, shared.ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := deep.Equal(got, tc.want); diff != nil {
				t.Error(diff)
			}
		})
	}
}
