package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	shared.ConfigureDatabase(db, 1, 1)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func song(title string) models.Song {
	return models.Song{Title: title, Audio: title + ".ogg", Banner: title + ".png"}
}

func titles(songs []*models.PersistedSong) []string {
	out := make([]string, len(songs))
	for i, s := range songs {
		out[i] = s.Title()
	}
	return out
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)

	for want := 1; want <= 3; want++ {
		got, err := NextSequence(db, "songs")
		if err != nil {
			t.Fatalf("NextSequence() error = %v", err)
		}
		if got != want {
			t.Errorf("NextSequence() = %d, want %d", got, want)
		}
	}

	if _, err := NextSequence(db, "nope"); err == nil {
		t.Error("expected error for a table without a sequence")
	}
}

func TestSongRepository(t *testing.T) {
	t.Run("Create & Get", func(t *testing.T) {
		repo := NewSongRepository(setupTestDB(t))
		s := models.NewPersistedSong(0, song("Opening"))

		if err := repo.Create(s); err != nil {
			t.Fatalf("failed to create song: %v", err)
		}
		if s.ID() == "" || s.Position() != 1 {
			t.Errorf("expected ID and position 1, got %q / %d", s.ID(), s.Position())
		}

		got, err := repo.Get(s.ID())
		if err != nil {
			t.Fatalf("failed to get song: %v", err)
		}
		if got.Song() != s.Song() {
			t.Errorf("expected %+v, got %+v", s.Song(), got.Song())
		}
		if got.DeletedAt() != nil {
			t.Error("new song should not be deleted")
		}
	})

	t.Run("Create rejects invalid songs", func(t *testing.T) {
		repo := NewSongRepository(setupTestDB(t))
		s := models.NewPersistedSong(0, models.Song{Title: "No Audio", Banner: "x.png"})

		if err := repo.Create(s); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("List is ordered by position", func(t *testing.T) {
		repo := NewSongRepository(setupTestDB(t))
		for _, title := range []string{"C", "A", "B"} {
			if err := repo.Create(models.NewPersistedSong(0, song(title))); err != nil {
				t.Fatal(err)
			}
		}

		songs, err := repo.List()
		if err != nil {
			t.Fatalf("failed to list songs: %v", err)
		}
		got := titles(songs)
		if len(got) != 3 || got[0] != "C" || got[1] != "A" || got[2] != "B" {
			t.Errorf("expected insertion order [C A B], got %v", got)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		repo := NewSongRepository(setupTestDB(t))
		s := models.NewPersistedSong(0, song("Gone"))
		if err := repo.Create(s); err != nil {
			t.Fatal(err)
		}

		if err := repo.Delete(s.ID()); err != nil {
			t.Fatalf("failed to delete song: %v", err)
		}
		if _, err := repo.Get(s.ID()); !errors.Is(err, shared.ErrSongNotFound) {
			t.Errorf("expected ErrSongNotFound after delete, got %v", err)
		}
		if err := repo.Delete(s.ID()); !errors.Is(err, shared.ErrSongNotFound) {
			t.Errorf("expected second delete to fail, got %v", err)
		}

		songs, _ := repo.List()
		if len(songs) != 0 {
			t.Errorf("deleted songs should not be listed, got %v", titles(songs))
		}
	})

	t.Run("Get NotFound", func(t *testing.T) {
		repo := NewSongRepository(setupTestDB(t))
		if _, err := repo.Get("nonexistent-id"); !errors.Is(err, shared.ErrSongNotFound) {
			t.Errorf("expected ErrSongNotFound, got %v", err)
		}
	})
}

func TestSongRepositoryReplaceAll(t *testing.T) {
	tt := []struct {
		name    string
		first   []models.Song
		second  []models.Song
		want    []string
		wantErr bool
	}{
		{
			name:   "replaces the catalog",
			first:  []models.Song{song("A"), song("B")},
			second: []models.Song{song("C")},
			want:   []string{"C"},
		},
		{
			name:   "empty import clears",
			first:  []models.Song{song("A")},
			second: nil,
			want:   []string{},
		},
		{
			name:    "invalid import keeps the old catalog",
			first:   []models.Song{song("A"), song("B")},
			second:  []models.Song{song("C"), {Title: "broken"}},
			want:    []string{"A", "B"},
			wantErr: true,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			repo := NewSongRepository(setupTestDB(t))

			if _, err := repo.ReplaceAll(tc.first); err != nil {
				t.Fatalf("first import failed: %v", err)
			}

			_, err := repo.ReplaceAll(tc.second)
			if tc.wantErr != (err != nil) {
				t.Fatalf("ReplaceAll() error = %v, wantErr %t", err, tc.wantErr)
			}

			songs, err := repo.List()
			if err != nil {
				t.Fatal(err)
			}
			got := titles(songs)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("expected %v, got %v", tc.want, got)
				}
			}
		})
	}

	t.Run("positions continue after previous imports", func(t *testing.T) {
		repo := NewSongRepository(setupTestDB(t))
		repo.ReplaceAll([]models.Song{song("A"), song("B")})

		imported, err := repo.ReplaceAll([]models.Song{song("C"), song("D")})
		if err != nil {
			t.Fatal(err)
		}
		if imported[0].Position() != 3 || imported[1].Position() != 4 {
			t.Errorf("expected positions 3 and 4, got %d and %d", imported[0].Position(), imported[1].Position())
		}
	})
}
