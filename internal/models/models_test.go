package models

import (
	"errors"
	"testing"
)

func TestSelection(t *testing.T) {
	t.Run("zero value is None", func(t *testing.T) {
		var s Selection
		if !s.IsNone() {
			t.Error("expected zero Selection to be None")
		}
		if s.Is(0) {
			t.Error("None should not match index 0")
		}
		if got := s.String(); got != "None" {
			t.Errorf("expected None, got %s", got)
		}
	})

	t.Run("Some matches only its index", func(t *testing.T) {
		s := Some(2)
		i, ok := s.Index()
		if !ok || i != 2 {
			t.Fatalf("expected (2, true), got (%d, %v)", i, ok)
		}
		if !s.Is(2) || s.Is(1) {
			t.Error("Some(2) should match 2 and only 2")
		}
		if s != Some(2) {
			t.Error("selections of the same index should be equal")
		}
	})
}

func TestCatalogState(t *testing.T) {
	t.Run("ReadyState copies songs", func(t *testing.T) {
		songs := []Song{{Title: "A", Audio: "a.ogg", Banner: "a.png"}}
		state := ReadyState(songs)
		songs[0].Title = "mutated"

		if state.Songs[0].Title != "A" {
			t.Errorf("expected ReadyState to own its songs, got %q", state.Songs[0].Title)
		}
		if state.Status != Ready {
			t.Errorf("expected Ready, got %s", state.Status)
		}
	})

	t.Run("FailedState retains no songs", func(t *testing.T) {
		state := FailedState(Malformed, errors.New("bad"))
		if state.Songs != nil {
			t.Error("failed state should carry no songs")
		}
		if got := state.String(); got != "Failed(Malformed)" {
			t.Errorf("expected Failed(Malformed), got %s", got)
		}
	})

	t.Run("kinds render by name", func(t *testing.T) {
		tt := []struct {
			kind ErrorKind
			want string
		}{
			{NotFound, "NotFound"},
			{Unreadable, "Unreadable"},
			{Malformed, "Malformed"},
			{NoError, ""},
		}
		for _, tc := range tt {
			text, _ := tc.kind.MarshalText()
			if string(text) != tc.want {
				t.Errorf("MarshalText(%d) = %q, want %q", tc.kind, text, tc.want)
			}
		}
	})
}

func TestPersistedSong(t *testing.T) {
	t.Run("Validate", func(t *testing.T) {
		ok := NewPersistedSong(1, Song{Title: "A", Audio: "a.ogg", Banner: "a.png"})
		if err := ok.Validate(); err != nil {
			t.Errorf("expected valid song, got %v", err)
		}

		bad := NewPersistedSong(1, Song{Title: " "})
		if err := bad.Validate(); err == nil {
			t.Error("expected validation error for empty fields")
		}
	})
}
