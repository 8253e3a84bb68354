package models

import "fmt"

// Song is a single catalog entry. Values are never mutated after the catalog resolves;
// a refetch produces an entirely new slice.
type Song struct {
	Title  string `json:"title"`
	Audio  string `json:"audio"`  // Audio locator (relative path or URL)
	Banner string `json:"banner"` // Banner image locator
}

// Status enumerates the observable states of the catalog resource.
type Status int

const (
	Pending Status = iota
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText renders the status by name for JSON payloads.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ErrorKind classifies catalog fetch failures.
type ErrorKind int

const (
	NoError    ErrorKind = iota
	NotFound             // Catalog source missing
	Unreadable           // I/O-level failure
	Malformed            // Source present but not shaped like a catalog
)

func (k ErrorKind) String() string {
	switch k {
	case NoError:
		return ""
	case NotFound:
		return "NotFound"
	case Unreadable:
		return "Unreadable"
	case Malformed:
		return "Malformed"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// MarshalText renders the kind by name for JSON payloads.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// CatalogState is the tagged union Pending | Ready(songs) | Failed(kind).
//
// Songs is only populated when Status is Ready; Kind and Err only when Status is Failed.
type CatalogState struct {
	Status Status
	Songs  []Song
	Kind   ErrorKind
	Err    error
}

// PendingState returns the state observed while a fetch is in flight.
func PendingState() CatalogState {
	return CatalogState{Status: Pending}
}

// ReadyState returns a resolved state holding its own copy of songs.
func ReadyState(songs []Song) CatalogState {
	copied := make([]Song, len(songs))
	copy(copied, songs)
	return CatalogState{Status: Ready, Songs: copied}
}

// FailedState returns a failed state. No partial data is retained.
func FailedState(kind ErrorKind, err error) CatalogState {
	return CatalogState{Status: Failed, Kind: kind, Err: err}
}

func (s CatalogState) String() string {
	switch s.Status {
	case Ready:
		return fmt.Sprintf("Ready(%d songs)", len(s.Songs))
	case Failed:
		return fmt.Sprintf("Failed(%s)", s.Kind)
	default:
		return "Pending"
	}
}

// Selection is an optional, non-negative catalog index.
//
// The zero value selects nothing.
type Selection struct {
	index int
	valid bool
}

// None returns the empty selection.
func None() Selection { return Selection{} }

// Some returns a selection of the song at index i.
func Some(i int) Selection { return Selection{index: i, valid: true} }

// Index returns the selected index and whether anything is selected.
func (s Selection) Index() (int, bool) { return s.index, s.valid }

// Is reports whether the song at index i is the selected one.
func (s Selection) Is(i int) bool { return s.valid && s.index == i }

// IsNone reports whether nothing is selected.
func (s Selection) IsNone() bool { return !s.valid }

func (s Selection) String() string {
	if !s.valid {
		return "None"
	}
	return fmt.Sprintf("Some(%d)", s.index)
}

// Location identifies where a catalog lives. It is passed explicitly to every fetch
// rather than read from ambient configuration.
type Location struct {
	Root string `json:"root"` // Site root used to resolve relative locators
	Path string `json:"path"` // Catalog file, directory, playlist or database path
}
