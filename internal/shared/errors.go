package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Catalog errors, classified into models.ErrorKind by the catalog package
	ErrCatalogNotFound   = fmt.Errorf("catalog not found")
	ErrCatalogUnreadable = fmt.Errorf("catalog unreadable")
	ErrCatalogMalformed  = fmt.Errorf("catalog malformed")

	// Playback errors
	ErrPlayerUnavailable = fmt.Errorf("player unavailable")
	ErrSongNotFound      = fmt.Errorf("song not found")

	// Input validation errors
	ErrInvalidInput = fmt.Errorf("invalid input")
	ErrInvalidFlag  = fmt.Errorf("invalid flag value")
)
