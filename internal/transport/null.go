package transport

import (
	"github.com/charmbracelet/log"
	"github.com/desertthunder/jukebox/internal/models"
)

// NullHandle logs transport calls without producing sound.
type NullHandle struct {
	Song   models.Song
	Logger *log.Logger
}

func (h NullHandle) Play() error {
	h.Logger.Info("play", "title", h.Song.Title, "audio", h.Song.Audio)
	return nil
}

func (h NullHandle) Pause() error {
	h.Logger.Info("pause", "title", h.Song.Title)
	return nil
}

func (h NullHandle) SeekStart() error {
	h.Logger.Debug("seek to start", "title", h.Song.Title)
	return nil
}
