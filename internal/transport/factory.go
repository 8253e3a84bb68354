package transport

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/playback"
	"github.com/desertthunder/jukebox/internal/shared"
)

// Factory builds the transport handle for a song as it is mounted.
type Factory func(song models.Song) playback.Handle

// NewFactory returns the factory for the configured backend and a closer that releases
// the backend when the page is done.
func NewFactory(ctx context.Context, cfg shared.PlayerConfig, logger *log.Logger) (Factory, io.Closer, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	switch cfg.Backend {
	case "null", "":
		return NullFactory(logger), nopCloser{}, nil
	case "mpv":
		session, err := StartMpv(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return func(song models.Song) playback.Handle { return session.Handle(song) }, session, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown player backend %q", shared.ErrInvalidConfig, cfg.Backend)
	}
}

// NullFactory returns a factory of [NullHandle]s logging to logger.
func NullFactory(logger *log.Logger) Factory {
	logger = shared.WithLogger(logger, "component", "transport")
	return func(song models.Song) playback.Handle {
		return NullHandle{Song: song, Logger: logger}
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
