package playback

import (
	"github.com/charmbracelet/log"
	"github.com/desertthunder/jukebox/internal/shared"
)

// Effect returns the watcher that drives the handle mounted at index: play when the
// item becomes active, pause and rewind when it stops. The handle is looked up on every
// transition, so an unmounted item is silently skipped. Transport errors are logged and
// never surface to the caller.
func Effect(index int, registry *Registry, logger *log.Logger) func(active bool) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return func(active bool) {
		h, ok := registry.Get(index)
		if !ok {
			return
		}

		if active {
			if err := h.Play(); err != nil {
				logger.Warn("play failed", "index", index, "err", err)
			}
			return
		}

		if err := h.Pause(); err != nil {
			logger.Warn("pause failed", "index", index, "err", err)
		}
		if err := h.SeekStart(); err != nil {
			logger.Warn("seek to start failed", "index", index, "err", err)
		}
	}
}
