package transport

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/DexterLB/mpvipc"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/shared"
)

const connectTimeout = 5 * time.Second

// ipc is the part of [mpvipc.Connection] the session uses.
type ipc interface {
	Call(arguments ...interface{}) (interface{}, error)
	Set(property string, value interface{}) error
	Close() error
}

// MpvSession is a single idle mpv process shared by all handles of a page.
type MpvSession struct {
	logger *log.Logger
	cmd    *exec.Cmd
	socket string

	mu     sync.Mutex
	conn   ipc
	owner  *MpvHandle
	closed bool
}

// StartMpv launches mpv paused and idle and connects to its IPC socket.
func StartMpv(ctx context.Context, cfg shared.PlayerConfig, logger *log.Logger) (*MpvSession, error) {
	binary := cfg.Binary
	if binary == "" {
		binary = "mpv"
	}

	socket := cfg.Socket
	if socket == "" {
		socket = filepath.Join(os.TempDir(), "jukebox", fmt.Sprintf("mpv-%d.sock", os.Getpid()))
	}
	if err := os.MkdirAll(filepath.Dir(socket), 0o755); err != nil {
		return nil, fmt.Errorf("%w: failed to create socket directory: %w", shared.ErrPlayerUnavailable, err)
	}
	if err := os.RemoveAll(socket); err != nil {
		return nil, fmt.Errorf("%w: failed to clean up socket: %w", shared.ErrPlayerUnavailable, err)
	}

	cmd := exec.Command(binary,
		"--idle",
		"--quiet",
		"--pause",
		"--no-video",
		"--no-input-terminal",
		"--keep-open=yes",
		"--input-ipc-server="+socket,
	)
	cmd.Env = os.Environ()

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: failed to start %s: %w", shared.ErrPlayerUnavailable, binary, err)
	}

	conn := mpvipc.NewConnection(socket)
	if err := openWithRetry(ctx, conn); err != nil {
		cmd.Process.Kill()
		cmd.Wait()
		return nil, fmt.Errorf("%w: failed to connect to mpv: %w", shared.ErrPlayerUnavailable, err)
	}

	s := newSession(conn, logger)
	s.cmd = cmd
	s.socket = socket
	s.logger.Info("mpv started", "pid", cmd.Process.Pid, "socket", socket)
	return s, nil
}

// openWithRetry spins until mpv has created its socket.
func openWithRetry(ctx context.Context, conn *mpvipc.Connection) error {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	for {
		err := conn.Open()
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return err
		default:
			runtime.Gosched()
		}
	}
}

func newSession(conn ipc, logger *log.Logger) *MpvSession {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &MpvSession{conn: conn, logger: shared.WithLogger(logger, "component", "mpv")}
}

// Handle returns a transport handle for song.
func (s *MpvSession) Handle(song models.Song) *MpvHandle {
	return &MpvHandle{session: s, song: song}
}

// Close quits mpv and removes its socket.
func (s *MpvSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.owner = nil

	if _, err := s.conn.Call("quit"); err != nil {
		s.logger.Debug("quit failed", "err", err)
	}
	err := s.conn.Close()

	if s.cmd != nil {
		done := make(chan struct{})
		go func() {
			s.cmd.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			s.cmd.Process.Kill()
			<-done
		}
	}
	if s.socket != "" {
		os.Remove(s.socket)
	}
	return err
}

// MpvHandle controls one song on a shared [MpvSession].
type MpvHandle struct {
	session *MpvSession
	song    models.Song
}

// Play loads the song unless this handle already owns the session, then unpauses.
func (h *MpvHandle) Play() error {
	s := h.session
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return shared.ErrPlayerUnavailable
	}

	if s.owner != h {
		if _, err := s.conn.Call("loadfile", h.song.Audio, "replace"); err != nil {
			return fmt.Errorf("failed to load %q: %w", h.song.Audio, err)
		}
		s.owner = h
		s.logger.Debug("loaded", "title", h.song.Title, "audio", h.song.Audio)
	}

	return s.conn.Set("pause", false)
}

// Pause pauses playback if this handle owns the session.
func (h *MpvHandle) Pause() error {
	return h.ifOwner(func(conn ipc) error { return conn.Set("pause", true) })
}

// SeekStart rewinds to the beginning if this handle owns the session.
func (h *MpvHandle) SeekStart() error {
	return h.ifOwner(func(conn ipc) error { return conn.Set("time-pos", 0) })
}

// Close releases the session, stopping playback if this handle owns it.
func (h *MpvHandle) Close() error {
	s := h.session
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.owner != h {
		return nil
	}
	s.owner = nil
	_, err := s.conn.Call("stop")
	return err
}

// Owner reports whether this handle's song is the one loaded in mpv.
func (h *MpvHandle) Owner() bool {
	h.session.mu.Lock()
	defer h.session.mu.Unlock()
	return h.session.owner == h
}

func (h *MpvHandle) ifOwner(fn func(ipc) error) error {
	s := h.session
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.owner != h {
		return nil
	}
	return fn(s.conn)
}
