package testing

import (
	"fmt"
	"sync"
)

// TransportLog is an ordered, shared record of transport calls across many handles.
type TransportLog struct {
	mu      sync.Mutex
	events  []string
	playing map[string]bool
	maxLive int
}

func NewTransportLog() *TransportLog {
	return &TransportLog{playing: make(map[string]bool)}
}

// Handle returns a recording handle named name that writes to this log.
func (l *TransportLog) Handle(name string) *Recorder {
	return &Recorder{name: name, log: l}
}

func (l *TransportLog) record(name, op string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, fmt.Sprintf("%s:%s", name, op))
}

func (l *TransportLog) setPlaying(name string, playing bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if playing {
		l.playing[name] = true
	} else {
		delete(l.playing, name)
	}
	if n := len(l.playing); n > l.maxLive {
		l.maxLive = n
	}
}

// Events returns calls in the order they happened, formatted "name:op".
func (l *TransportLog) Events() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

// Playing returns how many handles are currently playing.
func (l *TransportLog) Playing() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.playing)
}

// MaxPlaying returns the largest number of handles ever playing at once.
func (l *TransportLog) MaxPlaying() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.maxLive
}

// Reset forgets recorded events but keeps playing state.
func (l *TransportLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = nil
}

// Recorder is a transport handle test double.
//
// Set PlayErr, PauseErr or SeekErr to make the corresponding call fail after it is recorded.
type Recorder struct {
	name     string
	log      *TransportLog
	PlayErr  error
	PauseErr error
	SeekErr  error
	closed   bool
}

func (r *Recorder) Play() error {
	r.log.record(r.name, "play")
	if r.PlayErr != nil {
		return r.PlayErr
	}
	r.log.setPlaying(r.name, true)
	return nil
}

func (r *Recorder) Pause() error {
	r.log.record(r.name, "pause")
	if r.PauseErr != nil {
		return r.PauseErr
	}
	r.log.setPlaying(r.name, false)
	return nil
}

func (r *Recorder) SeekStart() error {
	r.log.record(r.name, "seek")
	return r.SeekErr
}

func (r *Recorder) Close() error {
	r.log.record(r.name, "close")
	r.log.setPlaying(r.name, false)
	r.closed = true
	return nil
}

// Closed reports whether Close was called.
func (r *Recorder) Closed() bool { return r.closed }
