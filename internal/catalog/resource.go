package catalog

import (
	"context"
	"errors"
	"io/fs"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/shared"
)

// Fetcher reads a catalog from loc. Implementations may block; they are always called off
// the caller's goroutine.
type Fetcher interface {
	Fetch(ctx context.Context, loc models.Location) ([]models.Song, error)
}

// FetcherFunc adapts a function to [Fetcher].
type FetcherFunc func(ctx context.Context, loc models.Location) ([]models.Song, error)

func (f FetcherFunc) Fetch(ctx context.Context, loc models.Location) ([]models.Song, error) {
	return f(ctx, loc)
}

type listener struct {
	id int
	fn func(models.CatalogState)
}

// Resource is the asynchronous, re-triggerable catalog fetch.
type Resource struct {
	fetcher Fetcher
	loc     models.Location
	logger  *log.Logger

	ctx    context.Context
	cancel context.CancelFunc

	// dispatch serializes transitions together with their notifications, so a fast
	// fetch can never publish before the Pending that preceded it.
	dispatch sync.Mutex

	mu        sync.Mutex
	state     models.CatalogState
	gen       uint64
	settled   chan struct{}
	listeners []listener
	nextID    int

	// settledHook, when set, runs after every fetch settles whether or not it published.
	settledHook func(gen uint64, published bool)
}

// NewResource creates a catalog resource in the Pending state. Nothing is fetched until
// [Resource.Load] or [Resource.Refetch] is called.
func NewResource(fetcher Fetcher, loc models.Location, logger *log.Logger) *Resource {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Resource{
		fetcher: fetcher,
		loc:     loc,
		logger:  shared.WithLogger(logger, "component", "catalog"),
		ctx:     ctx,
		cancel:  cancel,
		state:   models.PendingState(),
		settled: make(chan struct{}),
	}
}

// Location returns where the catalog is read from.
func (r *Resource) Location() models.Location { return r.loc }

// State returns the current catalog state.
func (r *Resource) State() models.CatalogState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Subscribe registers fn to receive every state transition and returns a function that
// removes it. Listeners run synchronously and must not call [Resource.Refetch].
func (r *Resource) Subscribe(fn func(models.CatalogState)) (unsubscribe func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := r.nextID
	r.listeners = append(r.listeners, listener{id: id, fn: fn})

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, l := range r.listeners {
			if l.id == id {
				r.listeners = append(r.listeners[:i:i], r.listeners[i+1:]...)
				return
			}
		}
	}
}

// Load starts the first fetch. Later calls are no-ops; use [Resource.Refetch] to reload.
func (r *Resource) Load() {
	r.mu.Lock()
	started := r.gen > 0
	r.mu.Unlock()

	if !started {
		r.Refetch()
	}
}

// Refetch discards the current data or error, moves observers back to Pending and starts
// a new fetch that supersedes any still in flight.
func (r *Resource) Refetch() {
	r.dispatch.Lock()
	defer r.dispatch.Unlock()

	r.mu.Lock()
	r.gen++
	gen := r.gen
	close(r.settled)
	r.settled = make(chan struct{})
	r.state = models.PendingState()
	listeners := r.snapshot()
	r.mu.Unlock()

	r.logger.Debug("catalog fetch started", "generation", gen, "path", r.loc.Path)
	notify(listeners, models.PendingState())

	go r.run(gen)
}

func (r *Resource) run(gen uint64) {
	songs, err := r.fetcher.Fetch(r.ctx, r.loc)

	var next models.CatalogState
	if err != nil {
		next = models.FailedState(Classify(err), err)
	} else {
		next = models.ReadyState(songs)
	}

	r.publish(gen, next)
}

// publish installs next if gen is still the newest generation.
func (r *Resource) publish(gen uint64, next models.CatalogState) {
	r.dispatch.Lock()
	defer r.dispatch.Unlock()

	published := false
	if r.settledHook != nil {
		defer func() { r.settledHook(gen, published) }()
	}

	r.mu.Lock()
	if gen != r.gen {
		current := r.gen
		r.mu.Unlock()
		r.logger.Debug("discarding superseded catalog result", "generation", gen, "current", current)
		return
	}
	if r.ctx.Err() != nil {
		r.mu.Unlock()
		return
	}
	published = true
	r.state = next
	close(r.settled)
	r.settled = make(chan struct{})
	listeners := r.snapshot()
	r.mu.Unlock()

	switch next.Status {
	case models.Ready:
		r.logger.Info("catalog ready", "generation", gen, "songs", len(next.Songs))
	case models.Failed:
		r.logger.Warn("catalog failed", "generation", gen, "kind", next.Kind, "err", next.Err)
	}

	notify(listeners, next)
}

// Wait blocks until the newest fetch settles or ctx is done and returns the state at that
// point. Listeners have already been notified of the returned state, so Wait must not be
// called from a listener.
func (r *Resource) Wait(ctx context.Context) (models.CatalogState, error) {
	for {
		r.mu.Lock()
		state, settled, started := r.state, r.settled, r.gen > 0
		r.mu.Unlock()

		if started && state.Status != models.Pending {
			r.dispatch.Lock()
			state = r.State()
			r.dispatch.Unlock()
			if state.Status != models.Pending {
				return state, nil
			}
			continue
		}

		select {
		case <-settled:
		case <-ctx.Done():
			return r.State(), ctx.Err()
		}
	}
}

// Close cancels the context handed to in-flight fetches. No further results are published.
func (r *Resource) Close() {
	r.cancel()
}

func (r *Resource) snapshot() []listener {
	return append([]listener(nil), r.listeners...)
}

func notify(listeners []listener, state models.CatalogState) {
	for _, l := range listeners {
		l.fn(state)
	}
}

// Classify maps a fetch error onto the catalog failure taxonomy.
func Classify(err error) models.ErrorKind {
	switch {
	case err == nil:
		return models.NoError
	case errors.Is(err, shared.ErrCatalogNotFound), errors.Is(err, fs.ErrNotExist):
		return models.NotFound
	case errors.Is(err, shared.ErrCatalogMalformed):
		return models.Malformed
	default:
		return models.Unreadable
	}
}
