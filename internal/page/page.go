// Package page composes the catalog resource and the playback coordinator into the
// state a renderer draws: one item per song with its derived play/pause visuals.
package page

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jukebox/internal/catalog"
	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/playback"
	"github.com/desertthunder/jukebox/internal/shared"
	"github.com/desertthunder/jukebox/internal/transport"
)

const (
	IconPlay  = "▶"
	IconPause = "⏸"

	TreatmentNormal    = "normal"
	TreatmentHighlight = "highlight"
)

// Icon is the control glyph for an item: pause while it plays, play otherwise.
func Icon(active bool) string {
	if active {
		return IconPause
	}
	return IconPlay
}

// Treatment is the visual style of an item's row.
func Treatment(active bool) string {
	if active {
		return TreatmentHighlight
	}
	return TreatmentNormal
}

// Item is one rendered song.
type Item struct {
	Index     int    `json:"index"`
	Title     string `json:"title"`
	Banner    string `json:"banner"`
	Audio     string `json:"audio"`
	Active    bool   `json:"active"`
	Icon      string `json:"icon"`
	Treatment string `json:"treatment"`

	OnClick func() `json:"-"`
}

// View is a snapshot of the whole page.
type View struct {
	Status models.Status    `json:"status"`
	Kind   models.ErrorKind `json:"kind,omitempty"`
	Error  string           `json:"error,omitempty"`
	Items  []Item           `json:"items"`
}

// Page owns the per-session catalog, selection and transport handles.
type Page struct {
	resource *catalog.Resource
	coord    *playback.Coordinator
	registry *playback.Registry
	factory  transport.Factory
	logger   *log.Logger

	// rebuild keeps toggles out of a catalog transition.
	rebuild sync.Mutex

	mu          sync.Mutex
	state       models.CatalogState
	unwatch     []func()
	subscribers []subscriber
	nextID      int
	stops       []func()
	rebuilding  bool
	closed      bool
}

type subscriber struct {
	id int
	fn func(View)
}

// New creates a page over resource. Call [Page.Start] to subscribe and load.
func New(resource *catalog.Resource, factory transport.Factory, logger *log.Logger) *Page {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Page{
		resource: resource,
		coord:    playback.NewCoordinator(logger),
		registry: playback.NewRegistry(),
		factory:  factory,
		logger:   shared.WithLogger(logger, "component", "page"),
		state:    resource.State(),
	}
}

// Start subscribes to the catalog and selection and triggers the first load.
func (p *Page) Start() {
	stopCatalog := p.resource.Subscribe(p.onCatalog)
	stopSelection := p.coord.Subscribe(func(_, _ models.Selection) {
		p.mu.Lock()
		quiet := p.rebuilding
		p.mu.Unlock()
		if !quiet {
			p.notify()
		}
	})

	p.mu.Lock()
	p.stops = append(p.stops, stopCatalog, stopSelection)
	p.mu.Unlock()

	p.resource.Load()
}

// Close stops the current item, unmounts every handle and stops listening.
func (p *Page) Close() {
	p.rebuild.Lock()
	defer p.rebuild.Unlock()

	p.mu.Lock()
	stops := p.stops
	p.stops = nil
	p.closed = true
	p.mu.Unlock()
	for _, stop := range stops {
		stop()
	}

	p.coord.Clear()
	p.unmountAll()
	p.resource.Close()
}

// Toggle flips the selection of the item at index.
func (p *Page) Toggle(index int) {
	p.rebuild.Lock()
	defer p.rebuild.Unlock()
	p.coord.Toggle(index)
}

// Refetch reloads the catalog. The selection is cleared as the page returns to Pending.
func (p *Page) Refetch() {
	p.resource.Refetch()
}

// Wait blocks until the catalog settles.
func (p *Page) Wait(ctx context.Context) (View, error) {
	_, err := p.resource.Wait(ctx)
	return p.View(), err
}

// Selection returns the current selection.
func (p *Page) Selection() models.Selection {
	return p.coord.Selection()
}

// Subscribe registers fn to receive a fresh [View] after every change. fn runs
// synchronously and must not call [Page.Toggle] or an item's OnClick.
func (p *Page) Subscribe(fn func(View)) (cancel func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.nextID++
	id := p.nextID
	p.subscribers = append(p.subscribers, subscriber{id: id, fn: fn})

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		for i, s := range p.subscribers {
			if s.id == id {
				p.subscribers = append(p.subscribers[:i:i], p.subscribers[i+1:]...)
				return
			}
		}
	}
}

// View renders the current state.
func (p *Page) View() View {
	p.mu.Lock()
	state := p.state
	p.mu.Unlock()

	v := View{Status: state.Status, Kind: state.Kind}
	if state.Err != nil {
		v.Error = state.Err.Error()
	}
	if state.Status != models.Ready {
		return v
	}

	sel := p.coord.Selection()
	v.Items = make([]Item, len(state.Songs))
	for i, song := range state.Songs {
		active := sel.Is(i)
		v.Items[i] = Item{
			Index:     i,
			Title:     song.Title,
			Banner:    song.Banner,
			Audio:     song.Audio,
			Active:    active,
			Icon:      Icon(active),
			Treatment: Treatment(active),
			OnClick:   func() { p.Toggle(i) },
		}
	}
	return v
}

// onCatalog rebuilds the items for a new catalog state. The previous item is paused and
// rewound while its handle is still mounted. Subscribers see a single view per transition,
// published once the new handles are in place.
func (p *Page) onCatalog(state models.CatalogState) {
	p.rebuild.Lock()
	defer p.rebuild.Unlock()

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.rebuilding = true
	p.mu.Unlock()

	p.coord.Clear()
	p.unmountAll()

	p.mu.Lock()
	p.state = state
	p.mu.Unlock()

	if state.Status == models.Ready {
		unwatch := make([]func(), 0, len(state.Songs))
		for i, song := range state.Songs {
			p.registry.Mount(i, p.factory(song))
			unwatch = append(unwatch, p.coord.Watch(i, playback.Effect(i, p.registry, p.logger)))
		}
		p.mu.Lock()
		p.unwatch = unwatch
		p.mu.Unlock()
		p.logger.Debug("mounted items", "count", len(state.Songs))
	}

	p.mu.Lock()
	p.rebuilding = false
	p.mu.Unlock()

	p.notify()
}

func (p *Page) unmountAll() {
	p.mu.Lock()
	unwatch := p.unwatch
	p.unwatch = nil
	p.mu.Unlock()

	for _, stop := range unwatch {
		stop()
	}
	p.registry.Reset()
}

func (p *Page) notify() {
	p.mu.Lock()
	subscribers := append([]subscriber(nil), p.subscribers...)
	p.mu.Unlock()

	v := p.View()
	for _, s := range subscribers {
		s.fn(v)
	}
}
