package playback

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/shared"
)

type watcher struct {
	id int
	fn func(active bool)
}

type subscriber struct {
	id int
	fn func(prev, next models.Selection)
}

// Coordinator owns the page-wide selection.
type Coordinator struct {
	logger *log.Logger

	// dispatch is held for a whole change, observers included.
	dispatch sync.Mutex

	mu          sync.Mutex
	selection   models.Selection
	watchers    map[int][]watcher
	subscribers []subscriber
	nextID      int
}

func NewCoordinator(logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Coordinator{
		logger:    shared.WithLogger(logger, "component", "playback"),
		selection: models.None(),
		watchers:  make(map[int][]watcher),
	}
}

// Selection returns the current selection.
func (c *Coordinator) Selection() models.Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection
}

// Active reports whether index is the selected item.
func (c *Coordinator) Active(index int) bool {
	return c.Selection().Is(index)
}

// Toggle deselects index if it is selected, otherwise selects it in place of whatever
// was selected before. Indices past the end of the catalog are accepted; negative
// indices are ignored.
func (c *Coordinator) Toggle(index int) {
	if index < 0 {
		c.logger.Debug("ignoring toggle of negative index", "index", index)
		return
	}
	c.change(func(prev models.Selection) models.Selection {
		if prev.Is(index) {
			return models.None()
		}
		return models.Some(index)
	})
}

// Clear deselects the current item, if any.
func (c *Coordinator) Clear() {
	c.change(func(models.Selection) models.Selection { return models.None() })
}

// Watch registers fn for transitions of index. fn is called with false when index stops
// being selected and true when it becomes selected, once per transition.
func (c *Coordinator) Watch(index int, fn func(active bool)) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	c.watchers[index] = append(c.watchers[index], watcher{id: id, fn: fn})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		ws := c.watchers[index]
		for i, w := range ws {
			if w.id == id {
				ws = append(ws[:i:i], ws[i+1:]...)
				break
			}
		}
		if len(ws) == 0 {
			delete(c.watchers, index)
		} else {
			c.watchers[index] = ws
		}
	}
}

// Subscribe registers fn for every selection change. Subscribers run after all item
// watchers of that change.
func (c *Coordinator) Subscribe(fn func(prev, next models.Selection)) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	c.subscribers = append(c.subscribers, subscriber{id: id, fn: fn})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, s := range c.subscribers {
			if s.id == id {
				c.subscribers = append(c.subscribers[:i:i], c.subscribers[i+1:]...)
				return
			}
		}
	}
}

// change applies next to the selection and dispatches the transition. Observers must
// not call back into Toggle or Clear.
func (c *Coordinator) change(next func(prev models.Selection) models.Selection) {
	c.dispatch.Lock()
	defer c.dispatch.Unlock()

	c.mu.Lock()
	prev := c.selection
	cur := next(prev)
	if cur == prev {
		c.mu.Unlock()
		return
	}
	c.selection = cur

	var stopped, started []watcher
	if i, ok := prev.Index(); ok {
		stopped = append(stopped, c.watchers[i]...)
	}
	if i, ok := cur.Index(); ok {
		started = append(started, c.watchers[i]...)
	}
	subscribers := append([]subscriber(nil), c.subscribers...)
	c.mu.Unlock()

	c.logger.Debug("selection changed", "from", prev, "to", cur)

	for _, w := range stopped {
		w.fn(false)
	}
	for _, w := range started {
		w.fn(true)
	}
	for _, s := range subscribers {
		s.fn(prev, cur)
	}
}
