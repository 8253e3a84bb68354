package playback

import (
	"io"
	"sort"
	"sync"
)

// Handle is the transport for one item.
type Handle interface {
	Play() error
	Pause() error
	SeekStart() error
}

// Registry maps item indices to their mounted transport handles.
type Registry struct {
	mu      sync.Mutex
	handles map[int]Handle
}

func NewRegistry() *Registry {
	return &Registry{handles: make(map[int]Handle)}
}

// Mount attaches h to index, unmounting whatever was there before.
func (r *Registry) Mount(index int, h Handle) {
	r.mu.Lock()
	old, ok := r.handles[index]
	r.handles[index] = h
	r.mu.Unlock()

	if ok && old != h {
		closeHandle(old)
	}
}

// Unmount removes the handle at index and closes it if it is an [io.Closer].
func (r *Registry) Unmount(index int) {
	r.mu.Lock()
	h, ok := r.handles[index]
	delete(r.handles, index)
	r.mu.Unlock()

	if ok {
		closeHandle(h)
	}
}

// Get returns the handle mounted at index.
func (r *Registry) Get(index int) (Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.handles[index]
	return h, ok
}

// Reset unmounts every handle in index order.
func (r *Registry) Reset() {
	r.mu.Lock()
	handles := r.handles
	r.handles = make(map[int]Handle)
	r.mu.Unlock()

	indices := make([]int, 0, len(handles))
	for i := range handles {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	for _, i := range indices {
		closeHandle(handles[i])
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}

func closeHandle(h Handle) {
	if c, ok := h.(io.Closer); ok {
		c.Close()
	}
}
