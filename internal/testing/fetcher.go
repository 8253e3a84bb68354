package testing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/jukebox/internal/models"
)

// StaticFetcher is a catalog fetcher that resolves immediately with fixed results.
type StaticFetcher struct {
	mu    sync.Mutex
	Songs []models.Song
	Err   error
	Calls int
	Last  models.Location
}

func (f *StaticFetcher) Fetch(ctx context.Context, loc models.Location) ([]models.Song, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	f.Last = loc
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Songs, nil
}

// Set replaces the results returned by later calls.
func (f *StaticFetcher) Set(songs []models.Song, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Songs, f.Err = songs, err
}

// PendingFetch is one blocked call on a [GatedFetcher].
type PendingFetch struct {
	Location models.Location
	result   chan fetchResult
}

type fetchResult struct {
	songs []models.Song
	err   error
}

// Resolve unblocks the call with the given result.
func (p *PendingFetch) Resolve(songs []models.Song, err error) {
	p.result <- fetchResult{songs: songs, err: err}
}

// GatedFetcher blocks every Fetch until the test resolves it, so tests control settle order.
type GatedFetcher struct {
	calls chan *PendingFetch
}

func NewGatedFetcher() *GatedFetcher {
	return &GatedFetcher{calls: make(chan *PendingFetch, 16)}
}

func (g *GatedFetcher) Fetch(ctx context.Context, loc models.Location) ([]models.Song, error) {
	p := &PendingFetch{Location: loc, result: make(chan fetchResult, 1)}
	g.calls <- p

	select {
	case r := <-p.result:
		return r.songs, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Next waits for the next Fetch call to arrive.
func (g *GatedFetcher) Next(t *testing.T) *PendingFetch {
	t.Helper()
	select {
	case p := <-g.calls:
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for fetch call")
		return nil
	}
}

// Songs builds a catalog of songs with the given titles.
func Songs(titles ...string) []models.Song {
	songs := make([]models.Song, len(titles))
	for i, title := range titles {
		songs[i] = models.Song{Title: title, Audio: title + ".ogg", Banner: title + ".png"}
	}
	return songs
}
