package ui

import (
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/page"
)

// fakePage is a controller whose views are published by the test.
type fakePage struct {
	mu       sync.Mutex
	view     page.View
	subs     []func(page.View)
	toggled  []int
	refetchN int
}

func (f *fakePage) View() page.View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view
}

func (f *fakePage) Toggle(i int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toggled = append(f.toggled, i)
}

func (f *fakePage) Refetch() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refetchN++
}

func (f *fakePage) Subscribe(fn func(page.View)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, fn)
	return func() {}
}

func (f *fakePage) publish(v page.View) {
	f.mu.Lock()
	f.view = v
	subs := append(([]func(page.View))(nil), f.subs...)
	f.mu.Unlock()
	for _, fn := range subs {
		fn(v)
	}
}

func ready(active int, titles ...string) page.View {
	v := page.View{Status: models.Ready}
	for i, title := range titles {
		on := i == active
		v.Items = append(v.Items, page.Item{
			Index: i, Title: title, Audio: title + ".ogg", Active: on,
			Icon: page.Icon(on), Treatment: page.Treatment(on),
		})
	}
	return v
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func newTestModel(p *fakePage) *Model {
	m := NewModel(p)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func TestView(t *testing.T) {
	tt := []struct {
		name string
		view page.View
		want []string
	}{
		{name: "pending", view: page.View{Status: models.Pending}, want: []string{"Loading songs"}},
		{
			name: "failed",
			view: page.View{Status: models.Failed, Kind: models.Malformed, Error: "song 1: missing banner"},
			want: []string{"Could not load songs (Malformed)", "missing banner", "reload"},
		},
		{name: "ready", view: ready(-1, "Opening", "Ending"), want: []string{"▶  Opening", "▶  Ending"}},
		{name: "ready playing", view: ready(1, "Opening", "Ending"), want: []string{"▶  Opening", "⏸  Ending"}},
		{name: "empty", view: ready(-1), want: []string{"No songs"}},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestModel(&fakePage{view: tc.view})
			defer m.Close()

			out := m.View()
			for _, want := range tc.want {
				if !strings.Contains(out, want) {
					t.Errorf("expected view to contain %q, got:\n%s", want, out)
				}
			}
		})
	}
}

func TestKeys(t *testing.T) {
	t.Run("enter toggles the highlighted song", func(t *testing.T) {
		p := &fakePage{view: ready(-1, "A", "B")}
		m := newTestModel(p)
		defer m.Close()

		m.Update(keyMsg("down"))
		m.Update(keyMsg("enter"))
		m.Update(keyMsg(" "))

		if len(p.toggled) != 2 || p.toggled[0] != 1 || p.toggled[1] != 1 {
			t.Errorf("expected two toggles of 1, got %v", p.toggled)
		}
	})

	t.Run("r refetches", func(t *testing.T) {
		p := &fakePage{view: ready(-1, "A")}
		m := newTestModel(p)
		defer m.Close()

		m.Update(keyMsg("r"))
		if p.refetchN != 1 {
			t.Errorf("expected one refetch, got %d", p.refetchN)
		}
	})

	t.Run("toggle without songs does nothing", func(t *testing.T) {
		p := &fakePage{view: page.View{Status: models.Pending}}
		m := newTestModel(p)
		defer m.Close()

		m.Update(keyMsg("enter"))
		if len(p.toggled) != 0 {
			t.Errorf("expected no toggles, got %v", p.toggled)
		}
	})

	t.Run("q quits", func(t *testing.T) {
		m := newTestModel(&fakePage{})
		defer m.Close()

		_, cmd := m.Update(keyMsg("q"))
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
	})
}

func TestPageUpdatesReachModel(t *testing.T) {
	p := &fakePage{view: page.View{Status: models.Pending}}
	m := newTestModel(p)
	defer m.Close()

	p.publish(ready(0, "A", "B"))

	msgs := make(chan tea.Msg, 1)
	go func() { msgs <- m.waitForView()() }()

	select {
	case msg := <-msgs:
		m.Update(msg)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for view update")
	}

	if out := m.View(); !strings.Contains(out, "⏸  A") {
		t.Errorf("expected A to render as playing, got:\n%s", out)
	}
}

func TestCloseStopsListener(t *testing.T) {
	m := newTestModel(&fakePage{})
	cmd := m.waitForView()
	m.Close()

	msg, ok := cmd().(Msg)
	if !ok || msg.kind != MsgPageClosed {
		t.Errorf("expected page closed message, got %#v", msg)
	}
}
