package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/page"
)

// Controller is the page surface the TUI drives.
type Controller interface {
	View() page.View
	Toggle(index int)
	Refetch()
	Subscribe(fn func(page.View)) (cancel func())
}

// Model represents the TUI application state.
type Model struct {
	page    Controller
	views   chan page.View
	done    chan struct{}
	cancel  func()
	view    page.View
	width   int
	height  int
	songs   list.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap
}

// NewModel creates a TUI over p and starts listening for page changes. Call
// [Model.Close] when the program exits.
func NewModel(p Controller) *Model {
	songs := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	songs.Title = "Songs"
	songs.SetShowHelp(false)

	m := &Model{
		page:    p,
		views:   make(chan page.View, 1),
		done:    make(chan struct{}),
		songs:   songs,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:    help.New(),
		keys:    newKeyMap(),
	}

	// Only the newest view matters; a view still waiting to be rendered is replaced.
	m.cancel = p.Subscribe(func(v page.View) {
		select {
		case <-m.views:
		default:
		}
		select {
		case m.views <- v:
		default:
		}
	})
	m.setView(p.View())
	return m
}

// Close stops listening for page changes.
func (m *Model) Close() {
	m.cancel()
	close(m.done)
}

// Init starts the spinner and the page listener.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForView())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.songs.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case Msg:
		switch msg.kind {
		case MsgViewUpdated:
			m.setView(msg.data.(page.View))
			return m, m.waitForView()
		case MsgPageClosed:
			return m, tea.Quit
		}

	case spinner.TickMsg:
		if m.view.Status != models.Pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	var cmd tea.Cmd
	m.songs, cmd = m.songs.Update(msg)
	return m, cmd
}

// View renders the UI based on the catalog state.
func (m *Model) View() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.refetch, m.keys.quit})

	switch m.view.Status {
	case models.Pending:
		return fmt.Sprintf("%s %s\n\n%s", m.spinner.View(), styles.warn.Render("Loading songs..."), helpView)
	case models.Failed:
		msg := fmt.Sprintf("Could not load songs (%s)", m.view.Kind)
		return fmt.Sprintf("%s\n%s\n\n%s", styles.err.Render(msg), styles.help.Render(m.view.Error), helpView)
	}

	if len(m.view.Items) == 0 {
		return fmt.Sprintf("%s\n%s\n\n%s", styles.title.Render("Songs"), "No songs in catalog.", helpView)
	}
	return fmt.Sprintf("%s\n\n%s", m.songs.View(), m.help.ShortHelpView(m.keys.ShortHelp()))
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.songs.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.songs, cmd = m.songs.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.refetch):
		m.page.Refetch()
		return m, m.spinner.Tick
	case key.Matches(msg, m.keys.toggle):
		if selected, ok := m.songs.SelectedItem().(songItem); ok {
			m.page.Toggle(selected.item.Index)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.songs, cmd = m.songs.Update(msg)
	return m, cmd
}

// setView replaces the rendered page, keeping the cursor where it was.
func (m *Model) setView(v page.View) {
	m.view = v
	cursor := m.songs.Index()
	m.songs.SetItems(songItems(v.Items))
	if cursor < len(v.Items) {
		m.songs.Select(cursor)
	}
}

// waitForView blocks until the page publishes a new view.
func (m *Model) waitForView() tea.Cmd {
	return func() tea.Msg {
		select {
		case v := <-m.views:
			return viewUpdatedMsg(v)
		case <-m.done:
			return pageClosedMsg()
		}
	}
}
