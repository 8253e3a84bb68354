package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/jukebox/internal/page"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgViewUpdated MsgKind = iota
	MsgPageClosed
)

// viewUpdatedMsg is the constructor for [MsgViewUpdated]
func viewUpdatedMsg(v page.View) Msg {
	return Msg{kind: MsgViewUpdated, data: v}
}

// pageClosedMsg is the constructor for [MsgPageClosed]
func pageClosedMsg() Msg {
	return Msg{kind: MsgPageClosed}
}
