package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette(Colors{
	Title:  "#7D56F4",
	Active: "#04B575",
	Error:  "#FF0000",
	Warn:   "#FFA500",
	Muted:  "#626262",
})

// Colors names the hex colors of a [Palette].
type Colors struct {
	Title  string
	Active string // Highlight treatment of the playing song
	Error  string
	Warn   string
	Muted  string
}

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func NewPalette(c Colors) *Palette {
	return &Palette{
		title: NewBold(c.Title).MarginBottom(1),
		ok:    NewBold(c.Active),
		err:   NewBold(c.Error),
		warn:  NewStyle(c.Warn),
		help:  NewEm(c.Muted),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
