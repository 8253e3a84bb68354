package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/jukebox/internal/page"
)

var (
	_ list.Item = songItem{}
)

// songItem wraps [page.Item] to implement [list.Item].
type songItem struct {
	item page.Item
}

func (i songItem) FilterValue() string { return i.item.Title }

func (i songItem) Title() string {
	title := fmt.Sprintf("%s  %s", i.item.Icon, i.item.Title)
	if i.item.Treatment == page.TreatmentHighlight {
		return styles.ok.Render(title)
	}
	return title
}

func (i songItem) Description() string { return i.item.Audio }

func songItems(items []page.Item) []list.Item {
	out := make([]list.Item, len(items))
	for i, it := range items {
		out[i] = songItem{item: it}
	}
	return out
}
