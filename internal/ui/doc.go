// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI renders the page in one of three states:
//   - Pending : a spinner while the catalog loads
//   - Failed : the error kind and message, with r to retry
//   - Ready : the song list, where enter/space plays or pauses the highlighted song
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Page changes flow through a channel into the program, so playback started from any surface shows up here too.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, space, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
