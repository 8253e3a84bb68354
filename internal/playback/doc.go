// Package playback enforces that at most one song plays at a time.
//
// A [Coordinator] holds the single selection. Per-item watchers registered with
// [Coordinator.Watch] receive active/inactive transitions for their index; the
// [Effect] watcher turns those into transport calls on the [Handle] mounted in a
// [Registry]. Every change notifies the previously active item first, so the old
// song is paused and rewound before the new one starts.
package playback
