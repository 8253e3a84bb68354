// Package transport provides the audio backends behind playback handles.
//
// An [MpvSession] drives one mpv process over its JSON IPC socket. Every song gets its
// own [MpvHandle], but they share that process: only the handle whose file is loaded
// (its owner) acts on Pause and SeekStart, so rewinding a stale item never disturbs the
// one now playing. [NullHandle] logs calls instead and is used when no player is
// configured.
package transport
