// Package terminal provides the platform device boundary and the typed
// input-event stream of the rendering engine.
//
// Features:
//   - Device interface over raw byte I/O, window size, and mode switching
//   - Unix implementation: raw mode, poll-based reads, SIGWINCH resizes
//   - Input task feeding device bytes through the ansi parser into events
//   - SGR mouse decoding and mouse-mode control
//   - Device-attributes capability query with timeout
//   - Color-capability detection and RGB to xterm-256 mapping
//   - Clean terminal restoration on exit and panic
//
// The package bypasses terminfo/termcap entirely. Target environments:
// Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
