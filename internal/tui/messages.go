package tui

import "devpull/internal/bridge"

// copyLineMsg carries one line of bridge output into the event loop.
type copyLineMsg struct {
	line bridge.Line
}

// copyStepDoneMsg signals that the current copy step's streams are
// drained and the process has exited; err is the Wait result.
type copyStepDoneMsg struct {
	err error
}

// copyTickMsg fires when the bounded liveness wait elapses with no
// output, so the drain loop can re-arm.
type copyTickMsg struct{}

// arrivalMsg reports a file appearing in the local download directory.
// ok is false once the watcher has stopped.
type arrivalMsg struct {
	path string
	ok   bool
}
