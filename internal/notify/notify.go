// Package notify dispatches desktop notifications through an external
// command (notify-send by default). Dispatch is fire-and-forget:
// failures are logged and never surfaced to the UI.
package notify

import (
	"os/exec"

	"devpull/internal/log"
)

// Send invokes the configured notifier with title and body appended to
// its argv. It returns without waiting for the command to finish.
func Send(argv []string, title, body string) {
	if len(argv) == 0 {
		return
	}

	args := append(append([]string{}, argv[1:]...), title, body)
	cmd := exec.Command(argv[0], args...)
	if err := cmd.Start(); err != nil {
		log.Warnf("notify: %v", err)
		return
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Warnf("notify: %v", err)
		}
	}()
}
