// Package bridge invokes the command-line tool that reaches the remote
// device. The tool is opaque: a listing command that prints one entry
// per line (directories carry a trailing "/"), and a copy command that
// streams human-readable progress on stdout/stderr.
package bridge

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// listTimeout caps a single listing invocation so a wedged bridge tool
// cannot hang the UI forever.
const listTimeout = 30 * time.Second

// Lister fetches the raw listing lines for a remote directory.
type Lister interface {
	List(ctx context.Context, dir string) ([]string, error)
}

// CommandLister runs a configured argv with the target directory
// appended as the final argument.
type CommandLister struct {
	argv []string
}

func NewCommandLister(argv []string) *CommandLister {
	return &CommandLister{argv: argv}
}

// List runs the listing tool and returns its stdout split into lines.
// Callers treat any error as an empty directory; distinguishing "empty"
// from "failed" is deliberately not done here.
func (l *CommandLister) List(ctx context.Context, dir string) ([]string, error) {
	if len(l.argv) == 0 {
		return nil, fmt.Errorf("empty listing command")
	}

	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	args := append(append([]string{}, l.argv[1:]...), dir)
	cmd := exec.CommandContext(ctx, l.argv[0], args...)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", l.argv[0], err)
	}

	return splitLines(out), nil
}

func splitLines(out []byte) []string {
	s := strings.TrimSpace(string(out))
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}
	return lines
}
