package bridge

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"devpull/internal/log"
)

// Line is a single line of output from a running bridge command.
type Line struct {
	Text   string
	Stderr bool
}

// Run is a spawned bridge command being drained. Lines carries stdout
// and stderr lines in arrival order as observed by the readers (best
// effort, no strict global order) and is closed once both pipes hit
// EOF. Done then delivers the process's Wait result exactly once.
type Run struct {
	Lines <-chan Line
	Done  <-chan error
}

// Streamer spawns a command whose output is streamed line-by-line.
type Streamer interface {
	Start(argv []string) (*Run, error)
}

// ExecStreamer runs commands with one reader goroutine per output pipe
// feeding a single shared channel.
type ExecStreamer struct{}

func (ExecStreamer) Start(argv []string) (*Run, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty command")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", argv[0], err)
	}
	log.Debugf("started %v (pid %d)", argv, cmd.Process.Pid)

	lines := make(chan Line, 64)
	done := make(chan error, 1)

	var wg sync.WaitGroup
	wg.Add(2)
	go drainPipe(stdout, false, lines, &wg)
	go drainPipe(stderr, true, lines, &wg)

	go func() {
		wg.Wait()
		close(lines)
		done <- cmd.Wait()
	}()

	return &Run{Lines: lines, Done: done}, nil
}

func drainPipe(r io.Reader, stderr bool, lines chan<- Line, wg *sync.WaitGroup) {
	defer wg.Done()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines <- Line{Text: scanner.Text(), Stderr: stderr}
	}
	if err := scanner.Err(); err != nil {
		log.Warnf("reading bridge output: %v", err)
	}
}
