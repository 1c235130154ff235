package tui

import (
	"path/filepath"
	"time"

	"devpull/internal/bridge"
	"devpull/internal/log"
	"devpull/internal/watch"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// The copy flow is a small state machine living inside the model:
//
//	browse -> confirm -> copy -> view -> browse
//
// Confirmation reads exactly one key. Copying streams one target at a
// time to completion; there is no cancellation of an in-flight step.

const confirmPrompt = "COPY MODE: press 'c' to copy selected/file-under-cursor, any other key to cancel."

// beginConfirm enters the confirmation prompt.
func (m *Model) beginConfirm() {
	m.phase = phaseConfirm
}

// handleConfirmKey consumes the single confirmation key. Anything but
// the confirm key, an empty listing, or an empty target set falls back
// to browsing with no side effects.
func (m *Model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	m.phase = phaseBrowse

	if !key.Matches(msg, confirmKey) || !m.browser.HasItems() {
		return nil
	}

	names := m.browser.Targets()
	if len(names) == 0 {
		return nil
	}

	// Resolve full remote paths now, against the directory the user is
	// looking at; names are never stored across reloads.
	m.targets = make([]string, len(names))
	for i, name := range names {
		m.targets[i] = m.browser.CurrentDir() + name
	}
	m.next = 0
	m.phase = phaseCopy

	return tea.Batch(m.startWatcher(), m.startNextStep())
}

// startNextStep launches the next target's copy command and arms the
// drain loop. Spawn failures are appended to the log as plain text and
// the step is skipped, same as any other tool failure.
func (m *Model) startNextStep() tea.Cmd {
	for m.next < len(m.targets) {
		target := m.targets[m.next]
		m.next++

		argv := append(append([]string{}, m.cfg.Bridge.Pull...), target, m.cfg.Download.Dir)
		m.logterm.AppendCommand(argv)

		run, err := m.streamer.Start(argv)
		if err != nil {
			m.logterm.Append(err.Error())
			continue
		}
		m.run = run
		return waitForLine(run, m.poll)
	}
	return m.finishCopy()
}

// finishCopy hands off to the paged viewer once every target has been
// processed.
func (m *Model) finishCopy() tea.Cmd {
	m.run = nil
	m.stopWatcher()
	m.phase = phaseView
	m.logterm.OpenPager(m.height)
	return nil
}

// waitForLine blocks on the run's line channel with a bounded wait so
// the loop stays live even when no output arrives. Interleaving of
// stdout and stderr reflects arrival order, not a fixed priority.
func waitForLine(run *bridge.Run, poll time.Duration) tea.Cmd {
	return func() tea.Msg {
		select {
		case line, ok := <-run.Lines:
			if !ok {
				return copyStepDoneMsg{err: <-run.Done}
			}
			return copyLineMsg{line: line}
		case <-time.After(poll):
			return copyTickMsg{}
		}
	}
}

// startWatcher begins reporting files that land in the download
// directory. Failures only get logged; the copy proceeds regardless.
func (m *Model) startWatcher() tea.Cmd {
	if !m.cfg.Download.Watch {
		return nil
	}
	w, err := watch.New(m.cfg.Download.Dir)
	if err != nil {
		log.Warnf("download watcher: %v", err)
		return nil
	}
	w.Start()
	m.watcher = w
	return waitForArrival(w)
}

func (m *Model) stopWatcher() {
	if m.watcher != nil {
		m.watcher.Stop()
		m.watcher = nil
	}
}

func waitForArrival(w *watch.Watcher) tea.Cmd {
	return func() tea.Msg {
		arrival, ok := <-w.Arrivals()
		return arrivalMsg{path: arrival.Path, ok: ok}
	}
}

// handleCopyMsg processes stream and watcher messages while copying.
func (m *Model) handleCopyMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case copyLineMsg:
		m.logterm.Append(msg.line.Text)
		if m.run == nil {
			return nil
		}
		return waitForLine(m.run, m.poll)

	case copyTickMsg:
		if m.phase != phaseCopy || m.run == nil {
			return nil
		}
		return waitForLine(m.run, m.poll)

	case copyStepDoneMsg:
		if msg.err != nil {
			// Raw text, indistinguishable from tool output; the user
			// judges success by reading the log.
			m.logterm.Append(msg.err.Error())
		}
		m.run = nil
		return m.startNextStep()

	case arrivalMsg:
		if !msg.ok {
			return nil
		}
		if m.phase == phaseCopy {
			m.logterm.Append("received " + filepath.Base(msg.path))
		}
		if m.watcher == nil {
			return nil
		}
		return waitForArrival(m.watcher)
	}
	return nil
}
