package tui

import (
	"fmt"
	"strings"
	"time"

	"devpull/internal/bridge"
	"devpull/internal/config"
	"devpull/internal/notify"
	"devpull/internal/watch"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type phase int

const (
	phaseBrowse phase = iota
	phaseConfirm
	phaseCopy
	phaseView
)

// Model is the root event loop: it owns the browser, the log terminal
// and the copy flow, and dispatches keys by phase. All UI state mutates
// synchronously in Update; the only concurrency is the per-stream
// readers behind bridge.Run.
type Model struct {
	cfg       *config.Config
	keys      KeyMap
	pagerKeys PagerKeyMap
	help      help.Model

	browser  *Browser
	logterm  *LogTerminal
	streamer bridge.Streamer

	phase   phase
	targets []string // resolved remote paths for the active copy
	next    int
	run     *bridge.Run
	poll    time.Duration
	watcher *watch.Watcher

	width  int
	height int
	ready  bool
}

// New builds the root model. The lister and streamer are injected so
// tests can run the whole loop against fakes.
func New(cfg *config.Config, lister bridge.Lister, streamer bridge.Streamer) *Model {
	return &Model{
		cfg:       cfg,
		keys:      DefaultKeyMap(),
		pagerKeys: DefaultPagerKeyMap(),
		help:      help.New(),
		browser:   NewBrowser(lister, cfg.Browser.StartDir, cfg.Browser.Hide, cfg.Browser.AutoAdvance),
		logterm:   NewLogTerminal(),
		streamer:  streamer,
		poll:      time.Duration(cfg.Bridge.PollIntervalMS) * time.Millisecond,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if !m.ready {
			m.ready = true
			m.browser.Reload(true, true, m.height)
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case copyLineMsg, copyTickMsg, copyStepDoneMsg, arrivalMsg:
		return m, m.handleCopyMsg(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.phase {
	case phaseConfirm:
		return m.handleConfirmKey(msg)
	case phaseView:
		m.handlePagerKey(msg)
		return nil
	case phaseCopy:
		// A copy step runs to completion before the next key matters.
		return nil
	default:
		return m.handleBrowseKey(msg)
	}
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stopWatcher()
		return tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.browser.MoveDown(m.height)
	case key.Matches(msg, m.keys.Up):
		m.browser.MoveUp()
	case key.Matches(msg, m.keys.Select):
		m.browser.ToggleSelect(m.height)
	case key.Matches(msg, m.keys.GoUp):
		m.browser.GoUp(m.height)
	case key.Matches(msg, m.keys.Enter):
		m.browser.EnterDirectory(m.height)
	case key.Matches(msg, m.keys.Home):
		m.browser.GoHome(m.height)
	case key.Matches(msg, m.keys.Clear):
		m.browser.ClearSelection()
	case key.Matches(msg, m.keys.Notify):
		m.sendSelectionNotification()
	case key.Matches(msg, m.keys.Copy):
		m.beginConfirm()
	}
	return nil
}

func (m *Model) handlePagerKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.pagerKeys.Back):
		m.phase = phaseBrowse
		m.browser.ClearSelection()
	case key.Matches(msg, m.pagerKeys.Down):
		m.logterm.ScrollDown(m.height)
	case key.Matches(msg, m.pagerKeys.Up):
		m.logterm.ScrollUp()
	case key.Matches(msg, m.pagerKeys.HalfDown):
		m.logterm.HalfPageDown(m.height)
	case key.Matches(msg, m.pagerKeys.HalfUp):
		m.logterm.HalfPageUp(m.height)
	case key.Matches(msg, m.pagerKeys.Top):
		m.logterm.GotoTop()
	case key.Matches(msg, m.pagerKeys.Bottom):
		m.logterm.GotoBottom(m.height)
	}
}

func (m *Model) sendSelectionNotification() {
	names := m.browser.SelectedNames()
	if len(names) == 0 {
		notify.Send(m.cfg.Notify.Command, "No files selected", "")
		return
	}
	title := fmt.Sprintf("Selected (%d)", len(names))
	notify.Send(m.cfg.Notify.Command, title, strings.Join(names, ", "))
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return ""
	}
	switch m.phase {
	case phaseConfirm:
		return truncate(confirmPrompt, m.width-1) + "\n"
	case phaseCopy:
		return m.logterm.TailView(m.height, m.width)
	case phaseView:
		return m.logterm.PagerView(m.height, m.width)
	default:
		return m.browser.View(m.height, m.width) +
			helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
}
