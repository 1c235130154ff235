package tui

import (
	"fmt"
	"strings"
)

// headerRows is the single header line both log views draw above the
// buffer contents.
const headerRows = 1

const (
	tailHeader  = "Output log (live) - history kept. After copy: scrollable viewer."
	pagerHeader = "Log viewer - j/k:up/down  d/u:half  g/G:top/bottom  q:back"
)

// LogTerminal owns the append-only line buffer fed by command output.
// The buffer is unbounded and lives for the process; the paged viewer
// keeps an independent scroll cursor over it.
type LogTerminal struct {
	lines  []string
	scroll int
}

func NewLogTerminal() *LogTerminal {
	return &LogTerminal{}
}

// Append adds one line to the buffer.
func (t *LogTerminal) Append(line string) {
	t.lines = append(t.lines, line)
}

// AppendCommand records the invocation line for a command about to run.
func (t *LogTerminal) AppendCommand(argv []string) {
	t.Append(fmt.Sprintf("$ %s", strings.Join(argv, " ")))
}

// Len returns the number of buffered lines.
func (t *LogTerminal) Len() int {
	return len(t.lines)
}

// visible is the number of buffer lines that fit under the header.
func visible(viewportHeight int) int {
	return max(viewportHeight-headerRows, 0)
}

// TailView renders the live tail: the most recent lines that fit the
// viewport, under a bold header.
func (t *LogTerminal) TailView(viewportHeight, viewportWidth int) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(truncate(tailHeader, viewportWidth-1)))
	sb.WriteString("\n")

	n := visible(viewportHeight)
	start := max(0, len(t.lines)-n)
	for _, line := range t.lines[start:min(start+n, len(t.lines))] {
		sb.WriteString(truncate(line, viewportWidth-1))
		sb.WriteString("\n")
	}
	return sb.String()
}

// OpenPager positions the paged viewer at the bottom of the buffer.
func (t *LogTerminal) OpenPager(viewportHeight int) {
	t.scroll = t.maxScroll(viewportHeight)
}

// PagerView renders the scrollable full-buffer view.
func (t *LogTerminal) PagerView(viewportHeight, viewportWidth int) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(truncate(pagerHeader, viewportWidth-1)))
	sb.WriteString("\n")

	end := min(t.scroll+visible(viewportHeight), len(t.lines))
	for _, line := range t.lines[min(t.scroll, end):end] {
		sb.WriteString(truncate(line, viewportWidth-1))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *LogTerminal) maxScroll(viewportHeight int) int {
	return max(0, len(t.lines)-visible(viewportHeight))
}

// ScrollDown / ScrollUp move one line, clamped to the buffer bounds.
func (t *LogTerminal) ScrollDown(viewportHeight int) {
	if t.scroll < t.maxScroll(viewportHeight) {
		t.scroll++
	}
}

func (t *LogTerminal) ScrollUp() {
	if t.scroll > 0 {
		t.scroll--
	}
}

// HalfPageDown / HalfPageUp move half a viewport, clamped.
func (t *LogTerminal) HalfPageDown(viewportHeight int) {
	t.scroll = min(t.scroll+visible(viewportHeight)/2, t.maxScroll(viewportHeight))
}

func (t *LogTerminal) HalfPageUp(viewportHeight int) {
	t.scroll = max(t.scroll-visible(viewportHeight)/2, 0)
}

func (t *LogTerminal) GotoTop() {
	t.scroll = 0
}

func (t *LogTerminal) GotoBottom(viewportHeight int) {
	t.scroll = t.maxScroll(viewportHeight)
}
