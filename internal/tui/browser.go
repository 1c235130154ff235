package tui

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"devpull/internal/bridge"
	"devpull/internal/log"

	"github.com/gobwas/glob"
	"github.com/mattn/go-runewidth"
)

// footerRows is the fixed reservation at the bottom of the browser view
// for the status and help lines.
const footerRows = 2

// Browser owns navigation and selection state for the remote directory
// listing. All mutation happens synchronously from key handling; View
// never mutates.
type Browser struct {
	lister   bridge.Lister
	startDir string

	currentDir  string
	dirs        []string
	files       []string
	allItems    []string
	highlighted int
	startIdx    int
	selected    map[int]struct{}

	hide        []glob.Glob
	autoAdvance bool
}

// NewBrowser creates a browser jailed to startDir. Hide patterns that
// fail to compile are skipped with a log entry.
func NewBrowser(lister bridge.Lister, startDir string, hide []string, autoAdvance bool) *Browser {
	// Every directory path in the browser is trailing-slash terminated;
	// the start dir comes from config or a flag and may not be.
	if !strings.HasSuffix(startDir, "/") {
		startDir += "/"
	}
	b := &Browser{
		lister:      lister,
		startDir:    startDir,
		currentDir:  startDir,
		selected:    make(map[int]struct{}),
		autoAdvance: autoAdvance,
	}
	for _, pattern := range hide {
		g, err := glob.Compile(pattern)
		if err != nil {
			log.Warnf("invalid hide pattern %q: %v", pattern, err)
			continue
		}
		b.hide = append(b.hide, g)
	}
	return b
}

// Reload re-fetches the listing for the current directory and rebuilds
// the item list with directories before files, preserving the tool's
// order within each group. A listing failure degrades to an empty
// directory. Selection is always cleared.
//
// With resetCursor false the cursor is clamped into the new bounds;
// with resetScroll false the scroll offset is shifted back by one
// viewport of rows, compensating for the reload landing after an
// upward navigation.
func (b *Browser) Reload(resetCursor, resetScroll bool, viewportHeight int) {
	lines, err := b.lister.List(context.Background(), b.currentDir)
	if err != nil {
		// Indistinguishable from an empty directory on purpose.
		log.Warnf("listing %s: %v", b.currentDir, err)
		lines = nil
	}

	b.dirs = b.dirs[:0]
	b.files = b.files[:0]
	for _, line := range lines {
		if b.hidden(line) {
			continue
		}
		if strings.HasSuffix(line, "/") {
			b.dirs = append(b.dirs, line)
		} else {
			b.files = append(b.files, line)
		}
	}
	b.allItems = append(append(b.allItems[:0], b.dirs...), b.files...)

	if resetCursor {
		b.highlighted = 0
	} else {
		b.highlighted = min(b.highlighted, max(len(b.allItems)-1, 0))
	}

	if resetScroll {
		b.startIdx = 0
	} else {
		b.startIdx = max(0, b.startIdx-(viewportHeight-footerRows))
	}

	b.selected = make(map[int]struct{})
}

func (b *Browser) hidden(name string) bool {
	trimmed := strings.TrimSuffix(name, "/")
	for _, g := range b.hide {
		if g.Match(trimmed) {
			return true
		}
	}
	return false
}

// GoUp navigates to the parent directory. The filesystem root and the
// configured start directory are both upper bounds: the start directory
// acts as a soft jail even when the device has parents above it.
func (b *Browser) GoUp(viewportHeight int) {
	if b.currentDir == "/" || b.currentDir == b.startDir {
		return
	}
	parent := path.Dir(strings.TrimSuffix(b.currentDir, "/"))
	if parent != "/" {
		parent += "/"
	}
	b.currentDir = parent
	b.Reload(false, false, viewportHeight)
}

// GoHome returns to the start directory.
func (b *Browser) GoHome(viewportHeight int) {
	b.currentDir = b.startDir
	b.Reload(true, true, viewportHeight)
}

// EnterDirectory descends into the highlighted directory; no-op when
// the listing is empty or the cursor is on a file.
func (b *Browser) EnterDirectory(viewportHeight int) {
	if len(b.allItems) == 0 {
		return
	}
	item := b.allItems[b.highlighted]
	if !strings.HasSuffix(item, "/") {
		return
	}
	b.currentDir += item
	b.Reload(true, true, viewportHeight)
}

// MoveDown moves the cursor one row down, scrolling when it would leave
// the viewport.
func (b *Browser) MoveDown(viewportHeight int) {
	if b.highlighted < len(b.allItems)-1 {
		b.highlighted++
		if b.highlighted >= b.startIdx+viewportHeight-footerRows {
			b.startIdx++
		}
	}
}

// MoveUp moves the cursor one row up, scrolling when it would leave the
// viewport.
func (b *Browser) MoveUp() {
	if b.highlighted > 0 {
		b.highlighted--
		if b.highlighted < b.startIdx {
			b.startIdx--
		}
	}
}

// ToggleSelect flips selection of the highlighted entry. Directories
// are never selectable; the rule is enforced here, once, rather than at
// render or copy time. Selecting (not deselecting) advances the cursor
// when auto-advance is on.
func (b *Browser) ToggleSelect(viewportHeight int) {
	if b.highlighted < len(b.dirs) {
		return
	}
	if _, ok := b.selected[b.highlighted]; ok {
		delete(b.selected, b.highlighted)
		return
	}
	b.selected[b.highlighted] = struct{}{}
	if b.autoAdvance {
		b.MoveDown(viewportHeight)
	}
}

// ClearSelection drops all selections.
func (b *Browser) ClearSelection() {
	b.selected = make(map[int]struct{})
}

// HasItems reports whether the current listing is non-empty.
func (b *Browser) HasItems() bool {
	return len(b.allItems) > 0
}

// CurrentDir returns the current remote directory, trailing-slash
// terminated.
func (b *Browser) CurrentDir() string {
	return b.currentDir
}

// Targets returns the names to copy: the selected entries if any,
// otherwise the highlighted entry, otherwise nothing. Selected entries
// come back in listing order.
func (b *Browser) Targets() []string {
	if len(b.selected) > 0 {
		return b.SelectedNames()
	}
	if len(b.allItems) == 0 {
		return nil
	}
	return []string{b.allItems[b.highlighted]}
}

// SelectedNames returns the selected entry names in listing order.
func (b *Browser) SelectedNames() []string {
	idxs := make([]int, 0, len(b.selected))
	for i := range b.selected {
		idxs = append(idxs, i)
	}
	sort.Ints(idxs)
	names := make([]string, len(idxs))
	for i, idx := range idxs {
		names[i] = b.allItems[idx]
	}
	return names
}

// View renders the visible slice of the listing plus the two-line
// status/help footer. Pure: it never mutates browser state.
func (b *Browser) View(viewportHeight, viewportWidth int) string {
	var sb strings.Builder

	rows := viewportHeight - footerRows
	end := min(b.startIdx+rows, len(b.allItems))

	for row := 0; row < rows; row++ {
		idx := b.startIdx + row
		if idx < end {
			item := b.allItems[idx]
			if runewidth.StringWidth(item) > viewportWidth-1 {
				item = runewidth.Truncate(item, max(viewportWidth-1, 0), "...")
			}

			_, isSelected := b.selected[idx]
			switch {
			case idx == b.highlighted && isSelected:
				item = cursorSelectedStyle.Render(item)
			case idx == b.highlighted:
				item = cursorStyle.Render(item)
			case isSelected:
				item = selectedStyle.Render(item)
			}
			sb.WriteString(item)
		}
		sb.WriteString("\n")
	}

	status := fmt.Sprintf("Dir: %s | Sel: %d | q:quit h:up =:home", b.currentDir, len(b.selected))
	sb.WriteString(statusStyle.Render(truncate(status, viewportWidth-1)))
	sb.WriteString("\n")

	return sb.String()
}

// truncate caps a line at the given display width without splitting a
// rune.
func truncate(s string, width int) string {
	return runewidth.Truncate(s, max(width, 0), "")
}
