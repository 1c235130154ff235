package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	byDir map[string][]string
	err   error
	calls []string
}

func (f *fakeLister) List(_ context.Context, dir string) ([]string, error) {
	f.calls = append(f.calls, dir)
	if f.err != nil {
		return nil, f.err
	}
	return f.byDir[dir], nil
}

const testHeight = 24

func sdcardLister() *fakeLister {
	return &fakeLister{byDir: map[string][]string{
		"/sdcard/":          {"Download/", "DCIM/", "a.txt", "b.txt"},
		"/sdcard/Download/": {"pkg.apk"},
		"/sdcard/DCIM/":     {},
	}}
}

func newTestBrowser(t *testing.T, l *fakeLister) *Browser {
	t.Helper()
	b := NewBrowser(l, "/sdcard/", nil, true)
	b.Reload(true, true, testHeight)
	return b
}

func TestReloadPartitionsDirsBeforeFiles(t *testing.T) {
	b := newTestBrowser(t, sdcardLister())

	assert.Equal(t, []string{"Download/", "DCIM/"}, b.dirs)
	assert.Equal(t, []string{"a.txt", "b.txt"}, b.files)
	assert.Equal(t, []string{"Download/", "DCIM/", "a.txt", "b.txt"}, b.allItems)
	assert.Equal(t, 0, b.highlighted)
	assert.Equal(t, 0, b.startIdx)

	// Index invariant: everything below len(dirs) is a directory.
	for i, item := range b.allItems {
		if i < len(b.dirs) {
			assert.True(t, item[len(item)-1] == '/', "index %d should be a directory", i)
		} else {
			assert.False(t, item[len(item)-1] == '/', "index %d should be a file", i)
		}
	}
}

func TestReloadFailureIsEmptyListing(t *testing.T) {
	b := newTestBrowser(t, &fakeLister{err: errors.New("device offline")})

	assert.False(t, b.HasItems())
	assert.Equal(t, 0, b.highlighted)
	assert.Empty(t, b.Targets())
}

func TestReloadClampsCursor(t *testing.T) {
	l := sdcardLister()
	b := newTestBrowser(t, l)

	b.highlighted = 3
	l.byDir["/sdcard/"] = []string{"only.txt"}
	b.Reload(false, true, testHeight)

	assert.Equal(t, 0, b.highlighted)

	l.byDir["/sdcard/"] = nil
	b.Reload(false, true, testHeight)
	assert.Equal(t, 0, b.highlighted)
}

func TestReloadScrollCompensation(t *testing.T) {
	l := sdcardLister()
	b := newTestBrowser(t, l)

	b.startIdx = 30
	b.highlighted = 30
	b.Reload(false, false, testHeight)

	// Shifted back by viewport minus the footer rows, floored at zero.
	assert.Equal(t, 30-(testHeight-2), b.startIdx)

	b.startIdx = 3
	b.Reload(false, false, testHeight)
	assert.Equal(t, 0, b.startIdx)
}

func TestReloadClearsSelection(t *testing.T) {
	b := newTestBrowser(t, sdcardLister())

	b.highlighted = 2
	b.ToggleSelect(testHeight)
	require.Len(t, b.selected, 1)

	b.Reload(false, false, testHeight)
	assert.Empty(t, b.selected)
}

func TestHideFilter(t *testing.T) {
	l := &fakeLister{byDir: map[string][]string{
		"/sdcard/": {"Android/", "DCIM/", ".hidden", "a.txt"},
	}}
	b := NewBrowser(l, "/sdcard/", []string{"Android", ".*"}, true)
	b.Reload(true, true, testHeight)

	assert.Equal(t, []string{"DCIM/"}, b.dirs)
	assert.Equal(t, []string{"a.txt"}, b.files)
}

func TestEnterDirectory(t *testing.T) {
	b := newTestBrowser(t, sdcardLister())

	b.highlighted = 2
	b.ToggleSelect(testHeight)
	b.highlighted = 0
	b.EnterDirectory(testHeight)

	assert.Equal(t, "/sdcard/Download/", b.currentDir)
	assert.Equal(t, 0, b.highlighted)
	assert.Empty(t, b.selected)
	assert.Equal(t, []string{"pkg.apk"}, b.allItems)
}

func TestEnterDirectoryNoops(t *testing.T) {
	t.Run("on_file", func(t *testing.T) {
		b := newTestBrowser(t, sdcardLister())
		b.highlighted = 2
		b.EnterDirectory(testHeight)
		assert.Equal(t, "/sdcard/", b.currentDir)
	})

	t.Run("empty_listing", func(t *testing.T) {
		b := newTestBrowser(t, &fakeLister{})
		b.EnterDirectory(testHeight)
		assert.Equal(t, "/sdcard/", b.currentDir)
	})
}

func TestGoUpJail(t *testing.T) {
	t.Run("at_start_dir", func(t *testing.T) {
		l := sdcardLister()
		b := newTestBrowser(t, l)
		before := len(l.calls)

		b.GoUp(testHeight)

		assert.Equal(t, "/sdcard/", b.currentDir)
		assert.Equal(t, before, len(l.calls), "no reload on jailed go-up")
	})

	t.Run("at_root", func(t *testing.T) {
		l := &fakeLister{}
		b := NewBrowser(l, "/", nil, true)
		b.Reload(true, true, testHeight)

		b.GoUp(testHeight)
		assert.Equal(t, "/", b.currentDir)
	})

	t.Run("from_subdirectory", func(t *testing.T) {
		b := newTestBrowser(t, sdcardLister())
		b.EnterDirectory(testHeight) // into Download/

		b.GoUp(testHeight)
		assert.Equal(t, "/sdcard/", b.currentDir)
	})
}

func TestStartDirWithoutTrailingSlash(t *testing.T) {
	b := NewBrowser(sdcardLister(), "/sdcard", nil, true)
	b.Reload(true, true, testHeight)

	assert.Equal(t, "/sdcard/", b.currentDir)
	require.Equal(t, []string{"Download/", "DCIM/"}, b.dirs)

	b.EnterDirectory(testHeight)
	assert.Equal(t, "/sdcard/Download/", b.currentDir)

	// The start dir still jails navigation.
	b.GoUp(testHeight)
	b.GoUp(testHeight)
	assert.Equal(t, "/sdcard/", b.currentDir)
}

func TestGoHome(t *testing.T) {
	b := newTestBrowser(t, sdcardLister())
	b.EnterDirectory(testHeight)
	require.Equal(t, "/sdcard/Download/", b.currentDir)

	b.GoHome(testHeight)
	assert.Equal(t, "/sdcard/", b.currentDir)
	assert.Equal(t, 0, b.highlighted)
	assert.Equal(t, 0, b.startIdx)
}

func TestCursorBounds(t *testing.T) {
	t.Run("clamped_to_listing", func(t *testing.T) {
		b := newTestBrowser(t, sdcardLister())

		b.MoveUp()
		assert.Equal(t, 0, b.highlighted)

		for i := 0; i < 10; i++ {
			b.MoveDown(testHeight)
		}
		assert.Equal(t, 3, b.highlighted)
	})

	t.Run("empty_listing", func(t *testing.T) {
		b := newTestBrowser(t, &fakeLister{})

		b.MoveDown(testHeight)
		b.MoveUp()
		assert.Equal(t, 0, b.highlighted)
	})
}

func TestScrollFollowsCursor(t *testing.T) {
	l := &fakeLister{byDir: map[string][]string{"/sdcard/": {
		"a.txt", "b.txt", "c.txt", "d.txt", "e.txt", "f.txt",
	}}}
	b := NewBrowser(l, "/sdcard/", nil, true)
	b.Reload(true, true, 5) // 3 visible rows

	for i := 0; i < 3; i++ {
		b.MoveDown(5)
	}
	assert.Equal(t, 3, b.highlighted)
	assert.Equal(t, 1, b.startIdx)

	b.MoveUp()
	b.MoveUp()
	b.MoveUp()
	assert.Equal(t, 0, b.highlighted)
	assert.Equal(t, 0, b.startIdx)
}

func TestToggleSelect(t *testing.T) {
	t.Run("directories_never_selectable", func(t *testing.T) {
		b := newTestBrowser(t, sdcardLister())

		b.ToggleSelect(testHeight) // on Download/
		b.highlighted = 1
		b.ToggleSelect(testHeight) // on DCIM/
		assert.Empty(t, b.selected)

		// The invariant holds across arbitrary sequences.
		for i := 0; i < 20; i++ {
			b.ToggleSelect(testHeight)
			b.MoveDown(testHeight)
		}
		for idx := range b.selected {
			assert.GreaterOrEqual(t, idx, len(b.dirs))
		}
	})

	t.Run("select_advances_cursor", func(t *testing.T) {
		b := newTestBrowser(t, sdcardLister())
		b.highlighted = 2

		b.ToggleSelect(testHeight)
		assert.Contains(t, b.selected, 2)
		assert.Equal(t, 3, b.highlighted)
	})

	t.Run("deselect_keeps_cursor", func(t *testing.T) {
		b := newTestBrowser(t, sdcardLister())
		b.highlighted = 3

		b.ToggleSelect(testHeight)
		b.ToggleSelect(testHeight) // cursor stayed on 3 (last item)
		assert.Empty(t, b.selected)
		assert.Equal(t, 3, b.highlighted)
	})

	t.Run("auto_advance_off", func(t *testing.T) {
		l := sdcardLister()
		b := NewBrowser(l, "/sdcard/", nil, false)
		b.Reload(true, true, testHeight)
		b.highlighted = 2

		b.ToggleSelect(testHeight)
		assert.Contains(t, b.selected, 2)
		assert.Equal(t, 2, b.highlighted)
	})
}

func TestTargets(t *testing.T) {
	t.Run("selection_wins_over_cursor", func(t *testing.T) {
		b := newTestBrowser(t, sdcardLister())
		b.highlighted = 3
		b.ToggleSelect(testHeight)
		b.highlighted = 2
		b.ToggleSelect(testHeight)
		b.highlighted = 0 // cursor elsewhere

		assert.Equal(t, []string{"a.txt", "b.txt"}, b.Targets())
	})

	t.Run("falls_back_to_cursor", func(t *testing.T) {
		b := newTestBrowser(t, sdcardLister())
		b.highlighted = 2
		assert.Equal(t, []string{"a.txt"}, b.Targets())
	})

	t.Run("cursor_fallback_may_be_a_directory", func(t *testing.T) {
		b := newTestBrowser(t, sdcardLister())
		assert.Equal(t, []string{"Download/"}, b.Targets())
	})

	t.Run("empty_listing", func(t *testing.T) {
		b := newTestBrowser(t, &fakeLister{})
		assert.Empty(t, b.Targets())
	})
}

func TestClearSelection(t *testing.T) {
	b := newTestBrowser(t, sdcardLister())
	b.highlighted = 2
	b.ToggleSelect(testHeight)
	b.ToggleSelect(testHeight)
	require.Len(t, b.selected, 2)

	b.ClearSelection()
	assert.Empty(t, b.selected)
}

func TestViewDoesNotMutate(t *testing.T) {
	b := newTestBrowser(t, sdcardLister())
	b.highlighted = 2
	b.ToggleSelect(testHeight)

	before := *b
	_ = b.View(testHeight, 80)

	assert.Equal(t, before.highlighted, b.highlighted)
	assert.Equal(t, before.startIdx, b.startIdx)
	assert.Equal(t, before.currentDir, b.currentDir)
	assert.Len(t, b.selected, 1)
}

func TestViewTruncatesLongNames(t *testing.T) {
	long := "a_very_long_file_name_that_overflows_the_viewport_width.txt"
	l := &fakeLister{byDir: map[string][]string{"/sdcard/": {long}}}
	b := NewBrowser(l, "/sdcard/", nil, true)
	b.Reload(true, true, testHeight)

	view := b.View(testHeight, 20)
	assert.Contains(t, view, long[:16]+"...")
	assert.NotContains(t, view, long)
}

func TestViewTruncatesMultibyteNamesCleanly(t *testing.T) {
	long := strings.Repeat("ファイル", 10) + ".txt"
	l := &fakeLister{byDir: map[string][]string{"/sdcard/": {long}}}
	b := NewBrowser(l, "/sdcard/", nil, true)
	b.Reload(true, true, testHeight)

	view := b.View(testHeight, 20)
	assert.True(t, utf8.ValidString(view), "truncation split a rune")
	assert.Contains(t, view, "...")
	assert.NotContains(t, view, long)
}
