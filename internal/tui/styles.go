package tui

import "github.com/charmbracelet/lipgloss"

// Visual states for browser entries plus the log/status chrome. Colors
// follow the classic palette: selected is yellow-on-blue, the cursor on
// a selected entry is white-on-red, the plain cursor is reverse video.
var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Background(lipgloss.Color("4"))

	cursorSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("1"))

	cursorStyle = lipgloss.NewStyle().Reverse(true)

	statusStyle = lipgloss.NewStyle().Bold(true)

	headerStyle = lipgloss.NewStyle().Bold(true)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
