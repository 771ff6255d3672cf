package tui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Background(colorMantle).
			Bold(true).
			Padding(0, 2)

	titleStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	dropZoneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	// highlighted while the drop line holds text, the terminal analogue of
	// the drag-over affordance
	dropZoneActiveStyle = dropZoneStyle.
				BorderForeground(colorAccent)

	hintStyle = lipgloss.NewStyle().Foreground(colorMuted)

	factStyle = lipgloss.NewStyle().Foreground(colorText)

	notifyInfoStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorSurface).
			Padding(0, 1)
	notifySuccessStyle = lipgloss.NewStyle().
				Foreground(colorSuccess).
				Background(colorSurface).
				Padding(0, 1)
	notifyErrorStyle = lipgloss.NewStyle().
				Foreground(colorError).
				Background(colorSurface).
				Padding(0, 1)

	spinnerStyle = lipgloss.NewStyle().Foreground(colorAccent)

	popupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Background(colorMantle).
			Padding(0, 2)

	keyStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	cursorRowStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
)
