package tui

import "github.com/charmbracelet/lipgloss"

// truncate shortens text to maxLen runes, adding "..." if truncated
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

var (
	// Colors
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#06B6D4")
	colorSuccess   = lipgloss.Color("#10B981")
	colorWarning   = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
	colorWhite     = lipgloss.Color("#F9FAFB")

	styleLogo = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleSubtitle = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Result sections
	styleHeading = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleFieldName = lipgloss.NewStyle().
			Foreground(colorSecondary)

	styleFieldValue = lipgloss.NewStyle().
			Foreground(colorWhite)

	styleIssue = lipgloss.NewStyle().
			Foreground(colorError)

	styleFlag = lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true)

	styleOK = lipgloss.NewStyle().
		Foreground(colorSuccess)

	styleUserTurn = lipgloss.NewStyle().
			Foreground(colorSecondary)
)
