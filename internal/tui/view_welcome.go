package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const logo = `
 ██████╗  █████╗  ██████╗████████╗
 ██╔══██╗██╔══██╗██╔════╝╚══██╔══╝
 ██████╔╝███████║██║        ██║
 ██╔═══╝ ██╔══██║██║        ██║
 ██║     ██║  ██║╚██████╗   ██║
 ╚═╝     ╚═╝  ╚═╝ ╚═════╝   ╚═╝
`

func (a *App) renderWelcome() string {
	var b strings.Builder

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleLogo.Render(logo)))
	b.WriteString("\n")
	subtitle := styleSubtitle.Render("Prenup / postnup intake  -  " + a.pipeline.Provider())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, subtitle))
	b.WriteString("\n\n")

	b.WriteString(a.renderInput())
	b.WriteString("\n\n")

	status := styleStatusBar.Render("[Ctrl+S] Submit  [Esc] Quit")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}

func (a *App) renderInput() string {
	inputBox := styleBox.Copy().
		Width(min(76, a.width-4)).
		BorderForeground(colorSecondary).
		Render(a.state.input.View())
	return lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox)
}

func (a *App) centerVertically(content string) string {
	lines := strings.Count(content, "\n") + 1
	padding := (a.height - lines) / 2
	if padding < 0 {
		padding = 0
	}
	return strings.Repeat("\n", padding) + content
}
