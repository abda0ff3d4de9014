package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderResult() string {
	var b strings.Builder

	if n := len(a.state.turns); n > 0 {
		asked := styleUserTurn.Render(fmt.Sprintf("> %s", truncate(a.state.turns[n-1], 70)))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, asked))
		b.WriteString("\n\n")
	}

	border := colorSuccess
	if a.state.result.NeedsClarification() {
		border = colorWarning
	}
	resultBox := styleBox.Copy().
		Width(min(76, a.width-4)).
		BorderForeground(border).
		Render(a.state.viewport.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, resultBox))
	b.WriteString("\n\n")

	a.state.input.Placeholder = "Answer the follow-ups or add details..."
	b.WriteString(a.renderInput())
	b.WriteString("\n\n")

	status := fmt.Sprintf("turn %d  %3.f%%  [PgUp/PgDn] Scroll  [Ctrl+S] Submit  [Esc] Quit",
		len(a.state.turns), a.state.viewport.ScrollPercent()*100)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleStatusBar.Render(status)))

	return b.String()
}
