package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/pact/internal/pipeline"
)

var stages = []pipeline.Stage{
	pipeline.StageExtracting,
	pipeline.StageParsing,
	pipeline.StageValidating,
	pipeline.StageScreening,
	pipeline.StageRepairing,
}

func (a *App) renderProcessing() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render(a.state.spinner.View() + " Processing")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	if n := len(a.state.turns); n > 0 {
		last := styleUserTurn.Render("> " + truncate(a.state.turns[n-1], 60))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render("previous turn")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, last))
		b.WriteString("\n\n")
	}

	current := 0
	if a.state.progress != nil {
		current = a.state.progress.StageIndex
	}

	var stageLines []string
	for i, stage := range stages {
		var icon string
		var style lipgloss.Style

		switch {
		case i < current:
			icon = "[x]"
			style = lipgloss.NewStyle().Foreground(colorSuccess)
		case i == current:
			icon = "[>]"
			style = lipgloss.NewStyle().Foreground(colorSecondary).Bold(true)
		default:
			icon = "[ ]"
			style = lipgloss.NewStyle().Foreground(colorMuted)
		}
		stageLines = append(stageLines, style.Render(fmt.Sprintf("  %s  %-12s", icon, stage)))
	}

	stagesBox := styleBox.Copy().
		Width(min(60, a.width-4)).
		Render(strings.Join(stageLines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, stagesBox))
	b.WriteString("\n\n")

	msg := fmt.Sprintf("%.1fs", time.Since(a.state.started).Seconds())
	if a.state.progress != nil && a.state.progress.Message != "" {
		msg = truncate(a.state.progress.Message, 50) + "  " + msg
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render(msg)))
	b.WriteString("\n\n")

	status := styleStatusBar.Render("[Esc] Cancel and quit")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}
