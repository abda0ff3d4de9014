package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/pact/internal/llm"
)

func (a *App) renderError() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true).
		Render("The model gateway failed")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	errBox := styleBox.Copy().
		Width(min(60, a.width-4)).
		BorderForeground(colorError).
		Render(a.state.runErr.Error())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, errBox))
	b.WriteString("\n\n")

	if suggestions := suggest(a.state.runErr); len(suggestions) > 0 {
		suggBox := styleBox.Copy().
			Width(min(60, a.width-4)).
			Render("Suggestions:\n" + strings.Join(suggestions, "\n"))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, suggBox))
		b.WriteString("\n\n")
	}

	b.WriteString(a.renderInput())
	b.WriteString("\n\n")

	status := styleStatusBar.Render("[Ctrl+S] Retry  [Esc] Quit")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}

// suggest maps gateway failures to next steps.
func suggest(err error) []string {
	var ge *llm.GatewayError
	errors.As(err, &ge)

	switch {
	case errors.Is(err, llm.ErrMissingAPIKey):
		return []string{
			"Set the provider's API key variable (see `pact providers`)",
			"Or add api_key to ~/.config/pact/config.yaml",
		}
	case errors.Is(err, context.DeadlineExceeded):
		return []string{
			"The model did not answer in time",
			"Raise timeout in the config or retry",
		}
	case ge != nil && (ge.StatusCode == 401 || ge.StatusCode == 403):
		return []string{"Check that your API key is valid for this provider"}
	case ge != nil && ge.StatusCode == 429:
		return []string{
			"You've hit the API rate limit",
			"Wait a moment and try again",
		}
	case ge != nil && ge.Provider == "ollama":
		return []string{
			"Make sure Ollama is running: ollama serve",
			"Or run with --provider mock for offline mode",
		}
	}
	return nil
}
