package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sant0-9/pact/internal/intake"
	"github.com/sant0-9/pact/internal/pipeline"
)

type state struct {
	// Input
	input textarea.Model

	// Processing
	running  bool
	spinner  spinner.Model
	progress *pipeline.Progress
	started  time.Time

	// Result
	result   *intake.Result
	viewport viewport.Model
	runErr   error

	// Submitted user turns, oldest first
	turns []string
}

func newState() *state {
	input := textarea.New()
	input.Placeholder = "Describe the agreement you need..."
	input.ShowLineNumbers = false
	input.CharLimit = 4000
	input.SetWidth(70)
	input.SetHeight(4)
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleLogo

	return &state{
		input:    input,
		spinner:  sp,
		viewport: viewport.New(70, 12),
	}
}

// history returns a copy of the submitted turns.
func (s *state) history() []string {
	out := make([]string, len(s.turns))
	copy(out, s.turns)
	return out
}
