// Package tui is the interactive intake session and the terminal renderer
// for results.
package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sant0-9/pact/internal/audit"
	"github.com/sant0-9/pact/internal/intake"
	"github.com/sant0-9/pact/internal/llm"
	"github.com/sant0-9/pact/internal/pipeline"
	"github.com/sant0-9/pact/internal/policy"
)

// Options configure an interactive session.
type Options struct {
	Provider string
	Timeout  time.Duration
	Logger   *slog.Logger
	// Recorder is optional; when set, refuse_and_log flags are stored.
	Recorder *audit.Recorder
}

type App struct {
	width    int
	height   int
	state    *state
	pipeline *pipeline.Pipeline
	recorder *audit.Recorder
	logger   *slog.Logger
	progress chan pipeline.Progress
	// a waitForProgress command is outstanding
	listening bool
	ctx       context.Context
	cancel    context.CancelFunc
	quitting  bool
}

func NewApp(gateway llm.Gateway, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	progress := make(chan pipeline.Progress, 16)

	pipeOpts := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithTimeout(opts.Timeout),
		pipeline.WithProgress(func(p pipeline.Progress) {
			// drop updates rather than block the run
			select {
			case progress <- p:
			default:
			}
		}),
	}
	if opts.Provider != "" {
		pipeOpts = append(pipeOpts, pipeline.WithProviderName(opts.Provider))
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		state:    newState(),
		pipeline: pipeline.New(gateway, pipeOpts...),
		recorder: opts.Recorder,
		logger:   logger,
		progress: progress,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Run starts the session on the terminal and blocks until it exits.
func Run(gateway llm.Gateway, opts Options) error {
	app := NewApp(gateway, opts)
	defer app.cancel()

	_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(tea.WindowSize(), textarea.Blink)
}

type resultMsg struct {
	text   string
	result *intake.Result
	err    error
}

type progressMsg pipeline.Progress

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := a.handleKey(msg); handled {
			return a, cmd
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()

	case spinner.TickMsg:
		if !a.state.running {
			return a, nil
		}
		var cmd tea.Cmd
		a.state.spinner, cmd = a.state.spinner.Update(msg)
		return a, cmd

	case progressMsg:
		a.listening = false
		if !a.state.running {
			return a, nil
		}
		p := pipeline.Progress(msg)
		a.state.progress = &p
		return a, a.waitForProgress()

	case resultMsg:
		a.finishRun(msg)
		return a, textarea.Blink
	}

	if !a.state.running {
		var cmd tea.Cmd
		a.state.input, cmd = a.state.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Quit):
		a.quitting = true
		a.cancel()
		return tea.Quit, true

	case key.Matches(msg, keys.Submit):
		if a.state.running {
			return nil, true
		}
		return a.submit(), true

	case key.Matches(msg, keys.PageUp), key.Matches(msg, keys.PageDown):
		var cmd tea.Cmd
		a.state.viewport, cmd = a.state.viewport.Update(msg)
		return cmd, true
	}

	if a.state.running {
		return nil, true
	}
	return nil, false
}

func (a *App) submit() tea.Cmd {
	text := strings.TrimSpace(a.state.input.Value())
	if text == "" {
		return nil
	}

	a.drainProgress()
	history := a.state.history()
	a.state.running = true
	a.state.started = time.Now()
	a.state.progress = nil
	a.state.runErr = nil
	a.state.input.Blur()

	return tea.Batch(
		a.state.spinner.Tick,
		a.waitForProgress(),
		a.runPipeline(text, history),
	)
}

func (a *App) runPipeline(text string, history []string) tea.Cmd {
	return func() tea.Msg {
		res, err := a.pipeline.Run(a.ctx, text, history)
		if err == nil && a.recorder != nil {
			a.record(text, res)
		}
		return resultMsg{text: text, result: res, err: err}
	}
}

func (a *App) record(userText string, res *intake.Result) {
	runID := audit.NewRunID()
	guardText := policy.GuardText(userText, res.Intake)
	if _, err := a.recorder.RecordFlags(a.ctx, runID, res.Trace.Provider, guardText, res.PolicyFlags); err != nil {
		a.logger.Error("audit record failed", "run_id", runID, "error", err)
	}
}

func (a *App) waitForProgress() tea.Cmd {
	if a.listening {
		return nil
	}
	a.listening = true
	ch := a.progress
	ctx := a.ctx
	return func() tea.Msg {
		select {
		case p := <-ch:
			return progressMsg(p)
		case <-ctx.Done():
			return nil
		}
	}
}

// drainProgress discards updates left over from the previous run.
func (a *App) drainProgress() {
	for {
		select {
		case <-a.progress:
		default:
			return
		}
	}
}

func (a *App) finishRun(msg resultMsg) {
	a.state.running = false
	a.state.input.Focus()

	if msg.err != nil {
		a.state.runErr = msg.err
		return
	}

	a.state.turns = append(a.state.turns, msg.text)
	a.state.result = msg.result
	a.state.input.Reset()
	a.state.viewport.SetContent(Render(msg.result, a.state.viewport.Width))
	a.state.viewport.GotoTop()
}

func (a *App) resize() {
	boxWidth := min(76, a.width-4)
	if boxWidth < 20 {
		boxWidth = 20
	}
	a.state.input.SetWidth(boxWidth - 4)

	// header, input box, status bar
	vpHeight := a.height - 14
	if vpHeight < 5 {
		vpHeight = 5
	}
	a.state.viewport.Width = boxWidth - 4
	a.state.viewport.Height = vpHeight
	if a.state.result != nil {
		a.state.viewport.SetContent(Render(a.state.result, a.state.viewport.Width))
	}
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch {
	case a.state.running:
		return a.renderProcessing()
	case a.state.runErr != nil:
		return a.renderError()
	case a.state.result != nil:
		return a.renderResult()
	default:
		return a.renderWelcome()
	}
}
