// Package pipeline runs one intake request end to end: extraction, parsing,
// validation, policy screening and clarification repair.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/sant0-9/pact/internal/intake"
	"github.com/sant0-9/pact/internal/llm"
	"github.com/sant0-9/pact/internal/parser"
	"github.com/sant0-9/pact/internal/policy"
	"github.com/sant0-9/pact/internal/repair"
	"github.com/sant0-9/pact/internal/validate"
)

// Stage represents a pipeline stage
type Stage int

const (
	StageExtracting Stage = iota
	StageParsing
	StageValidating
	StageScreening
	StageRepairing
	StageDone
)

const totalStages = 5

func (s Stage) String() string {
	switch s {
	case StageExtracting:
		return "Extracting"
	case StageParsing:
		return "Parsing"
	case StageValidating:
		return "Validating"
	case StageScreening:
		return "Screening"
	case StageRepairing:
		return "Repairing"
	case StageDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Progress represents pipeline progress
type Progress struct {
	Stage       Stage
	StageIndex  int
	TotalStages int
	Message     string
}

const clarificationMessage = "Intake is incomplete or invalid; follow-up needed."

// Pipeline holds no per-run state and may serve concurrent Runs.
type Pipeline struct {
	extractor  *Extractor
	provider   string
	logger     *slog.Logger
	onProgress func(Progress)
}

type Option func(*options)

type options struct {
	provider   string
	timeout    time.Duration
	logger     *slog.Logger
	onProgress func(Progress)
}

// WithProviderName overrides the provider name recorded in the trace.
func WithProviderName(name string) Option {
	return func(o *options) { o.provider = name }
}

// WithTimeout bounds the gateway call.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithProgress registers a callback invoked at each stage. It is called from
// the goroutine running Run.
func WithProgress(fn func(Progress)) Option {
	return func(o *options) { o.onProgress = fn }
}

// New creates a pipeline over gateway.
func New(gateway llm.Gateway, opts ...Option) *Pipeline {
	o := options{
		provider: llm.NameOf(gateway),
		timeout:  llm.DefaultTimeout,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Pipeline{
		extractor:  NewExtractor(gateway, o.provider, o.timeout),
		provider:   o.provider,
		logger:     o.logger,
		onProgress: o.onProgress,
	}
}

// Provider returns the provider name recorded in traces.
func (p *Pipeline) Provider() string {
	return p.provider
}

func (p *Pipeline) progress(stage Stage, msg string) {
	if p.onProgress != nil {
		p.onProgress(Progress{
			Stage:       stage,
			StageIndex:  int(stage),
			TotalStages: totalStages,
			Message:     msg,
		})
	}
}

// Run processes one user turn. history is accepted for forward
// compatibility; only its length reaches the trace. The only error path is
// the gateway call; every content problem ends up in Result.Issues.
func (p *Pipeline) Run(ctx context.Context, userText string, history []string) (*intake.Result, error) {
	log := p.logger.With("provider", p.provider)

	// Stage 1: Extraction
	p.progress(StageExtracting, "Asking the model for intake fields...")
	raw, err := p.extractor.Extract(ctx, userText)
	if err != nil {
		log.Error("gateway call failed", "error", err)
		return nil, err
	}

	// Stage 2: Parsing
	p.progress(StageParsing, "Parsing model output...")
	in, parseIssues, parseTrace := parser.Parse(raw)
	log.Debug("parsed model output", "strategy", parseTrace.Strategy, "raw_length", parseTrace.RawLength, "fields", in.Len())

	// Stage 3: Validation
	p.progress(StageValidating, "Validating fields...")
	validationIssues := validate.Validate(in)

	// Stage 4: Policy screening
	p.progress(StageScreening, "Screening for policy signals...")
	flags := policy.Evaluate(policy.GuardText(userText, in), in)

	// Stage 5: Repair
	p.progress(StageRepairing, "Building follow-up questions...")
	issues := make([]intake.Issue, 0, len(parseIssues)+len(validationIssues)+1)
	issues = append(issues, parseIssues...)
	issues = append(issues, validationIssues...)
	followups := repair.BuildFollowups(issues)
	if repair.NeedsClarification(issues) {
		issues = append(issues, intake.Issue{
			Code:    intake.IssueNeedsClarification,
			Message: clarificationMessage,
		})
	}

	log.Info("intake processed",
		"strategy", parseTrace.Strategy,
		"issues", len(issues),
		"followups", len(followups),
		"flags", len(flags),
		"history_turns", len(history),
	)
	p.progress(StageDone, "Processing complete")

	return &intake.Result{
		Intake:      in,
		Issues:      issues,
		Followups:   followups,
		PolicyFlags: flags,
		Trace: intake.Trace{
			Provider:       p.provider,
			RawModelOutput: raw,
			Parser:         parseTrace,
			HistoryTurns:   len(history),
		},
	}, nil
}
