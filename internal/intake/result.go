package intake

import "encoding/json"

// Strategy names the parser path that produced the intake
type Strategy string

const (
	StrategyDirect   Strategy = "direct"
	StrategyEmbedded Strategy = "embedded"
	StrategyNone     Strategy = "none"
)

// ParserTrace records how the raw model text was parsed.
type ParserTrace struct {
	Strategy  Strategy `json:"strategy"`
	RawLength int      `json:"raw_length"`
	Error     string   `json:"error,omitempty"`
}

// Trace is the diagnostic record attached to a Result.
type Trace struct {
	Provider       string      `json:"provider"`
	RawModelOutput string      `json:"raw_model_output"`
	Parser         ParserTrace `json:"parser"`
	HistoryTurns   int         `json:"history_turns"`
}

// Result is the bundle returned by one pipeline run.
type Result struct {
	Intake      *Intake      `json:"intake"`
	Issues      []Issue      `json:"issues"`
	Followups   []string     `json:"followups"`
	PolicyFlags []PolicyFlag `json:"policy_flags"`
	Trace       Trace        `json:"trace"`
}

// NeedsClarification reports whether the result carries any issue.
func (r *Result) NeedsClarification() bool {
	return r != nil && len(r.Issues) > 0
}

// MarshalJSON keeps empty collections as [] and {} rather than null.
func (r Result) MarshalJSON() ([]byte, error) {
	type plain Result
	out := plain(r)
	if out.Intake == nil {
		out.Intake = New()
	}
	if out.Issues == nil {
		out.Issues = []Issue{}
	}
	if out.Followups == nil {
		out.Followups = []string{}
	}
	if out.PolicyFlags == nil {
		out.PolicyFlags = []PolicyFlag{}
	}
	return json.Marshal(out)
}
