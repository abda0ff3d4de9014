// Package parser turns raw model text into a normalized intake. It never
// fails: malformed or absent JSON becomes a structured issue.
package parser

import (
	"strings"

	"github.com/sant0-9/pact/internal/intake"
)

// Parse tries the whole text as one JSON object, then the greedy span from
// the first '{' to the last '}'.
func Parse(raw string) (*intake.Intake, []intake.Issue, intake.ParserTrace) {
	trace := intake.ParserTrace{
		Strategy:  intake.StrategyDirect,
		RawLength: len(raw),
	}

	if obj, err := intake.DecodeObject([]byte(raw)); err == nil {
		return obj.Normalize(), nil, trace
	}

	candidate, ok := embeddedSpan(raw)
	if !ok {
		trace.Strategy = intake.StrategyNone
		trace.Error = "no_json"
		return intake.New(), []intake.Issue{{
			Code:    intake.IssueParseNoJSON,
			Message: "No JSON object found in model output.",
		}}, trace
	}

	trace.Strategy = intake.StrategyEmbedded
	obj, err := intake.DecodeObject([]byte(candidate))
	if err != nil {
		trace.Error = "embedded_json_invalid"
		return intake.New(), []intake.Issue{{
			Code:    intake.IssueParseInvalidJSON,
			Message: "Model output resembled JSON but could not be parsed.",
		}}, trace
	}
	return obj.Normalize(), nil, trace
}

func embeddedSpan(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndex(raw, "}")
	if end < start {
		return "", false
	}
	return raw[start : end+1], true
}
