// Package policy screens user text and extracted values for legal-advice
// requests and prompt-injection phrases. Flags are advisory only.
//
// Known gap: the guard sees the intake after extraction. When the model's
// summary step drops an injected phrase, neither the summary nor the field
// values contain it and no injection flag is raised.
package policy

import (
	"strings"

	"github.com/sant0-9/pact/internal/intake"
)

var LegalAdvicePatterns = []string{
	"what should i do",
	"tell me what to do",
	"best legal strategy",
	"legal advice",
	"should i sign",
}

var InjectionPatterns = []string{
	"ignore previous instructions",
	"reveal system prompt",
	"bypass policy",
	"developer mode",
}

// GuardText picks the text screened for legal-advice requests: the extracted
// client_summary when present, otherwise the raw user text.
func GuardText(userText string, in *intake.Intake) string {
	if in == nil {
		return userText
	}
	if summary := in.Get(intake.FieldClientSummary); summary.Present() {
		return summary.String()
	}
	return userText
}

// Evaluate returns at most one flag per category. Legal-advice patterns are
// matched against guardText only; injection patterns against guardText or
// any extracted value.
func Evaluate(guardText string, in *intake.Intake) []intake.PolicyFlag {
	var flags []intake.PolicyFlag
	text := strings.ToLower(guardText)

	if containsAny(text, LegalAdvicePatterns) {
		flags = append(flags, intake.PolicyFlag{
			Code:    intake.FlagLegalAdviceRequest,
			Message: "User asked for legal advice; intake only mode.",
			Action:  intake.ActionRefuseLegalAdvice,
		})
	}

	values := joinedValues(in)
	if containsAny(text, InjectionPatterns) || containsAny(values, InjectionPatterns) {
		flags = append(flags, intake.PolicyFlag{
			Code:    intake.FlagPromptInjectionAttempt,
			Message: "Potential prompt injection attempt detected.",
			Action:  intake.ActionRefuseAndLog,
		})
	}

	return flags
}

func joinedValues(in *intake.Intake) string {
	values := in.Values()
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strings.ToLower(v.String())
	}
	return strings.Join(parts, " ")
}

func containsAny(haystack string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(haystack, p) {
			return true
		}
	}
	return false
}
