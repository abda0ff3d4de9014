package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/pact/internal/intake"
)

const defaultRenderWidth = 72

// Render formats a result for a terminal: intake fields, issues, followups,
// policy flags and a one-line trace.
func Render(res *intake.Result, width int) string {
	if res == nil {
		return ""
	}
	if width <= 0 {
		width = defaultRenderWidth
	}

	sections := []string{
		renderFields(res.Intake),
		renderIssues(res.Issues),
		renderFollowups(res.Followups, width),
		renderFlags(res.PolicyFlags),
		renderTrace(res.Trace),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderFields(in *intake.Intake) string {
	var b strings.Builder
	b.WriteString(styleHeading.Render("Intake"))
	b.WriteString("\n")

	if in == nil || in.Len() == 0 {
		b.WriteString(styleSubtitle.Render("  (no fields extracted)"))
		b.WriteString("\n")
		return b.String()
	}

	nameWidth := 0
	for _, k := range in.Keys() {
		nameWidth = max(nameWidth, len(k))
	}
	for _, k := range in.Keys() {
		v := in.Get(intake.Field(k))
		value := styleFieldValue.Render(v.String())
		if !v.Truthy() {
			value = styleSubtitle.Render(v.String())
		}
		b.WriteString("  ")
		b.WriteString(styleFieldName.Render(fmt.Sprintf("%-*s", nameWidth, k)))
		b.WriteString("  ")
		b.WriteString(value)
		b.WriteString("\n")
	}
	return b.String()
}

func renderIssues(issues []intake.Issue) string {
	var b strings.Builder
	b.WriteString(styleHeading.Render(fmt.Sprintf("Issues (%d)", len(issues))))
	b.WriteString("\n")

	if len(issues) == 0 {
		b.WriteString(styleOK.Render("  none"))
		b.WriteString("\n")
		return b.String()
	}
	for _, issue := range issues {
		line := fmt.Sprintf("  %s", issue.Code)
		if issue.Field != "" {
			line += fmt.Sprintf(" [%s]", issue.Field)
		}
		b.WriteString(styleIssue.Render(line))
		b.WriteString(styleSubtitle.Render("  " + issue.Message))
		b.WriteString("\n")
	}
	return b.String()
}

func renderFollowups(followups []string, width int) string {
	if len(followups) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(styleHeading.Render("Follow-up questions"))
	b.WriteString("\n")

	wrap := lipgloss.NewStyle().Width(max(20, width-6))
	for i, q := range followups {
		b.WriteString(fmt.Sprintf("  %d. ", i+1))
		b.WriteString(wrap.Render(q))
		b.WriteString("\n")
	}
	return b.String()
}

func renderFlags(flags []intake.PolicyFlag) string {
	if len(flags) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(styleHeading.Render("Policy flags"))
	b.WriteString("\n")
	for _, f := range flags {
		b.WriteString(styleFlag.Render(fmt.Sprintf("  ! %s -> %s", f.Code, f.Action)))
		b.WriteString(styleSubtitle.Render("  " + f.Message))
		b.WriteString("\n")
	}
	return b.String()
}

func renderTrace(tr intake.Trace) string {
	parts := []string{
		"provider " + tr.Provider,
		"parser " + string(tr.Parser.Strategy),
		fmt.Sprintf("%d chars", tr.Parser.RawLength),
	}
	if tr.Parser.Error != "" {
		parts = append(parts, tr.Parser.Error)
	}
	if tr.HistoryTurns > 0 {
		parts = append(parts, fmt.Sprintf("%d prior turns", tr.HistoryTurns))
	}
	return styleStatusBar.Render(strings.Join(parts, "  |  "))
}
