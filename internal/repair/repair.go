// Package repair maps accumulated issues to clarification questions.
package repair

import (
	"fmt"

	"github.com/sant0-9/pact/internal/intake"
)

// RestateQuestion is appended once when any parse failure occurred.
const RestateQuestion = "Please restate your intake details in plain language so we can retry extraction."

// BuildFollowups returns one question per field-level issue, in input order,
// plus a single restate question if the model output could not be parsed.
func BuildFollowups(issues []intake.Issue) []string {
	var questions []string
	parseFailed := false

	for _, issue := range issues {
		if issue.Code.IsParseFailure() {
			parseFailed = true
			continue
		}
		if q, ok := question(issue); ok {
			questions = append(questions, q)
		}
	}

	if parseFailed {
		questions = append(questions, RestateQuestion)
	}
	return questions
}

func question(issue intake.Issue) (string, bool) {
	if issue.Field == "" {
		return "", false
	}
	f := issue.Field

	switch issue.Code {
	case intake.IssueMissingRequiredField:
		return fmt.Sprintf("Please provide `%s`.", f), true
	case intake.IssueCrossFieldIncomplete:
		return fmt.Sprintf("Please share `%s` so we can complete intake.", f), true
	case intake.IssueInvalidRange:
		return fmt.Sprintf("Please provide a valid non-negative value for `%s`.", f), true
	case intake.IssueInvalidType:
		return fmt.Sprintf("Please provide `%s` in the expected format.", f), true
	case intake.IssueInvalidAgreementType:
		return fmt.Sprintf("Please confirm whether `%s` is prenup or postnup.", f), true
	case intake.IssueNeedsClarification, intake.IssueParseInvalidJSON, intake.IssueParseNoJSON:
		return "", false
	default:
		return fmt.Sprintf("Please clarify `%s`.", f), true
	}
}

// NeedsClarification is true for any non-empty issue list.
func NeedsClarification(issues []intake.Issue) bool {
	return len(issues) > 0
}
