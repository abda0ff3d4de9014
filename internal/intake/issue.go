package intake

// IssueCode enumerates every issue kind a run can produce
type IssueCode string

const (
	IssueParseInvalidJSON     IssueCode = "parse_invalid_json"
	IssueParseNoJSON          IssueCode = "parse_no_json"
	IssueMissingRequiredField IssueCode = "missing_required_field"
	IssueInvalidAgreementType IssueCode = "invalid_agreement_type"
	IssueInvalidType          IssueCode = "invalid_type"
	IssueInvalidRange         IssueCode = "invalid_range"
	IssueCrossFieldIncomplete IssueCode = "cross_field_incomplete"
	IssueNeedsClarification   IssueCode = "needs_clarification"
)

// IsParseFailure reports whether the code comes from the payload parser.
func (c IssueCode) IsParseFailure() bool {
	return c == IssueParseInvalidJSON || c == IssueParseNoJSON
}

// Issue is one parsing or validation problem. Field is empty when the issue
// is not tied to a single field.
type Issue struct {
	Code    IssueCode `json:"code"`
	Field   Field     `json:"field,omitempty"`
	Message string    `json:"message"`
}

// FlagCode enumerates policy flag kinds
type FlagCode string

const (
	FlagLegalAdviceRequest     FlagCode = "legal_advice_request"
	FlagPromptInjectionAttempt FlagCode = "prompt_injection_attempt"
)

// Action is the handling a policy flag asks the caller for
type Action string

const (
	ActionRefuseLegalAdvice Action = "refuse_legal_advice"
	ActionRefuseAndLog      Action = "refuse_and_log"
)

// PolicyFlag is advisory; it never blocks a run.
type PolicyFlag struct {
	Code    FlagCode `json:"code"`
	Message string   `json:"message"`
	Action  Action   `json:"action"`
}
