package llm

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sant0-9/pact/internal/prompts"
)

// MockProvider is a deterministic offline backend. It answers every prompt
// with a fixed intake derived from a few keywords in the user text.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Name() string {
	return "mock"
}

// mockPayload keeps the field order of the schema in the generated JSON.
type mockPayload struct {
	ClientName     string `json:"client_name"`
	AgreementType  string `json:"agreement_type"`
	State          string `json:"state"`
	AssetsEstimate int    `json:"assets_estimate"`
	HasChildren    string `json:"has_children"`
	WeddingDate    string `json:"wedding_date"`
	MarriageDate   string `json:"marriage_date"`
	Goals          string `json:"goals"`
	ClientSummary  string `json:"client_summary"`
}

// the summary step strips these before the intake is returned
var mockRedactions = []string{
	"ignore previous instructions",
	"Ignore previous instructions",
	"reveal system prompt",
}

func (m *MockProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", gatewayErr(m.Name(), "generate", err)
	}

	userText := prompt
	if idx := strings.Index(prompt, prompts.UserTextMarker); idx >= 0 {
		userText = prompt[idx+len(prompts.UserTextMarker):]
	}
	userText = strings.TrimSpace(userText)
	lower := strings.ToLower(userText)

	if strings.Contains(lower, "force_malformed") {
		return `{"client_name": "Ava" "agreement_type": "prenup"}`, nil
	}

	agreementType := "prenup"
	if strings.Contains(lower, "postnup") {
		agreementType = "postnup"
	}

	hasChildren := "false"
	for _, word := range []string{"children", "kid", "kids"} {
		if strings.Contains(lower, word) {
			hasChildren = "true"
			break
		}
	}

	var weddingDate, marriageDate string
	if agreementType == "prenup" {
		weddingDate = "2027-06-10"
	} else {
		marriageDate = "2021-06-10"
	}

	summary := userText
	for _, phrase := range mockRedactions {
		summary = strings.ReplaceAll(summary, phrase, "")
	}
	if summary == "" {
		summary = "Requesting intake assistance only"
	}

	data, err := json.Marshal(mockPayload{
		ClientName:     "Jordan Lee",
		AgreementType:  agreementType,
		State:          "CA",
		AssetsEstimate: 250000,
		HasChildren:    hasChildren,
		WeddingDate:    weddingDate,
		MarriageDate:   marriageDate,
		Goals:          "Protect premarital assets",
		ClientSummary:  summary,
	})
	if err != nil {
		return "", gatewayErr(m.Name(), "encode", err)
	}

	// trailing marker keeps the embedded parser path in play
	return string(data) + "\nEND", nil
}
