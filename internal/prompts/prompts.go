package prompts

import (
	_ "embed"
	"strings"
	"text/template"

	"github.com/sant0-9/pact/internal/intake"
)

//go:embed extraction.md
var Extraction string

// UserTextMarker separates the instructions from the user's own words.
const UserTextMarker = "User text:"

var extractionTmpl = template.Must(template.New("extraction").Parse(Extraction))

type extractionData struct {
	Keys   string
	Fields []intake.FieldSpec
}

// BuildExtractionPrompt embeds the schema description and the user text.
func BuildExtractionPrompt(userText string) string {
	var b strings.Builder

	data := extractionData{
		Keys:   strings.Join(intake.FieldNames(), ", "),
		Fields: intake.Schema,
	}
	// the template is static and only ranges over the schema
	_ = extractionTmpl.Execute(&b, data)

	b.WriteString("\n\n")
	b.WriteString(UserTextMarker)
	b.WriteString("\n")
	b.WriteString(userText)
	return b.String()
}
