// Package intake defines the prenup/postnup intake data model shared by every
// pipeline stage: the field schema, tagged field values, issues, policy flags,
// traces and the final result bundle.
package intake

// Field names a schema key
type Field string

const (
	FieldClientName     Field = "client_name"
	FieldAgreementType  Field = "agreement_type"
	FieldState          Field = "state"
	FieldAssetsEstimate Field = "assets_estimate"
	FieldHasChildren    Field = "has_children"
	FieldWeddingDate    Field = "wedding_date"
	FieldMarriageDate   Field = "marriage_date"
	FieldGoals          Field = "goals"
	FieldClientSummary  Field = "client_summary"
)

// Agreement types accepted for agreement_type.
const (
	AgreementPrenup  = "prenup"
	AgreementPostnup = "postnup"
)

// FieldType is the expected type of a field after normalization
type FieldType string

const (
	TypeString FieldType = "string"
	TypeEnum   FieldType = "enum"
	TypeNumber FieldType = "number"
	TypeBool   FieldType = "boolean"
)

// FieldSpec describes one schema entry
type FieldSpec struct {
	Name        Field
	Type        FieldType
	Required    bool
	Description string
}

// Schema lists every field in declaration order. Required fields are the
// unconditional ones; wedding_date and marriage_date depend on agreement_type.
var Schema = []FieldSpec{
	{Name: FieldClientName, Type: TypeString, Required: true, Description: "full name of the client"},
	{Name: FieldAgreementType, Type: TypeEnum, Required: true, Description: `"prenup" or "postnup"`},
	{Name: FieldState, Type: TypeString, Required: true, Description: "US state where the agreement will be signed"},
	{Name: FieldAssetsEstimate, Type: TypeNumber, Required: true, Description: "estimated total assets, non-negative number"},
	{Name: FieldHasChildren, Type: TypeBool, Required: true, Description: "whether either party has children"},
	{Name: FieldWeddingDate, Type: TypeString, Description: "planned wedding date, required for prenup"},
	{Name: FieldMarriageDate, Type: TypeString, Description: "date of marriage, required for postnup"},
	{Name: FieldGoals, Type: TypeString, Required: true, Description: "what the client wants the agreement to achieve"},
	{Name: FieldClientSummary, Type: TypeString, Description: "short neutral summary of the request"},
}

// RequiredFields returns the unconditionally required fields in schema order.
func RequiredFields() []Field {
	var fields []Field
	for _, spec := range Schema {
		if spec.Required {
			fields = append(fields, spec.Name)
		}
	}
	return fields
}

// FieldNames returns every schema field name in order.
func FieldNames() []string {
	names := make([]string, len(Schema))
	for i, spec := range Schema {
		names[i] = string(spec.Name)
	}
	return names
}

// ValidAgreementType reports whether s is one of the accepted agreement types.
func ValidAgreementType(s string) bool {
	return s == AgreementPrenup || s == AgreementPostnup
}
