package validate

import (
	"reflect"
	"testing"

	"github.com/sant0-9/pact/internal/intake"
)

func completePrenup() *intake.Intake {
	in := intake.New()
	in.Set(intake.FieldClientName, intake.String("Jordan Lee"))
	in.Set(intake.FieldAgreementType, intake.String("prenup"))
	in.Set(intake.FieldState, intake.String("CA"))
	in.Set(intake.FieldAssetsEstimate, intake.Int(250000))
	in.Set(intake.FieldHasChildren, intake.Bool(false))
	in.Set(intake.FieldWeddingDate, intake.String("2027-06-10"))
	in.Set(intake.FieldGoals, intake.String("Protect premarital assets"))
	return in
}

type issueKey struct {
	Code  intake.IssueCode
	Field intake.Field
}

func keys(issues []intake.Issue) []issueKey {
	var out []issueKey
	for _, is := range issues {
		out = append(out, issueKey{is.Code, is.Field})
	}
	return out
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *intake.Intake)
		want   []issueKey
	}{
		{
			name:   "complete prenup",
			mutate: func(*intake.Intake) {},
		},
		{
			name: "missing state and goals in schema order",
			mutate: func(in *intake.Intake) {
				in.Set(intake.FieldGoals, intake.Missing())
				in.Set(intake.FieldState, intake.String(""))
			},
			want: []issueKey{
				{intake.IssueMissingRequiredField, intake.FieldState},
				{intake.IssueMissingRequiredField, intake.FieldGoals},
			},
		},
		{
			name:   "null counts as missing",
			mutate: func(in *intake.Intake) { in.Set(intake.FieldClientName, intake.Null()) },
			want:   []issueKey{{intake.IssueMissingRequiredField, intake.FieldClientName}},
		},
		{
			name:   "prenup without wedding date",
			mutate: func(in *intake.Intake) { in.Set(intake.FieldWeddingDate, intake.String("")) },
			want:   []issueKey{{intake.IssueCrossFieldIncomplete, intake.FieldWeddingDate}},
		},
		{
			name: "postnup without marriage date ignores wedding date",
			mutate: func(in *intake.Intake) {
				in.Set(intake.FieldAgreementType, intake.String("postnup"))
			},
			want: []issueKey{{intake.IssueCrossFieldIncomplete, intake.FieldMarriageDate}},
		},
		{
			name: "invalid agreement type skips cross-field rules",
			mutate: func(in *intake.Intake) {
				in.Set(intake.FieldAgreementType, intake.String("cohabitation"))
				in.Set(intake.FieldWeddingDate, intake.Missing())
			},
			want: []issueKey{{intake.IssueInvalidAgreementType, intake.FieldAgreementType}},
		},
		{
			name:   "boolean agreement type is invalid",
			mutate: func(in *intake.Intake) { in.Set(intake.FieldAgreementType, intake.Bool(false)) },
			want:   []issueKey{{intake.IssueInvalidAgreementType, intake.FieldAgreementType}},
		},
		{
			name:   "non-numeric assets",
			mutate: func(in *intake.Intake) { in.Set(intake.FieldAssetsEstimate, intake.String("a lot")) },
			want:   []issueKey{{intake.IssueInvalidType, intake.FieldAssetsEstimate}},
		},
		{
			name:   "negative assets",
			mutate: func(in *intake.Intake) { in.Set(intake.FieldAssetsEstimate, intake.Float(-0.5)) },
			want:   []issueKey{{intake.IssueInvalidRange, intake.FieldAssetsEstimate}},
		},
		{
			name:   "empty assets is missing and mistyped",
			mutate: func(in *intake.Intake) { in.Set(intake.FieldAssetsEstimate, intake.String("")) },
			want: []issueKey{
				{intake.IssueMissingRequiredField, intake.FieldAssetsEstimate},
				{intake.IssueInvalidType, intake.FieldAssetsEstimate},
			},
		},
		{
			name:   "children not boolean",
			mutate: func(in *intake.Intake) { in.Set(intake.FieldHasChildren, intake.String("two")) },
			want:   []issueKey{{intake.IssueInvalidType, intake.FieldHasChildren}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := completePrenup()
			tt.mutate(in)
			got := keys(Validate(in))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Validate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateEmptyIntakeRunsEveryRule(t *testing.T) {
	got := Validate(intake.New())
	if len(got) != len(intake.RequiredFields()) {
		t.Fatalf("got %d issues, want %d: %v", len(got), len(intake.RequiredFields()), got)
	}
	for i, field := range intake.RequiredFields() {
		if got[i].Code != intake.IssueMissingRequiredField || got[i].Field != field {
			t.Errorf("issue %d = %+v, want missing %s", i, got[i], field)
		}
	}
}

func TestValidateDoesNotMutate(t *testing.T) {
	in := completePrenup()
	in.Set(intake.FieldAssetsEstimate, intake.Int(-1))
	before, _ := in.MarshalJSON()
	Validate(in)
	after, _ := in.MarshalJSON()
	if string(before) != string(after) {
		t.Errorf("intake changed: %s -> %s", before, after)
	}
}
