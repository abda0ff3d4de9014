// Package validate checks a normalized intake against the schema rules:
// required fields, types, ranges and cross-field consistency.
package validate

import (
	"fmt"

	"github.com/sant0-9/pact/internal/intake"
)

type rule func(in *intake.Intake) []intake.Issue

// rules run in this order, every time, with no short-circuit.
var rules = []rule{
	requiredFields,
	agreementType,
	assetsEstimate,
	hasChildren,
	crossField(intake.AgreementPrenup, intake.FieldWeddingDate),
	crossField(intake.AgreementPostnup, intake.FieldMarriageDate),
}

// Validate returns every issue found in the intake, in rule order.
func Validate(in *intake.Intake) []intake.Issue {
	var issues []intake.Issue
	for _, r := range rules {
		issues = append(issues, r(in)...)
	}
	return issues
}

func requiredFields(in *intake.Intake) []intake.Issue {
	var issues []intake.Issue
	for _, field := range intake.RequiredFields() {
		v := in.Get(field)
		if !v.Present() || (v.IsString() && v.Str() == "") {
			issues = append(issues, intake.Issue{
				Code:    intake.IssueMissingRequiredField,
				Field:   field,
				Message: fmt.Sprintf("Missing required field: %s", field),
			})
		}
	}
	return issues
}

func agreementType(in *intake.Intake) []intake.Issue {
	v := in.Get(intake.FieldAgreementType)
	if !v.Present() || (v.IsString() && v.Str() == "") {
		return nil
	}
	if v.IsString() && intake.ValidAgreementType(v.Str()) {
		return nil
	}
	return []intake.Issue{{
		Code:    intake.IssueInvalidAgreementType,
		Field:   intake.FieldAgreementType,
		Message: "agreement_type must be prenup or postnup",
	}}
}

// type is checked before range; a range on a non-number means nothing
func assetsEstimate(in *intake.Intake) []intake.Issue {
	v := in.Get(intake.FieldAssetsEstimate)
	switch {
	case !v.Present():
		return nil
	case !v.IsNumber():
		return []intake.Issue{{
			Code:    intake.IssueInvalidType,
			Field:   intake.FieldAssetsEstimate,
			Message: "assets_estimate must be a number",
		}}
	case v.Float64() < 0:
		return []intake.Issue{{
			Code:    intake.IssueInvalidRange,
			Field:   intake.FieldAssetsEstimate,
			Message: "assets_estimate cannot be negative",
		}}
	}
	return nil
}

func hasChildren(in *intake.Intake) []intake.Issue {
	v := in.Get(intake.FieldHasChildren)
	if !v.Present() || v.IsBool() {
		return nil
	}
	return []intake.Issue{{
		Code:    intake.IssueInvalidType,
		Field:   intake.FieldHasChildren,
		Message: "has_children must be true/false",
	}}
}

// crossField requires dateField when agreement_type equals kind. An invalid
// agreement_type matches neither kind and skips both checks.
func crossField(kind string, dateField intake.Field) rule {
	return func(in *intake.Intake) []intake.Issue {
		at := in.Get(intake.FieldAgreementType)
		if !at.IsString() || at.Str() != kind {
			return nil
		}
		if in.Get(dateField).Truthy() {
			return nil
		}
		return []intake.Issue{{
			Code:    intake.IssueCrossFieldIncomplete,
			Field:   dateField,
			Message: fmt.Sprintf("%s is required for %s intake", dateField, kind),
		}}
	}
}
