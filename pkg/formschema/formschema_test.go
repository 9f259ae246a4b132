package formschema

import (
	"strings"
	"testing"

	"github.com/hayder75/clinic-core/internal/models"
)

func f64(v float64) *float64 { return &v }

func cbcFields() []models.TemplateField {
	return []models.TemplateField{
		{Name: "wbc", Label: "WBC", Type: models.FieldTypeNumber, Min: f64(4), Max: f64(11), Unit: "x10^9/L", Required: true},
		{Name: "hgb", Label: "Hemoglobin", Type: models.FieldTypeNumber, Min: f64(12), Max: f64(17), Unit: "g/dL", Required: true},
		{Name: "morphology", Label: "Morphology", Type: models.FieldTypeSelect, Options: []string{"normal", "abnormal"}},
		{Name: "notes", Label: "Notes", Type: models.FieldTypeText},
	}
}

func TestValidateCleanPayload(t *testing.T) {
	res := Validate(cbcFields(), map[string]any{
		"wbc":        7.2,
		"hgb":        14.0,
		"morphology": "normal",
		"notes":      "unremarkable",
	})
	if !res.OK() {
		t.Fatalf("expected no errors, got %v", res.Errors)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", res.Warnings)
	}
}

func TestValidateMissingRequiredIsHardFailure(t *testing.T) {
	res := Validate(cbcFields(), map[string]any{"wbc": 7.2})
	if res.OK() {
		t.Fatal("missing required field must be a hard failure")
	}
	found := false
	for _, e := range res.Errors {
		if strings.Contains(e, `"hgb"`) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an error naming hgb, got %v", res.Errors)
	}
}

func TestValidateEmptyStringCountsAsMissing(t *testing.T) {
	res := Validate(cbcFields(), map[string]any{"wbc": 7.2, "hgb": "  "})
	if res.OK() {
		t.Fatal("whitespace value for a required field must fail")
	}
}

func TestValidateOutOfRangeIsWarningOnly(t *testing.T) {
	res := Validate(cbcFields(), map[string]any{"wbc": 25.0, "hgb": 14.0})
	if !res.OK() {
		t.Fatalf("out-of-range number must not hard-fail, got errors %v", res.Errors)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", res.Warnings)
	}
	if res.Warnings[0].Field != "wbc" {
		t.Errorf("warning should flag wbc, got %q", res.Warnings[0].Field)
	}
	if !strings.Contains(res.Warnings[0].Message, "x10^9/L") {
		t.Errorf("warning should carry the unit, got %q", res.Warnings[0].Message)
	}
}

func TestValidateBelowMinimumWarns(t *testing.T) {
	res := Validate(cbcFields(), map[string]any{"wbc": 7.0, "hgb": 6.5})
	if !res.OK() {
		t.Fatalf("unexpected errors %v", res.Errors)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Field != "hgb" {
		t.Fatalf("expected a single hgb warning, got %v", res.Warnings)
	}
}

func TestValidateNumericString(t *testing.T) {
	res := Validate(cbcFields(), map[string]any{"wbc": "7.2", "hgb": "14"})
	if !res.OK() {
		t.Fatalf("numeric strings must be accepted, got %v", res.Errors)
	}
}

func TestValidateNonNumberRejected(t *testing.T) {
	res := Validate(cbcFields(), map[string]any{"wbc": "high", "hgb": 14.0})
	if res.OK() {
		t.Fatal("non-numeric value for a number field must fail")
	}
}

func TestValidateUnknownFieldRejected(t *testing.T) {
	res := Validate(cbcFields(), map[string]any{"wbc": 7.2, "hgb": 14.0, "wbcc": 1.0})
	if res.OK() {
		t.Fatal("unknown keys must be rejected")
	}
}

func TestValidateSelectOption(t *testing.T) {
	res := Validate(cbcFields(), map[string]any{"wbc": 7.2, "hgb": 14.0, "morphology": "weird"})
	if res.OK() {
		t.Fatal("a select value outside its options must fail")
	}

	res = Validate(cbcFields(), map[string]any{"wbc": 7.2, "hgb": 14.0, "morphology": "abnormal"})
	if !res.OK() {
		t.Fatalf("a listed option must pass, got %v", res.Errors)
	}
}

func TestValidateWithoutSchemaAcceptsFreeForm(t *testing.T) {
	res := Validate(nil, map[string]any{"finding": "no caries", "score": 3})
	if !res.OK() {
		t.Fatalf("a service without a template must accept free-form values, got %v", res.Errors)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", res.Warnings)
	}
}

func TestValidateOptionalFieldsMayBeOmitted(t *testing.T) {
	res := Validate(cbcFields(), map[string]any{"wbc": 7.2, "hgb": 14.0})
	if !res.OK() {
		t.Fatalf("optional fields must be omittable, got %v", res.Errors)
	}
}
