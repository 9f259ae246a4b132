// Package formschema validates result payloads against data-driven form
// templates. Validation is deliberately soft for numeric ranges: clinical
// values can be legitimately abnormal, so an out-of-range number produces a
// warning the submitter must acknowledge, while a missing required field is a
// hard failure.
package formschema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hayder75/clinic-core/internal/models"
)

// Warning flags a value that is suspicious but acceptable after confirmation.
type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result of validating a payload against a template.
type Result struct {
	Errors   []string  `json:"errors,omitempty"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// OK reports whether the payload passed hard validation.
func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

// Validate checks values against the template's fields. Unknown keys are
// rejected so typos never silently persist.
func Validate(fields []models.TemplateField, values map[string]any) *Result {
	res := &Result{}

	// No schema means the service has no template; free-form payloads pass.
	if len(fields) == 0 {
		return res
	}

	known := make(map[string]models.TemplateField, len(fields))
	for _, f := range fields {
		known[f.Name] = f
	}

	for name := range values {
		if _, ok := known[name]; !ok {
			res.Errors = append(res.Errors, fmt.Sprintf("unknown field %q", name))
		}
	}

	for _, f := range fields {
		raw, present := values[f.Name]
		if !present || isEmpty(raw) {
			if f.Required {
				res.Errors = append(res.Errors, fmt.Sprintf("field %q is required", f.Name))
			}
			continue
		}

		switch f.Type {
		case models.FieldTypeNumber:
			n, err := toNumber(raw)
			if err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("field %q must be a number", f.Name))
				continue
			}
			if f.Min != nil && n < *f.Min {
				res.Warnings = append(res.Warnings, Warning{
					Field:   f.Name,
					Message: fmt.Sprintf("%v is below the expected minimum %v%s", n, *f.Min, unitSuffix(f.Unit)),
				})
			}
			if f.Max != nil && n > *f.Max {
				res.Warnings = append(res.Warnings, Warning{
					Field:   f.Name,
					Message: fmt.Sprintf("%v is above the expected maximum %v%s", n, *f.Max, unitSuffix(f.Unit)),
				})
			}
		case models.FieldTypeSelect:
			s, ok := raw.(string)
			if !ok {
				res.Errors = append(res.Errors, fmt.Sprintf("field %q must be a string option", f.Name))
				continue
			}
			if !contains(f.Options, s) {
				res.Errors = append(res.Errors, fmt.Sprintf("field %q must be one of %s", f.Name, strings.Join(f.Options, ", ")))
			}
		case models.FieldTypeText:
			if _, ok := raw.(string); !ok {
				res.Errors = append(res.Errors, fmt.Sprintf("field %q must be text", f.Name))
			}
		default:
			res.Errors = append(res.Errors, fmt.Sprintf("field %q has unsupported type %q", f.Name, f.Type))
		}
	}

	return res
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// toNumber accepts JSON numbers and numeric strings, since form clients send
// both.
func toNumber(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	}
	return 0, fmt.Errorf("not a number: %v", v)
}

func contains(opts []string, s string) bool {
	for _, o := range opts {
		if o == s {
			return true
		}
	}
	return false
}

func unitSuffix(unit string) string {
	if unit == "" {
		return ""
	}
	return " " + unit
}
