package validate_test

import (
	"strings"
	"testing"

	"github.com/ccirone2/docx-builder/pkg/schema"
	"github.com/ccirone2/docx-builder/pkg/testsupport"
	"github.com/ccirone2/docx-builder/pkg/validate"
)

func TestValidate_SampleDataPasses(t *testing.T) {
	s := testsupport.MustSchema(t)

	result := validate.Validate(s, testsupport.SampleData())
	if !result.Valid {
		t.Fatalf("expected valid, errors: %v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("expected zero errors, got %v", result.Errors)
	}
}

func TestValidate_EmptyData(t *testing.T) {
	s := testsupport.MustSchema(t)

	result := validate.Validate(s, schema.Data{})
	if result.Valid {
		t.Fatalf("empty data must not validate")
	}
	// 19 required core fields, minus bonding_amount whose condition does not
	// hold while bonding_required is unset.
	if got := len(result.Errors); got != 18 {
		t.Fatalf("expected 18 errors, got %d: %v", got, result.Errors)
	}
	found := false
	for _, msg := range result.Errors {
		if strings.Contains(msg, "(issuer_name)") {
			found = true
			if !strings.HasPrefix(msg, "Missing required field: Organization Name") {
				t.Fatalf("unexpected message shape: %q", msg)
			}
		}
	}
	if !found {
		t.Fatalf("no error for issuer_name: %v", result.Errors)
	}
}

func TestValidate_MinimalSchemaScenario(t *testing.T) {
	raw := []byte(`schema: {id: mini, name: Mini, version: "1"}
core_fields:
  - group: General
    fields:
      - {key: name, label: Name, type: text, required: true}
      - {key: start, label: Start Date, type: date}
`)
	s, err := schema.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	result := validate.Validate(s, schema.Data{"name": "Acme", "start": "2026-03-01"})
	if !result.Valid || len(result.Errors) != 0 {
		t.Fatalf("expected valid result, got %+v", result)
	}

	result = validate.Validate(s, schema.Data{})
	if result.Valid {
		t.Fatalf("expected invalid result")
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Name") {
		t.Fatalf("expected exactly one error mentioning Name, got %v", result.Errors)
	}
}

func TestValidate_ConditionalRequiredness(t *testing.T) {
	s := testsupport.MustSchema(t)

	data := testsupport.SampleData()
	data["bonding_required"] = true
	data["bonding_amount"] = ""
	result := validate.Validate(s, data)
	if result.Valid {
		t.Fatalf("bonding_amount should be required while bonding_required is true")
	}
	if !anyContains(result.Errors, "(bonding_amount)") {
		t.Fatalf("missing bonding_amount error: %v", result.Errors)
	}

	data["bonding_required"] = false
	result = validate.Validate(s, data)
	if anyContains(result.Errors, "(bonding_amount)") {
		t.Fatalf("bonding_amount must be skipped while bonding_required is false: %v", result.Errors)
	}
}

func TestValidate_DateFormat(t *testing.T) {
	s := testsupport.MustSchema(t)

	data := testsupport.SampleData()
	data["rfq_issue_date"] = "03/01/2026"
	result := validate.Validate(s, data)
	if result.Valid {
		t.Fatalf("bad date must fail")
	}
	if !anyContains(result.Errors, "Expected date format YYYY-MM-DD") {
		t.Fatalf("missing date error: %v", result.Errors)
	}
}

func TestValidate_UnknownChoiceWarns(t *testing.T) {
	s := testsupport.MustSchema(t)

	data := testsupport.SampleData()
	data["work_category"] = "Underwater Basket Weaving"
	result := validate.Validate(s, data)
	if !result.Valid {
		t.Fatalf("unknown choice must not block: %v", result.Errors)
	}
	if !anyContains(result.Warnings, "(work_category)") {
		t.Fatalf("expected choice warning: %v", result.Warnings)
	}
}

func TestValidate_NumberCoercion(t *testing.T) {
	raw := []byte(`schema: {id: nums, name: Nums, version: "1"}
core_fields:
  - group: G
    fields:
      - {key: crew_size, label: Crew Size, type: number}
`)
	s, err := schema.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	for _, ok := range []any{12, 12.5, "12.5", " 7 "} {
		result := validate.Validate(s, schema.Data{"crew_size": ok})
		if !result.Valid {
			t.Fatalf("%#v should coerce to a number: %v", ok, result.Errors)
		}
	}

	result := validate.Validate(s, schema.Data{"crew_size": "a dozen"})
	if result.Valid || !anyContains(result.Errors, "Expected a number") {
		t.Fatalf("expected number error, got %+v", result)
	}
}

func TestValidate_Pattern(t *testing.T) {
	s := testsupport.MustSchema(t)

	data := testsupport.SampleData()
	data["issuer_contact_email"] = "not-an-email"
	result := validate.Validate(s, data)
	if result.Valid {
		t.Fatalf("pattern violation must fail")
	}
	if !anyContains(result.Errors, "(issuer_contact_email)") {
		t.Fatalf("missing pattern error: %v", result.Errors)
	}
}

func TestValidate_CompoundSubFields(t *testing.T) {
	raw := []byte(`schema: {id: comp, name: Comp, version: "1"}
core_fields:
  - group: G
    fields:
      - key: contact
        label: Primary Contact
        type: compound
        required: true
        fields:
          - {key: name, label: Name, type: text, required: true}
          - {key: phone, label: Phone, type: text}
`)
	s, err := schema.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	// Missing entirely.
	result := validate.Validate(s, schema.Data{})
	if !anyContains(result.Errors, "Missing required field: Primary Contact (contact)") {
		t.Fatalf("missing compound error: %v", result.Errors)
	}

	// Present but the required sub-field is blank.
	result = validate.Validate(s, schema.Data{
		"contact": map[string]any{"name": "", "phone": "555-0100"},
	})
	if !anyContains(result.Errors, "(contact.name)") {
		t.Fatalf("missing sub-field error: %v", result.Errors)
	}

	// Fully populated.
	result = validate.Validate(s, schema.Data{
		"contact": map[string]any{"name": "Jordan", "phone": ""},
	})
	if !result.Valid {
		t.Fatalf("expected valid, got %v", result.Errors)
	}
}

func anyContains(list []string, substr string) bool {
	for _, item := range list {
		if strings.Contains(item, substr) {
			return true
		}
	}
	return false
}
