// Package testsupport provides the shared schema fixture and sample data used
// by package tests across the module.
package testsupport

import (
	"embed"
	"testing"

	"github.com/ccirone2/docx-builder/pkg/schema"
)

//go:embed testdata
var fixtures embed.FS

// SchemaBytes returns the raw RFQ electric-utility schema fixture.
func SchemaBytes() []byte {
	raw, err := fixtures.ReadFile("testdata/rfq_electric_utility.yaml")
	if err != nil {
		panic(err)
	}
	return raw
}

// MustSchema parses the RFQ fixture, failing the test on error.
func MustSchema(t *testing.T) *schema.Schema {
	t.Helper()

	parsed, err := schema.Parse(SchemaBytes())
	if err != nil {
		t.Fatalf("parse fixture schema: %v", err)
	}
	return parsed
}

// SampleData returns a realistic data mapping with every required field
// filled, including table rows, a compound value, and flexible entries.
// Callers may mutate the returned mapping freely; each call builds a fresh one.
func SampleData() schema.Data {
	return schema.Data{
		"issuer_name":         "Ozark Electric Cooperative",
		"issuer_address":      "516 E Hwy 76\nBranson, MO 65616",
		"issuer_contact_name": "Jordan Smith",
		"issuer_contact_email": "jsmith@ozarkelectric.example.com",
		"issuer_contact_phone": "(417) 555-0100",

		"rfq_number":     "RFQ-2026-042",
		"rfq_title":      "Distribution Line Reconstruction - Hwy 65 Corridor",
		"rfq_issue_date": "2026-03-01",
		"rfq_due_date":   "2026-03-28",
		"rfq_due_time":   "2:00 PM CST",

		"project_description": "Reconstruct 3.2 miles of 12.47kV distribution line.",
		"project_location":    "Taney County, MO",
		"work_category":       "Distribution Line Construction",
		"estimated_duration":  "90 calendar days",

		"scope_summary": "Replace 45 wooden poles with steel, restring conductor.",
		"work_items": []map[string]any{
			{
				"item_number":    "1",
				"description":    "Set 45' Class 2 steel poles",
				"quantity":       45,
				"unit":           "EA",
				"unit_price":     4200,
				"extended_price": 189000,
			},
			{
				"item_number":    "2",
				"description":    "String 477 ACSR conductor",
				"quantity":       3.2,
				"unit":           "MI",
				"unit_price":     28000,
				"extended_price": 89600,
			},
		},
		"specifications": "All work per NESC and RUS standards.",

		"submission_method":  "Email Only",
		"submission_address": "rfq@ozarkelectric.example.com",
		"required_documents": []map[string]any{
			{"document_name": "Completed Bid Form", "required": true, "notes": ""},
			{"document_name": "Proof of Insurance", "required": true, "notes": "Min $1M GL"},
		},

		"payment_terms":          "Net 30",
		"insurance_requirements": "GL: $1M/$2M, Auto: $1M, WC: Statutory",
		"prevailing_wage":        false,
		"bonding_required":       true,
		"bonding_amount":         "100% of contract value",

		"safety_requirements": map[string]any{
			"general":                 "All crew must have OSHA 10-hr Construction.\nDaily toolbox talks required.",
			"hot_work_permits":        "Required for all welding and cutting operations.",
			"lockout_tagout":          "LOTO per OSHA 1910.147 and utility-specific procedures.",
			"confined_space":          "",
			"ppe":                     "FR clothing, hard hat, safety glasses, rubber gloves for energized work.",
			"training_certifications": "Pole top rescue, First Aid/CPR, CDL Class A.",
			"incident_reporting":      "Immediate notification for any recordable incident.",
		},

		schema.FlexibleFieldsKey: []map[string]any{
			{"field_label": "Drug Testing Policy", "field_value": "Random testing required"},
		},
	}
}
