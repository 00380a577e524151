package prompt_test

import (
	"context"
	"strings"
	"testing"

	"github.com/ccirone2/docx-builder/pkg/prompt"
	"github.com/ccirone2/docx-builder/pkg/render"
	"github.com/ccirone2/docx-builder/pkg/testsupport"
)

func TestSchemaReference(t *testing.T) {
	s := testsupport.MustSchema(t)

	out, err := prompt.NewReferenceRenderer().Render(context.Background(), s, render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	text := string(out)

	for _, want := range []string{
		"# Schema Reference: Electric Utility RFQ",
		"# ID: rfq_electric_utility | Version: 1.2",
		"# Total fields: 29 (19 required)",
		"## [CORE] Issuing Organization",
		"## [OPTIONAL] Safety Requirements",
		"* issuer_name: text [redacted on export]",
		"* work_category: choice -> Distribution Line Construction",
		"* bonding_amount: text (if bonding_required)",
		"* work_items: table [item_number, description, quantity, unit, unit_price, extended_price]",
		"hint: RFQ-2026-001",
		"## [FLEXIBLE] Additional Information",
		"User-defined key-value pairs (max 15)",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in reference:\n%s", want, text)
		}
	}

	// Compound sub-fields appear in dot notation with their own markers.
	if !strings.Contains(text, "* .general: multiline") {
		t.Fatalf("required sub-field missing:\n%s", text)
	}
	for _, sub := range []string{".lockout_tagout", ".ppe", ".incident_reporting"} {
		if !strings.Contains(text, sub) {
			t.Fatalf("sub-field %s missing:\n%s", sub, text)
		}
	}
}
