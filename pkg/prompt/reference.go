package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/ccirone2/docx-builder/pkg/render"
	"github.com/ccirone2/docx-builder/pkg/schema"
)

// ReferenceRenderer produces a compact schema listing for sharing with an
// LLM, so it can answer questions about the structure without receiving a
// full fill-in prompt. Options.Data and Options.Redact are ignored; the
// output describes the schema, not any values.
type ReferenceRenderer struct{}

// NewReferenceRenderer returns a renderer registered under the name "reference".
func NewReferenceRenderer() *ReferenceRenderer {
	return &ReferenceRenderer{}
}

func (ReferenceRenderer) Name() string        { return "reference" }
func (ReferenceRenderer) ContentType() string { return "text/plain; charset=utf-8" }

func (ReferenceRenderer) Render(_ context.Context, s *schema.Schema, _ render.Options) ([]byte, error) {
	var lines []string
	lines = append(lines,
		"# Schema Reference: "+s.Name,
		fmt.Sprintf("# ID: %s | Version: %s", s.ID, s.Version),
		fmt.Sprintf("# Total fields: %d (%d required)", len(s.AllFields()), len(s.RequiredFields())),
		"")

	for _, g := range s.AllGroups() {
		tag := "CORE"
		if g.Section == schema.SectionOptional {
			tag = "OPTIONAL"
		}
		lines = append(lines, fmt.Sprintf("## [%s] %s", tag, g.Name))
		for _, f := range g.Fields {
			lines = append(lines, "  "+marker(f.Required)+f.Key+": "+typeInfo(f))
			if f.Placeholder != "" {
				lines = append(lines, "      hint: "+f.Placeholder)
			}
			for _, sf := range f.SubFields {
				lines = append(lines, "    "+marker(sf.Required)+"."+sf.Key+": "+subTypeInfo(sf))
				if sf.Placeholder != "" {
					lines = append(lines, "        hint: "+sf.Placeholder)
				}
			}
		}
		lines = append(lines, "")
	}

	if s.Flexible.Enabled {
		lines = append(lines,
			"## [FLEXIBLE] "+s.Flexible.Label,
			fmt.Sprintf("  User-defined key-value pairs (max %d)", s.Flexible.MaxEntries))
	}

	return []byte(strings.Join(lines, "\n") + "\n"), nil
}

func marker(required bool) string {
	if required {
		return "* "
	}
	return "  "
}

func typeInfo(f schema.FieldDef) string {
	info := string(f.Type)
	if f.Redact {
		info += " [redacted on export]"
	}
	if len(f.Choices) > 0 {
		info += " -> " + strings.Join(f.Choices, " | ")
	}
	if f.ConditionalOn != nil {
		info += fmt.Sprintf(" (if %s)", f.ConditionalOn.Field)
	}
	if f.IsTable() {
		cols := make([]string, 0, len(f.Columns))
		for _, col := range f.Columns {
			cols = append(cols, col.Key)
		}
		info += " [" + strings.Join(cols, ", ") + "]"
	}
	return info
}

func subTypeInfo(sf schema.FieldDef) string {
	info := string(sf.Type)
	if sf.Redact {
		info += " [redacted on export]"
	}
	return info
}
