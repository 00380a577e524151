// Package prompt renders a schema into LLM-facing text artifacts: a fill-in
// prompt an LLM completes between START/END markers, and a compact schema
// reference for answering questions about the structure itself.
package prompt

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/flosch/pongo2/v6"

	"github.com/ccirone2/docx-builder/pkg/redact"
	"github.com/ccirone2/docx-builder/pkg/render"
	"github.com/ccirone2/docx-builder/pkg/schema"
)

//go:embed templates
var templates embed.FS

// ContextKey is the Options.Context key holding free-text project context
// that is echoed into the prompt header to guide the LLM.
const ContextKey = "project_context"

const (
	startMarker = "# --- START YAML ---"
	endMarker   = "# --- END YAML ---"
)

// FillRenderer produces the fill-in prompt: an instruction preamble followed
// by a commented YAML skeleton carrying existing values, defaults, and
// placeholders. Redaction defaults to on for this renderer since the output
// is meant to leave the trust boundary.
type FillRenderer struct {
	once     sync.Once
	preamble *pongo2.Template
	err      error
}

// NewFillRenderer returns a renderer registered under the name "fill-in".
func NewFillRenderer() *FillRenderer {
	return &FillRenderer{}
}

func (r *FillRenderer) Name() string        { return "fill-in" }
func (r *FillRenderer) ContentType() string { return "text/plain; charset=utf-8" }

// Render builds the complete prompt. The preamble goes through the template
// engine; the YAML skeleton is line-built since its indentation is the
// payload.
func (r *FillRenderer) Render(_ context.Context, s *schema.Schema, opts render.Options) ([]byte, error) {
	r.once.Do(func() {
		set := pongo2.NewSet("prompt", pongo2.NewFSLoader(templates))
		r.preamble, r.err = set.FromFile("templates/preamble.tpl")
	})
	if r.err != nil {
		return nil, fmt.Errorf("prompt: load preamble: %w", r.err)
	}

	var contextLines []string
	if raw, ok := opts.Context[ContextKey].(string); ok && strings.TrimSpace(raw) != "" {
		contextLines = strings.Split(strings.TrimSpace(raw), "\n")
	}

	head, err := r.preamble.Execute(pongo2.Context{
		"schema_name":   s.Name,
		"context_lines": contextLines,
	})
	if err != nil {
		return nil, fmt.Errorf("prompt: render preamble: %w", err)
	}

	data := opts.Data
	if data == nil {
		data = schema.Data{}
	}

	lines := []string{"", startMarker, ""}

	lines = append(lines,
		"_meta:",
		"  schema_id: "+s.ID,
		"  schema_version: "+s.Version,
		"  export_type: full_snapshot",
		fmt.Sprintf("  redacted: %t", opts.Redact),
		"")

	for _, g := range s.CoreGroups {
		lines = append(lines, fmt.Sprintf("# --- %s ---", g.Name), g.Key()+":")
		for _, f := range g.Fields {
			lines = append(lines, fieldLines(f, data[f.Key], opts.Redact)...)
		}
		lines = append(lines, "")
	}

	for _, g := range s.OptionalGroups {
		lines = append(lines, fmt.Sprintf("# --- %s (OPTIONAL) ---", g.Name), g.Key()+":")
		for _, f := range g.Fields {
			lines = append(lines, fieldLines(f, data[f.Key], opts.Redact)...)
		}
		lines = append(lines, "")
	}

	if s.Flexible.Enabled {
		lines = append(lines, fmt.Sprintf("# --- %s (OPTIONAL) ---", s.Flexible.Label))
		desc := s.Flexible.Description
		if desc == "" {
			desc = "Add any project-specific fields not covered above."
		}
		lines = append(lines, "# "+desc, "additional_information:")
		if entries := schema.FlexibleEntries(data[schema.FlexibleFieldsKey]); len(entries) > 0 {
			for _, entry := range entries {
				value := entry.Value
				if opts.Redact {
					value = redact.PlaceholderText
				}
				lines = append(lines,
					fmt.Sprintf("  - %s: %v", schema.FlexibleLabelKey, entry.Label),
					fmt.Sprintf("    %s: %v", schema.FlexibleValueKey, value))
			}
		} else {
			lines = append(lines,
				"  - "+schema.FlexibleLabelKey+": <field name>",
				"    "+schema.FlexibleValueKey+": <value>")
		}
		lines = append(lines, "")
	}

	lines = append(lines, endMarker)

	return []byte(head + strings.Join(lines, "\n") + "\n"), nil
}

// fieldLines renders one field as a directive comment plus its YAML entry.
func fieldLines(f schema.FieldDef, existing any, redacted bool) []string {
	lines := []string{"  # " + f.Label + " [" + strings.Join(directives(f, redacted), ", ") + "]"}

	if redacted && f.Redact && existing != nil {
		return append(lines, "  "+f.Key+": "+redact.PlaceholderText)
	}

	switch {
	case f.IsCompound():
		lines = append(lines, compoundLines(f, existing, redacted)...)
	case f.IsTable():
		lines = append(lines, tableLines(f, existing, redacted)...)
	case existing != nil:
		lines = append(lines, "  "+f.Key+": "+formatValue(f.Type, existing, 4))
	case f.Default != nil:
		lines = append(lines, "  "+f.Key+": "+formatValue(f.Type, f.Default, 4))
	case redacted && f.Redact:
		lines = append(lines, "  "+f.Key+": "+redact.PlaceholderText)
	default:
		lines = append(lines, "  "+f.Key+": <"+strings.ToLower(f.Label)+">")
	}
	return lines
}

// directives builds the bracketed attribute list of a field comment.
func directives(f schema.FieldDef, redacted bool) []string {
	parts := make([]string, 0, 4)
	if f.Required {
		parts = append(parts, "REQUIRED")
	} else {
		parts = append(parts, "optional")
	}
	parts = append(parts, string(f.Type))
	if f.Redact && redacted {
		parts = append(parts, "REDACTED, do not fill")
	}
	if len(f.Choices) > 0 {
		parts = append(parts, "choices: "+strings.Join(f.Choices, " | "))
	}
	if f.ConditionalOn != nil {
		parts = append(parts, fmt.Sprintf("only if %s=%v", f.ConditionalOn.Field, f.ConditionalOn.Value))
	}
	if f.Placeholder != "" && !(f.Redact && redacted) {
		parts = append(parts, f.Placeholder)
	}
	return parts
}

func tableLines(f schema.FieldDef, existing any, redacted bool) []string {
	lines := []string{"  " + f.Key + ":"}

	redactedCols := make(map[string]bool)
	if redacted {
		for _, col := range f.Columns {
			if col.Redact {
				redactedCols[col.Key] = true
			}
		}
	}

	rows := tableRows(existing)
	if len(rows) == 0 {
		rows = f.DefaultRows
	}

	if len(rows) == 0 {
		for i, col := range f.Columns {
			prefix := "      "
			if i == 0 {
				prefix = "    - "
			}
			if redactedCols[col.Key] {
				lines = append(lines, prefix+col.Key+": "+redact.PlaceholderText)
			} else {
				lines = append(lines, prefix+col.Key+": <"+strings.ToLower(col.Label)+">")
			}
		}
		return lines
	}

	for _, row := range rows {
		for i, col := range f.Columns {
			prefix := "      "
			if i == 0 {
				prefix = "    - "
			}
			val, present := row[col.Key]
			switch {
			case redactedCols[col.Key] && present && val != nil:
				lines = append(lines, prefix+col.Key+": "+fmt.Sprintf("%v", redact.Value(col.Type, val)))
			case present:
				lines = append(lines, prefix+col.Key+": "+formatValue(col.Type, val, len(prefix)+2))
			default:
				lines = append(lines, prefix+col.Key+": <"+strings.ToLower(col.Label)+">")
			}
		}
	}
	return lines
}

func compoundLines(f schema.FieldDef, existing any, redacted bool) []string {
	lines := []string{"  " + f.Key + ":"}

	values, _ := existing.(map[string]any)
	for _, sf := range f.SubFields {
		lines = append(lines, "    # "+sf.Label+" ["+strings.Join(directives(sf, redacted), ", ")+"]")

		sv := values[sf.Key]
		switch {
		case redacted && sf.Redact && sv != nil:
			lines = append(lines, "    "+sf.Key+": "+redact.PlaceholderText)
		case sv != nil:
			lines = append(lines, "    "+sf.Key+": "+formatValue(sf.Type, sv, 6))
		case sf.Default != nil:
			lines = append(lines, "    "+sf.Key+": "+formatValue(sf.Type, sf.Default, 6))
		case redacted && sf.Redact:
			lines = append(lines, "    "+sf.Key+": "+redact.PlaceholderText)
		default:
			lines = append(lines, "    "+sf.Key+": <"+strings.ToLower(sf.Label)+">")
		}
	}
	return lines
}

// formatValue renders an existing value inline. Multiline strings become a
// literal block with content indented past the key; indent is the content
// column.
func formatValue(t schema.FieldType, v any, indent int) string {
	if v == nil {
		return ""
	}
	switch t {
	case schema.TypeBoolean:
		return fmt.Sprintf("%t", coerceDisplayBool(v))
	case schema.TypeDate:
		if tm, ok := v.(time.Time); ok {
			return tm.Format("2006-01-02")
		}
	}
	if s, ok := v.(string); ok {
		if strings.Contains(s, "\n") {
			pad := strings.Repeat(" ", indent)
			var b strings.Builder
			b.WriteString("|")
			for _, line := range strings.Split(s, "\n") {
				b.WriteString("\n" + pad + line)
			}
			return b.String()
		}
		if needsQuote(s) {
			return "'" + strings.ReplaceAll(s, "'", "''") + "'"
		}
		return s
	}
	return fmt.Sprintf("%v", v)
}

// needsQuote reports whether a single-line string cannot stand as a plain
// YAML scalar in value position.
func needsQuote(s string) bool {
	if s == "" {
		return false
	}
	if strings.Contains(s, ": ") || strings.HasSuffix(s, ":") || strings.Contains(s, " #") {
		return true
	}
	if s != strings.TrimSpace(s) {
		return true
	}
	switch s[0] {
	case '#', '&', '*', '!', '|', '>', '%', '@', '`', '"', '\'', '{', '}', '[', ']', ',':
		return true
	}
	return strings.HasPrefix(s, "- ") || s == "-"
}

func coerceDisplayBool(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return v != nil
}

func tableRows(v any) []map[string]any {
	switch rows := v.(type) {
	case []map[string]any:
		return rows
	case []any:
		out := make([]map[string]any, 0, len(rows))
		for _, r := range rows {
			if m, ok := r.(map[string]any); ok {
				out = append(out, m)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return nil
	}
}
