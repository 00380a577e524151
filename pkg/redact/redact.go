// Package redact decides how sensitive values are masked when a snapshot is
// exported for a less-trusted consumer, typically an LLM. The policy is
// deterministic: a reader can tell that a field exists without learning its
// value, and numeric fields stay numeric so the snapshot remains well-typed.
package redact

import (
	"strings"

	"github.com/ccirone2/docx-builder/pkg/schema"
)

// PlaceholderText replaces redacted non-numeric values. Import treats any
// string equal to this placeholder as null so a redacted snapshot can never
// overwrite real data on re-import.
const PlaceholderText = "[REDACTED]"

// placeholderNumber replaces redacted number and currency values.
const placeholderNumber = 0

// Value masks a single scalar according to the field type. Nil stays nil,
// numeric types become 0, booleans pass through untouched (they are
// structural, not sensitive), everything else becomes the placeholder.
func Value(t schema.FieldType, v any) any {
	if v == nil {
		return nil
	}
	if t.Numeric() {
		return placeholderNumber
	}
	if t == schema.TypeBoolean {
		return v
	}
	return PlaceholderText
}

// TableRow masks only the flagged columns of one row. Unflagged columns pass
// through; the row is rebuilt on the column set so output stays deterministic.
func TableRow(field schema.FieldDef, row map[string]any) map[string]any {
	if len(field.Columns) == 0 {
		return row
	}
	out := make(map[string]any, len(field.Columns))
	for _, col := range field.Columns {
		v, present := row[col.Key]
		if col.Redact && present && v != nil {
			out[col.Key] = Value(col.Type, v)
			continue
		}
		out[col.Key] = v
	}
	return out
}

// Compound masks only the flagged sub-fields of a compound value.
func Compound(field schema.FieldDef, value map[string]any) map[string]any {
	if len(field.SubFields) == 0 || value == nil {
		return value
	}
	out := make(map[string]any, len(field.SubFields))
	for _, sf := range field.SubFields {
		sv := value[sf.Key]
		if sf.Redact && sv != nil {
			out[sf.Key] = Value(sf.Type, sv)
			continue
		}
		out[sf.Key] = sv
	}
	return out
}

// FlexibleEntries masks every user-defined entry. The schema cannot know
// which freeform values are sensitive, so the block is all-or-nothing: labels
// survive, values do not.
func FlexibleEntries(raw any) any {
	entries := schema.FlexibleEntries(raw)
	if entries == nil {
		return PlaceholderText
	}
	out := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		out = append(out, map[string]any{
			schema.FlexibleLabelKey: entry.Label,
			schema.FlexibleValueKey: PlaceholderText,
		})
	}
	return out
}

// IsPlaceholder reports whether a decoded value is the redaction placeholder.
func IsPlaceholder(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == PlaceholderText
}
