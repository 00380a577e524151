package schema

// Data is the flat field-key to value mapping the rest of the engine operates
// on. Table values are []map[string]any rows, compound values are
// map[string]any sub-field mappings. The engine never mutates a Data in
// place; every transformation returns a fresh mapping.
type Data = map[string]any

// FlexibleFieldsKey is the reserved Data key holding schema-unaware freeform
// entries. Its value is an ordered list of label/value pairs.
const FlexibleFieldsKey = "_flexible_fields"

// Snapshot mapping keys used for flexible entries.
const (
	FlexibleLabelKey = "field_label"
	FlexibleValueKey = "field_value"
)

// FlexibleEntry is one user-defined label/value pair.
type FlexibleEntry struct {
	Label string
	Value any
}

// FlexibleEntries normalizes the raw value stored under FlexibleFieldsKey into
// a typed slice. Entries that are not mappings are skipped.
func FlexibleEntries(raw any) []FlexibleEntry {
	list, ok := raw.([]any)
	if !ok {
		if typed, ok := raw.([]map[string]any); ok {
			list = make([]any, len(typed))
			for i, m := range typed {
				list[i] = m
			}
		} else {
			return nil
		}
	}

	var entries []FlexibleEntry
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		label, _ := m[FlexibleLabelKey].(string)
		entries = append(entries, FlexibleEntry{Label: label, Value: m[FlexibleValueKey]})
	}
	return entries
}
