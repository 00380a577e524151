package exchange

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ccirone2/docx-builder/pkg/schema"
)

// Import parses a snapshot back into a data mapping. It walks the raw node
// tree in document order so warnings come out in a stable sequence, matches
// fields by key regardless of which group they appear under, and reports
// anything it skipped as a warning. A snapshot from a different schema still
// imports its matching fields, with a warning up front.
func Import(s *schema.Schema, text []byte) (schema.Data, []string) {
	var doc yaml.Node
	if err := yaml.Unmarshal(text, &doc); err != nil {
		return schema.Data{}, []string{fmt.Sprintf("YAML parse error: %v", err)}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return schema.Data{}, []string{"Expected a YAML mapping at the top level."}
	}
	root := doc.Content[0]

	byKey := make(map[string]schema.FieldDef)
	for _, f := range s.AllFields() {
		if _, dup := byKey[f.Key]; !dup {
			byKey[f.Key] = f
		}
	}

	data := schema.Data{}
	var warnings []string

	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		valNode := root.Content[i+1]

		switch key {
		case MetaKey:
			if w := checkMeta(s, valNode); w != "" {
				warnings = append(warnings, w)
			}
		case AdditionalInformationKey:
			var flex any
			if err := valNode.Decode(&flex); err != nil {
				warnings = append(warnings, fmt.Sprintf("Skipped unreadable block: '%s'", key))
				continue
			}
			if entries := schema.FlexibleEntries(flex); len(entries) > 0 {
				data[schema.FlexibleFieldsKey] = flex
			}
		default:
			if valNode.Kind != yaml.MappingNode {
				continue
			}
			importGroup(valNode, byKey, data, &warnings)
		}
	}
	return data, warnings
}

func importGroup(group *yaml.Node, byKey map[string]schema.FieldDef, data schema.Data, warnings *[]string) {
	for i := 0; i+1 < len(group.Content); i += 2 {
		fieldKey := group.Content[i].Value
		field, known := byKey[fieldKey]
		if !known {
			*warnings = append(*warnings, fmt.Sprintf("Skipped unknown field: '%s'", fieldKey))
			continue
		}

		var raw any
		if err := group.Content[i+1].Decode(&raw); err != nil {
			*warnings = append(*warnings, fmt.Sprintf("Skipped unreadable field: '%s'", fieldKey))
			continue
		}
		data[fieldKey] = importField(field, raw)
	}
}

// importField converts one decoded value into the engine representation.
// Compound values iterate the schema's sub-fields: missing sub-fields become
// nil, keys the schema does not declare are dropped. Table rows run each cell
// through its column type so placeholders and coercions apply per cell.
func importField(field schema.FieldDef, raw any) any {
	switch {
	case field.IsCompound():
		m, ok := raw.(map[string]any)
		if !ok {
			return deserializeValue(field.Type, raw)
		}
		out := make(map[string]any, len(field.SubFields))
		for _, sf := range field.SubFields {
			out[sf.Key] = deserializeValue(sf.Type, m[sf.Key])
		}
		return out
	case field.IsTable():
		rows, ok := raw.([]any)
		if !ok {
			return deserializeValue(field.Type, raw)
		}
		out := make([]map[string]any, 0, len(rows))
		for _, r := range rows {
			row, ok := r.(map[string]any)
			if !ok {
				continue
			}
			cells := make(map[string]any, len(row))
			for k, v := range row {
				if col, declared := field.Column(k); declared {
					cells[k] = deserializeValue(col.Type, v)
				} else {
					cells[k] = v
				}
			}
			out = append(out, cells)
		}
		return out
	default:
		return deserializeValue(field.Type, raw)
	}
}

func checkMeta(s *schema.Schema, node *yaml.Node) string {
	var meta struct {
		SchemaID string `yaml:"schema_id"`
	}
	if err := node.Decode(&meta); err != nil {
		return ""
	}
	if meta.SchemaID != "" && meta.SchemaID != s.ID {
		return fmt.Sprintf(
			"Schema mismatch: data is from '%s', current schema is '%s'. Matching fields will be imported.",
			meta.SchemaID, s.ID)
	}
	return ""
}
