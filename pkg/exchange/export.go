package exchange

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ccirone2/docx-builder/pkg/redact"
	"github.com/ccirone2/docx-builder/pkg/schema"
)

// Export serializes data to the YAML snapshot format. Output order follows
// the schema, never map iteration: the _meta block first, then core groups
// (every field present, missing values as nulls), then optional groups that
// hold at least one value, then the flexible entries block. When redactValues
// is set, flagged fields, table columns, and sub-fields are masked before
// serialization.
func Export(s *schema.Schema, data schema.Data, redactValues bool) ([]byte, error) {
	root := newMapping()

	meta := newMapping()
	appendPair(meta, strNode("schema_id"), strNode(s.ID))
	appendPair(meta, strNode("schema_version"), strNode(s.Version))
	appendPair(meta, strNode("export_type"), strNode(ExportTypeFullSnapshot))
	appendPair(meta, strNode("redacted"), boolNode(redactValues))
	appendPair(root, strNode(MetaKey), meta)

	for _, g := range s.CoreGroups {
		group := newMapping()
		for _, f := range g.Fields {
			node, err := fieldNode(f, data[f.Key], redactValues)
			if err != nil {
				return nil, fmt.Errorf("export %s: %w", f.Key, err)
			}
			appendPair(group, strNode(f.Key), node)
		}
		appendPair(root, strNode(g.Key()), group)
	}

	for _, g := range s.OptionalGroups {
		group := newMapping()
		for _, f := range g.Fields {
			val := data[f.Key]
			if val == nil {
				continue
			}
			node, err := fieldNode(f, val, redactValues)
			if err != nil {
				return nil, fmt.Errorf("export %s: %w", f.Key, err)
			}
			appendPair(group, strNode(f.Key), node)
		}
		if len(group.Content) > 0 {
			appendPair(root, strNode(g.Key()), group)
		}
	}

	if flex, ok := data[schema.FlexibleFieldsKey]; ok && len(schema.FlexibleEntries(flex)) > 0 {
		val := flex
		if redactValues {
			val = redact.FlexibleEntries(flex)
		}
		node, err := encodeValue(val)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", AdditionalInformationKey, err)
		}
		appendPair(root, strNode(AdditionalInformationKey), node)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// fieldNode builds the value node for one top-level field, applying the
// redaction policy first so serialization only ever sees final values.
func fieldNode(f schema.FieldDef, val any, redactValues bool) (*yaml.Node, error) {
	if redactValues {
		switch {
		// A field-level redact flag masks the whole value, even when the
		// field also declares flagged columns or sub-fields.
		case f.Redact:
			val = redact.Value(f.Type, val)
		case f.IsTable() && f.HasRedactableColumns():
			rows := rowsOf(val)
			if rows != nil {
				masked := make([]map[string]any, len(rows))
				for i, row := range rows {
					masked[i] = redact.TableRow(f, row)
				}
				return tableNode(f, masked)
			}
		case f.IsCompound() && f.HasRedactableSubFields():
			if m, ok := val.(map[string]any); ok {
				return compoundNode(f, redact.Compound(f, m))
			}
		}
	}

	switch {
	case val == nil:
		return nullNode(), nil
	case f.IsTable():
		if rows := rowsOf(val); rows != nil {
			return tableNode(f, rows)
		}
		return encodeValue(val)
	case f.IsCompound():
		if m, ok := val.(map[string]any); ok {
			return compoundNode(f, m)
		}
		return encodeValue(val)
	default:
		return scalarNode(f.Type, val)
	}
}

// tableNode emits rows with cells in column order; keys a row carries beyond
// the declared columns follow in sorted order so output stays stable.
func tableNode(f schema.FieldDef, rows []map[string]any) (*yaml.Node, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, row := range rows {
		m := newMapping()
		seen := make(map[string]struct{}, len(row))
		for _, col := range f.Columns {
			v, present := row[col.Key]
			if !present {
				continue
			}
			seen[col.Key] = struct{}{}
			node, err := scalarNode(col.Type, v)
			if err != nil {
				return nil, err
			}
			appendPair(m, strNode(col.Key), node)
		}
		extras := make([]string, 0, len(row))
		for k := range row {
			if _, ok := seen[k]; !ok {
				extras = append(extras, k)
			}
		}
		sort.Strings(extras)
		for _, k := range extras {
			node, err := encodeValue(row[k])
			if err != nil {
				return nil, err
			}
			appendPair(m, strNode(k), node)
		}
		seq.Content = append(seq.Content, m)
	}
	return seq, nil
}

// compoundNode emits sub-field values in schema order, skipping sub-fields
// the value does not carry. Extra keys follow sorted.
func compoundNode(f schema.FieldDef, value map[string]any) (*yaml.Node, error) {
	m := newMapping()
	seen := make(map[string]struct{}, len(value))
	for _, sf := range f.SubFields {
		v, present := value[sf.Key]
		if !present {
			continue
		}
		seen[sf.Key] = struct{}{}
		node, err := scalarNode(sf.Type, v)
		if err != nil {
			return nil, err
		}
		appendPair(m, strNode(sf.Key), node)
	}
	extras := make([]string, 0, len(value))
	for k := range value {
		if _, ok := seen[k]; !ok {
			extras = append(extras, k)
		}
	}
	sort.Strings(extras)
	for _, k := range extras {
		node, err := encodeValue(value[k])
		if err != nil {
			return nil, err
		}
		appendPair(m, strNode(k), node)
	}
	return m, nil
}

// scalarNode serializes one leaf value under its declared type. Dates are
// forced to single-quoted strings so YAML readers cannot reinterpret them,
// booleans are coerced to real booleans, and multiline strings use literal
// block style.
func scalarNode(t schema.FieldType, val any) (*yaml.Node, error) {
	if val == nil {
		return nullNode(), nil
	}
	switch t {
	case schema.TypeDate:
		if s, ok := formatDate(val); ok {
			return &yaml.Node{
				Kind:  yaml.ScalarNode,
				Tag:   "!!str",
				Value: s,
				Style: yaml.SingleQuotedStyle,
			}, nil
		}
	case schema.TypeBoolean:
		return boolNode(coerceBool(val)), nil
	case schema.TypeNumber, schema.TypeCurrency:
		if f, ok := asFloat(val); ok {
			return numberNode(f), nil
		}
	}
	return encodeValue(val)
}

// numberNode emits a numeric scalar with the tag its rendering implies, so a
// whole-valued float serializes as a plain integer and stays stable across
// repeated export/import cycles.
func numberNode(f float64) *yaml.Node {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	tag := "!!int"
	if strings.ContainsAny(s, ".eE") {
		tag = "!!float"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: s}
}

// encodeValue turns an arbitrary value into a node tree, then switches any
// multiline string scalars to literal block style.
func encodeValue(val any) (*yaml.Node, error) {
	if val == nil {
		return nullNode(), nil
	}
	node := &yaml.Node{}
	if err := node.Encode(val); err != nil {
		return nil, err
	}
	styleMultiline(node)
	return node, nil
}

func styleMultiline(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!str" && strings.Contains(n.Value, "\n") {
		n.Style = yaml.LiteralStyle
		return
	}
	for _, child := range n.Content {
		styleMultiline(child)
	}
}

func rowsOf(val any) []map[string]any {
	switch rows := val.(type) {
	case []map[string]any:
		return rows
	case []any:
		out := make([]map[string]any, 0, len(rows))
		for _, r := range rows {
			m, ok := r.(map[string]any)
			if !ok {
				return nil
			}
			out = append(out, m)
		}
		return out
	default:
		return nil
	}
}

func newMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func appendPair(m *yaml.Node, key, value *yaml.Node) {
	m.Content = append(m.Content, key, value)
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func boolNode(b bool) *yaml.Node {
	v := "false"
	if b {
		v = "true"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: v}
}

func nullNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: ""}
}
