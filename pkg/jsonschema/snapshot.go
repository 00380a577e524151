// Package jsonschema derives a machine-readable description of the YAML
// snapshot format from a parsed schema. The output is an OpenAPI schema
// object, so hosts can validate snapshots with standard tooling or hand the
// structure to systems that speak JSON Schema.
package jsonschema

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/ccirone2/docx-builder/pkg/exchange"
	"github.com/ccirone2/docx-builder/pkg/schema"
)

// Snapshot builds the schema of an exported snapshot document: the _meta
// block, one object per field group keyed the way the exchange codec keys
// them, and the additional_information list.
func Snapshot(s *schema.Schema) *openapi3.Schema {
	root := openapi3.NewObjectSchema()
	root.Title = s.Name
	root.Description = s.Description

	root.WithProperty(exchange.MetaKey, metaSchema())
	root.Required = append(root.Required, exchange.MetaKey)

	for _, g := range s.CoreGroups {
		root.WithProperty(g.Key(), groupSchema(g))
		root.Required = append(root.Required, g.Key())
	}
	for _, g := range s.OptionalGroups {
		root.WithProperty(g.Key(), groupSchema(g))
	}

	if s.Flexible.Enabled {
		entry := openapi3.NewObjectSchema().
			WithProperty(schema.FlexibleLabelKey, openapi3.NewStringSchema()).
			WithProperty(schema.FlexibleValueKey, openapi3.NewStringSchema())
		entry.Required = []string{schema.FlexibleLabelKey, schema.FlexibleValueKey}

		list := openapi3.NewArraySchema()
		list.Items = openapi3.NewSchemaRef("", entry)
		list.Description = s.Flexible.Label
		if s.Flexible.MaxEntries > 0 {
			max := uint64(s.Flexible.MaxEntries)
			list.MaxItems = &max
		}
		root.WithProperty(exchange.AdditionalInformationKey, list)
	}

	return root
}

func metaSchema() *openapi3.Schema {
	meta := openapi3.NewObjectSchema().
		WithProperty("schema_id", openapi3.NewStringSchema()).
		WithProperty("schema_version", openapi3.NewStringSchema()).
		WithProperty("export_type", openapi3.NewStringSchema().WithEnum(exchange.ExportTypeFullSnapshot)).
		WithProperty("redacted", openapi3.NewBoolSchema())
	meta.Required = []string{"schema_id", "schema_version", "export_type", "redacted"}
	return meta
}

func groupSchema(g schema.FieldGroup) *openapi3.Schema {
	group := openapi3.NewObjectSchema()
	group.Description = g.Name
	for _, f := range g.Fields {
		group.WithProperty(f.Key, fieldSchema(f))
		if f.Required && f.ConditionalOn == nil {
			group.Required = append(group.Required, f.Key)
		}
	}
	return group
}

func fieldSchema(f schema.FieldDef) *openapi3.Schema {
	var out *openapi3.Schema
	switch f.Type {
	case schema.TypeNumber, schema.TypeCurrency:
		out = openapi3.NewFloat64Schema()
	case schema.TypeBoolean:
		out = openapi3.NewBoolSchema()
	case schema.TypeDate:
		out = openapi3.NewStringSchema().WithFormat("date")
	case schema.TypeChoice:
		out = openapi3.NewStringSchema()
		for _, choice := range f.Choices {
			out.Enum = append(out.Enum, choice)
		}
	case schema.TypeTable:
		row := openapi3.NewObjectSchema()
		for _, col := range f.Columns {
			row.WithProperty(col.Key, columnSchema(col))
		}
		out = openapi3.NewArraySchema()
		out.Items = openapi3.NewSchemaRef("", row)
	case schema.TypeCompound:
		out = openapi3.NewObjectSchema()
		for _, sf := range f.SubFields {
			out.WithProperty(sf.Key, fieldSchema(sf))
			if sf.Required {
				out.Required = append(out.Required, sf.Key)
			}
		}
	default:
		out = openapi3.NewStringSchema()
	}

	out.Description = f.Label
	if f.Validation != nil && f.Validation.Pattern != "" {
		out = out.WithPattern(f.Validation.Pattern)
	}
	if f.Default != nil {
		out = out.WithDefault(f.Default)
	}
	// Required fields stay non-nullable; everything else may be exported as
	// null before it is filled in.
	if !f.Required {
		out.Nullable = true
	}
	return out
}

func columnSchema(col schema.ColumnSpec) *openapi3.Schema {
	var out *openapi3.Schema
	switch col.Type {
	case schema.TypeNumber, schema.TypeCurrency:
		out = openapi3.NewFloat64Schema()
	case schema.TypeBoolean:
		out = openapi3.NewBoolSchema()
	case schema.TypeDate:
		out = openapi3.NewStringSchema().WithFormat("date")
	default:
		out = openapi3.NewStringSchema()
	}
	out.Description = col.Label
	return out
}
