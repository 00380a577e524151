package schema

import "strings"

// FieldType is the closed set of field kinds a schema may declare. The parser
// rejects anything outside this set instead of carrying unknown strings
// through the rest of the pipeline.
type FieldType string

const (
	TypeText      FieldType = "text"
	TypeMultiline FieldType = "multiline"
	TypeDate      FieldType = "date"
	TypeNumber    FieldType = "number"
	TypeCurrency  FieldType = "currency"
	TypeChoice    FieldType = "choice"
	TypeBoolean   FieldType = "boolean"
	TypeTable     FieldType = "table"
	TypeCompound  FieldType = "compound"
)

// Valid reports whether t is one of the declared field kinds.
func (t FieldType) Valid() bool {
	switch t {
	case TypeText, TypeMultiline, TypeDate, TypeNumber, TypeCurrency,
		TypeChoice, TypeBoolean, TypeTable, TypeCompound:
		return true
	}
	return false
}

// Numeric reports whether values of this type serialize as numbers. Redaction
// masks numeric fields with 0 rather than a text placeholder so the snapshot
// stays type-consistent.
func (t FieldType) Numeric() bool {
	return t == TypeNumber || t == TypeCurrency
}

// Section tags a field group as always-rendered or data-driven.
type Section string

const (
	SectionCore     Section = "core"
	SectionOptional Section = "optional"
)

// Condition gates a field's requiredness on another field's value.
type Condition struct {
	Field string
	Value any
}

// Validation holds extra per-field constraints beyond the type itself.
type Validation struct {
	Pattern string
}

// ColumnSpec describes one column of a table field.
type ColumnSpec struct {
	Key    string
	Label  string
	Type   FieldType
	Redact bool
}

// FieldDef is a single field definition. Table fields carry Columns, compound
// fields carry SubFields; every other type carries neither.
type FieldDef struct {
	Key           string
	Label         string
	Type          FieldType
	Required      bool
	Placeholder   string
	Default       any
	Choices       []string
	Validation    *Validation
	Columns       []ColumnSpec
	DefaultRows   []map[string]any
	Formula       string
	ConditionalOn *Condition
	Redact        bool
	SubFields     []FieldDef
}

// IsTable reports whether the field holds an ordered list of rows.
func (f FieldDef) IsTable() bool { return f.Type == TypeTable }

// IsCompound reports whether the field holds named sub-field values.
func (f FieldDef) IsCompound() bool { return f.Type == TypeCompound }

// HasRedactableColumns reports whether any table column is marked redact.
func (f FieldDef) HasRedactableColumns() bool {
	for _, col := range f.Columns {
		if col.Redact {
			return true
		}
	}
	return false
}

// HasRedactableSubFields reports whether any compound sub-field is marked redact.
func (f FieldDef) HasRedactableSubFields() bool {
	for _, sf := range f.SubFields {
		if sf.Redact {
			return true
		}
	}
	return false
}

// Column looks up a table column by key.
func (f FieldDef) Column(key string) (ColumnSpec, bool) {
	for _, col := range f.Columns {
		if col.Key == key {
			return col, true
		}
	}
	return ColumnSpec{}, false
}

// SubField looks up a compound sub-field by key.
func (f FieldDef) SubField(key string) (FieldDef, bool) {
	for _, sf := range f.SubFields {
		if sf.Key == key {
			return sf, true
		}
	}
	return FieldDef{}, false
}

// FieldGroup is a named, ordered collection of fields.
type FieldGroup struct {
	Name    string
	Section Section
	Fields  []FieldDef
}

// Key derives the snapshot mapping key for the group from its display name:
// lower-cased, spaces to underscores, "&" to "and".
func (g FieldGroup) Key() string {
	key := strings.ToLower(g.Name)
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "&", "and")
	return key
}

// FlexibleConfig configures the freeform user-defined entries section. These
// entries are not modeled as FieldDefs; the schema only bounds and labels them.
type FlexibleConfig struct {
	Enabled     bool
	MaxEntries  int
	Label       string
	Description string
	Columns     []ColumnSpec
}

// Schema is a complete, immutable document schema. It is read-only input to
// the validator, the redaction policy, the exchange codec, and the renderers.
type Schema struct {
	ID             string
	Name           string
	Version        string
	Template       string
	Description    string
	CoreGroups     []FieldGroup
	OptionalGroups []FieldGroup
	Flexible       FlexibleConfig
}

// AllGroups returns core groups followed by optional groups in schema order.
func (s *Schema) AllGroups() []FieldGroup {
	groups := make([]FieldGroup, 0, len(s.CoreGroups)+len(s.OptionalGroups))
	groups = append(groups, s.CoreGroups...)
	groups = append(groups, s.OptionalGroups...)
	return groups
}

// AllFields returns every top-level field across core and optional groups.
// Compound parents are included; their sub-fields are not, since sub-field
// values live under the parent key in the data mapping.
func (s *Schema) AllFields() []FieldDef {
	var fields []FieldDef
	for _, g := range s.AllGroups() {
		fields = append(fields, g.Fields...)
	}
	return fields
}

// AllFieldsDeep returns every field with each compound parent immediately
// followed by its sub-fields, for callers iterating over every leaf.
func (s *Schema) AllFieldsDeep() []FieldDef {
	var fields []FieldDef
	for _, f := range s.AllFields() {
		fields = append(fields, f)
		if f.IsCompound() {
			fields = append(fields, f.SubFields...)
		}
	}
	return fields
}

// Field resolves a key to its definition. Resolution order: exact top-level
// match, then a bare-key search through compound sub-fields, then dotted
// "parent.child" notation. When two compound parents declare sub-fields with
// the same bare key, the first in group order wins; use the dotted form to
// disambiguate.
func (s *Schema) Field(key string) (FieldDef, bool) {
	all := s.AllFields()
	for _, f := range all {
		if f.Key == key {
			return f, true
		}
	}
	for _, f := range all {
		if !f.IsCompound() {
			continue
		}
		if sf, ok := f.SubField(key); ok {
			return sf, true
		}
	}
	if parent, child, ok := strings.Cut(key, "."); ok {
		if pf, found := s.Field(parent); found && pf.IsCompound() {
			return pf.SubField(child)
		}
	}
	return FieldDef{}, false
}

// RequiredFields returns the required fields drawn from core groups only.
// Optional-group fields marked required are deliberately excluded; callers
// needing full coverage should filter AllFields themselves.
func (s *Schema) RequiredFields() []FieldDef {
	var fields []FieldDef
	for _, g := range s.CoreGroups {
		for _, f := range g.Fields {
			if f.Required {
				fields = append(fields, f)
			}
		}
	}
	return fields
}

// TableFields returns every top-level table field.
func (s *Schema) TableFields() []FieldDef {
	var fields []FieldDef
	for _, f := range s.AllFields() {
		if f.IsTable() {
			fields = append(fields, f)
		}
	}
	return fields
}

// CompoundFields returns every top-level compound field.
func (s *Schema) CompoundFields() []FieldDef {
	var fields []FieldDef
	for _, f := range s.AllFields() {
		if f.IsCompound() {
			fields = append(fields, f)
		}
	}
	return fields
}
