package schema

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FormatError reports malformed or incomplete schema text. A parse that
// returns a FormatError never produces a partial Schema.
type FormatError struct {
	Detail string
}

func (e *FormatError) Error() string {
	return "schema: " + e.Detail
}

func formatErrorf(format string, args ...any) error {
	return &FormatError{Detail: fmt.Sprintf(format, args...)}
}

// IsFormatError reports whether err is a schema format error.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

type schemaFile struct {
	Schema         *metaFile    `yaml:"schema"`
	CoreFields     []groupFile  `yaml:"core_fields"`
	OptionalFields []groupFile  `yaml:"optional_fields"`
	FlexibleFields flexibleFile `yaml:"flexible_fields"`
}

type metaFile struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Template    string `yaml:"template"`
	Description string `yaml:"description"`
}

type groupFile struct {
	Group  string      `yaml:"group"`
	Fields []fieldFile `yaml:"fields"`
}

type fieldFile struct {
	Key           string           `yaml:"key"`
	Label         string           `yaml:"label"`
	Type          string           `yaml:"type"`
	Required      bool             `yaml:"required"`
	Placeholder   string           `yaml:"placeholder"`
	Default       any              `yaml:"default"`
	Choices       []string         `yaml:"choices"`
	Validation    *validationFile  `yaml:"validation"`
	Columns       []columnFile     `yaml:"columns"`
	DefaultRows   []map[string]any `yaml:"default_rows"`
	Formula       string           `yaml:"formula"`
	ConditionalOn *conditionFile   `yaml:"conditional_on"`
	Redact        bool             `yaml:"redact"`
	Fields        []fieldFile      `yaml:"fields"`
}

type validationFile struct {
	Pattern string `yaml:"pattern"`
}

type columnFile struct {
	Key    string `yaml:"key"`
	Label  string `yaml:"label"`
	Type   string `yaml:"type"`
	Redact bool   `yaml:"redact"`
}

type conditionFile struct {
	Field string `yaml:"field"`
	Value any    `yaml:"value"`
}

type flexibleFile struct {
	Enabled     *bool        `yaml:"enabled"`
	MaxEntries  *int         `yaml:"max_entries"`
	Label       string       `yaml:"label"`
	Description string       `yaml:"description"`
	Columns     []columnFile `yaml:"columns"`
}

// Parse reads schema definition text into an immutable Schema. It fails with
// a FormatError when the top-level structure is not a mapping, when the
// schema meta block or one of its id/name/version entries is missing, or when
// any field omits key/label/type or declares a type outside the closed set.
func Parse(raw []byte) (*Schema, error) {
	var file schemaFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, formatErrorf("parse schema text: %v", err)
	}
	if file.Schema == nil {
		return nil, formatErrorf("missing top-level %q block", "schema")
	}
	if file.Schema.ID == "" || file.Schema.Name == "" || file.Schema.Version == "" {
		return nil, formatErrorf("schema meta requires id, name, and version")
	}

	coreGroups, err := parseGroups(file.CoreFields, SectionCore)
	if err != nil {
		return nil, err
	}
	optionalGroups, err := parseGroups(file.OptionalFields, SectionOptional)
	if err != nil {
		return nil, err
	}

	parsed := &Schema{
		ID:             file.Schema.ID,
		Name:           file.Schema.Name,
		Version:        file.Schema.Version,
		Template:       file.Schema.Template,
		Description:    file.Schema.Description,
		CoreGroups:     coreGroups,
		OptionalGroups: optionalGroups,
		Flexible:       parseFlexible(file.FlexibleFields),
	}

	if err := checkDuplicateKeys(parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

// ParseDocument parses the payload carried by a Document wrapper.
func ParseDocument(doc Document) (*Schema, error) {
	return Parse(doc.Raw())
}

func parseGroups(raw []groupFile, section Section) ([]FieldGroup, error) {
	groups := make([]FieldGroup, 0, len(raw))
	for _, g := range raw {
		if g.Group == "" {
			return nil, formatErrorf("%s group is missing a name", section)
		}
		fields := make([]FieldDef, 0, len(g.Fields))
		for _, f := range g.Fields {
			parsed, err := parseField(f, g.Group, false)
			if err != nil {
				return nil, err
			}
			fields = append(fields, parsed)
		}
		groups = append(groups, FieldGroup{Name: g.Group, Section: section, Fields: fields})
	}
	return groups, nil
}

func parseField(raw fieldFile, group string, nested bool) (FieldDef, error) {
	if raw.Key == "" {
		return FieldDef{}, formatErrorf("group %q has a field without a key", group)
	}
	if raw.Label == "" {
		return FieldDef{}, formatErrorf("field %q is missing a label", raw.Key)
	}
	fieldType := FieldType(raw.Type)
	if !fieldType.Valid() {
		return FieldDef{}, formatErrorf("field %q has unknown type %q", raw.Key, raw.Type)
	}

	field := FieldDef{
		Key:         raw.Key,
		Label:       raw.Label,
		Type:        fieldType,
		Required:    raw.Required,
		Placeholder: raw.Placeholder,
		Default:     raw.Default,
		Choices:     raw.Choices,
		DefaultRows: raw.DefaultRows,
		Formula:     raw.Formula,
		Redact:      raw.Redact,
	}
	if raw.Validation != nil {
		field.Validation = &Validation{Pattern: raw.Validation.Pattern}
	}
	if raw.ConditionalOn != nil {
		field.ConditionalOn = &Condition{Field: raw.ConditionalOn.Field, Value: raw.ConditionalOn.Value}
	}

	switch fieldType {
	case TypeTable:
		if len(raw.Columns) == 0 {
			return FieldDef{}, formatErrorf("table field %q declares no columns", raw.Key)
		}
		columns, err := parseColumns(raw.Columns, raw.Key)
		if err != nil {
			return FieldDef{}, err
		}
		field.Columns = columns
	case TypeCompound:
		if nested {
			return FieldDef{}, formatErrorf("compound field %q nests another compound field", raw.Key)
		}
		if len(raw.Fields) == 0 {
			return FieldDef{}, formatErrorf("compound field %q declares no sub-fields", raw.Key)
		}
		subFields := make([]FieldDef, 0, len(raw.Fields))
		for _, sf := range raw.Fields {
			parsed, err := parseField(sf, group, true)
			if err != nil {
				return FieldDef{}, err
			}
			subFields = append(subFields, parsed)
		}
		field.SubFields = subFields
	default:
		if len(raw.Columns) > 0 {
			return FieldDef{}, formatErrorf("field %q declares columns but is not a table", raw.Key)
		}
		if len(raw.Fields) > 0 {
			return FieldDef{}, formatErrorf("field %q declares sub-fields but is not compound", raw.Key)
		}
	}

	return field, nil
}

func parseColumns(raw []columnFile, fieldKey string) ([]ColumnSpec, error) {
	columns := make([]ColumnSpec, 0, len(raw))
	for _, col := range raw {
		if col.Key == "" {
			return nil, formatErrorf("table field %q has a column without a key", fieldKey)
		}
		colType := FieldType(col.Type)
		if col.Type == "" {
			colType = TypeText
		}
		if !colType.Valid() || colType == TypeTable || colType == TypeCompound {
			return nil, formatErrorf("table field %q column %q has unsupported type %q", fieldKey, col.Key, col.Type)
		}
		columns = append(columns, ColumnSpec{Key: col.Key, Label: col.Label, Type: colType, Redact: col.Redact})
	}
	return columns, nil
}

func parseFlexible(raw flexibleFile) FlexibleConfig {
	cfg := FlexibleConfig{
		Enabled:     true,
		MaxEntries:  20,
		Label:       "Additional Information",
		Description: raw.Description,
	}
	if raw.Enabled != nil {
		cfg.Enabled = *raw.Enabled
	}
	if raw.MaxEntries != nil {
		cfg.MaxEntries = *raw.MaxEntries
	}
	if raw.Label != "" {
		cfg.Label = raw.Label
	}
	for _, col := range raw.Columns {
		colType := FieldType(col.Type)
		if col.Type == "" {
			colType = TypeText
		}
		cfg.Columns = append(cfg.Columns, ColumnSpec{Key: col.Key, Label: col.Label, Type: colType, Redact: col.Redact})
	}
	return cfg
}

// checkDuplicateKeys rejects key collisions across the whole bare-key
// namespace: top-level fields and compound sub-fields. A sub-field key that
// shadows another field would make bare-key lookup order-dependent.
func checkDuplicateKeys(s *Schema) error {
	seen := make(map[string]struct{})
	for _, f := range s.AllFields() {
		if _, dup := seen[f.Key]; dup {
			return formatErrorf("duplicate field key %q", f.Key)
		}
		seen[f.Key] = struct{}{}
	}
	for _, f := range s.CompoundFields() {
		for _, sf := range f.SubFields {
			if _, dup := seen[sf.Key]; dup {
				return formatErrorf("sub-field key %q of %q collides with another field key", sf.Key, f.Key)
			}
			seen[sf.Key] = struct{}{}
		}
	}
	return nil
}
