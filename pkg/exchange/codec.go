// Package exchange serializes a data mapping to a YAML snapshot and parses
// such snapshots back. Export is deterministic over (schema, data, redact);
// import is best-effort: a bad field or row produces a warning, never aborts
// the rest of the document.
package exchange

import (
	"strconv"
	"strings"
	"time"

	"github.com/ccirone2/docx-builder/pkg/redact"
	"github.com/ccirone2/docx-builder/pkg/schema"
)

// Snapshot document keys and tags.
const (
	MetaKey                  = "_meta"
	AdditionalInformationKey = "additional_information"
	ExportTypeFullSnapshot   = "full_snapshot"
)

const dateLayout = "2006-01-02"

// coerceBool maps a decoded value onto a real boolean. The string forms
// "true", "yes", and "1" count as true regardless of case; any other string
// is false. Numbers are true when non-zero.
func coerceBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "1":
			return true
		}
		return false
	case int:
		return b != 0
	case int64:
		return b != 0
	case float64:
		return b != 0
	default:
		return v != nil
	}
}

// deserializeValue converts a decoded snapshot value back to the engine's
// representation for the given field type. The redaction placeholder always
// becomes nil so a redacted snapshot can never clobber real data. Number and
// currency parse failures are non-fatal: the raw value is kept and the
// validator flags it later.
func deserializeValue(t schema.FieldType, v any) any {
	if v == nil {
		return nil
	}
	if redact.IsPlaceholder(v) {
		return nil
	}

	switch t {
	case schema.TypeBoolean:
		return coerceBool(v)
	case schema.TypeNumber:
		if f, ok := asFloat(v); ok {
			return f
		}
		if s, ok := v.(string); ok {
			if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
				return f
			}
		}
		return v
	case schema.TypeCurrency:
		if f, ok := asFloat(v); ok {
			return f
		}
		if s, ok := v.(string); ok {
			cleaned := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(s, "$", ""), ",", ""))
			if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
				return f
			}
		}
		return v
	case schema.TypeDate:
		if tm, ok := v.(time.Time); ok {
			return tm.Format(dateLayout)
		}
		return v
	default:
		return v
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// formatDate renders a date value as its canonical YYYY-MM-DD string.
func formatDate(v any) (string, bool) {
	switch d := v.(type) {
	case time.Time:
		return d.Format(dateLayout), true
	case string:
		return d, true
	default:
		return "", false
	}
}
