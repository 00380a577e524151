// Package validate checks a data mapping against a schema. Issues are always
// returned as data, never raised: a UI can show every problem at once, and a
// single bad field never aborts the rest of the pass.
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/ccirone2/docx-builder/pkg/schema"
)

// Result carries the outcome of one validation pass. Warnings never affect
// Valid; only errors block generation.
type Result struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

var datePrefixPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// Validate checks data against the schema. Required fields come from core
// groups; a conditional field is only required while its condition currently
// holds. Type-directed checks then run over every present value regardless of
// requiredness.
//
// Messages follow the "<Label>: <detail> (<key>)" convention so downstream
// reporting can recover the field key from the trailing parenthetical.
func Validate(s *schema.Schema, data schema.Data) Result {
	var errors, warnings []string

	for _, f := range s.RequiredFields() {
		if f.ConditionalOn != nil && !valuesEqual(data[f.ConditionalOn.Field], f.ConditionalOn.Value) {
			continue
		}

		val := data[f.Key]
		if f.IsCompound() {
			mapped, ok := val.(map[string]any)
			if !ok || !hasContent(mapped) {
				errors = append(errors, fmt.Sprintf("Missing required field: %s (%s)", f.Label, f.Key))
				continue
			}
			for _, sf := range f.SubFields {
				if !sf.Required {
					continue
				}
				if isBlank(mapped[sf.Key]) {
					errors = append(errors, fmt.Sprintf(
						"Missing required sub-field: %s → %s (%s.%s)", f.Label, sf.Label, f.Key, sf.Key))
				}
			}
			continue
		}

		if isBlank(val) {
			errors = append(errors, fmt.Sprintf("Missing required field: %s (%s)", f.Label, f.Key))
		}
	}

	for _, f := range s.AllFields() {
		val := data[f.Key]
		if val == nil {
			continue
		}

		if f.IsCompound() {
			mapped, ok := val.(map[string]any)
			if !ok {
				continue
			}
			for _, sf := range f.SubFields {
				sv := mapped[sf.Key]
				if sv == nil {
					continue
				}
				checkValue(sf, sv, f.Label+" → ", f.Key+"."+sf.Key, &errors, &warnings)
			}
			continue
		}

		checkValue(f, val, "", f.Key, &errors, &warnings)
	}

	return Result{
		Valid:    len(errors) == 0,
		Errors:   errors,
		Warnings: warnings,
	}
}

func checkValue(f schema.FieldDef, val any, labelPrefix, key string, errors, warnings *[]string) {
	label := labelPrefix + f.Label

	if f.Type == schema.TypeDate {
		if s, ok := val.(string); ok && !datePrefixPattern.MatchString(s) {
			*errors = append(*errors, fmt.Sprintf("%s: Expected date format YYYY-MM-DD, got '%s' (%s)", label, s, key))
		}
	}

	if f.Type == schema.TypeChoice && len(f.Choices) > 0 {
		// Unknown choices warn rather than error; they never block generation.
		rendered := fmt.Sprintf("%v", val)
		if !containsString(f.Choices, rendered) {
			*warnings = append(*warnings, fmt.Sprintf("%s: '%s' not in expected choices (%s)", label, rendered, key))
		}
	}

	if f.Type == schema.TypeNumber {
		if !coercibleToFloat(val) {
			*errors = append(*errors, fmt.Sprintf("%s: Expected a number, got '%v' (%s)", label, val, key))
		}
	}

	if f.Validation != nil && f.Validation.Pattern != "" {
		if s, ok := val.(string); ok {
			re, err := regexp.Compile("^(?:" + f.Validation.Pattern + ")")
			if err != nil {
				*errors = append(*errors, fmt.Sprintf("%s: invalid validation pattern (%s)", label, key))
			} else if !re.MatchString(s) {
				*errors = append(*errors, fmt.Sprintf("%s: Value '%s' doesn't match expected format (%s)", label, s, key))
			}
		}
	}
}

// isBlank reports whether a value counts as missing: nil, or a string that is
// empty after trimming.
func isBlank(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// hasContent reports whether a compound value holds at least one non-blank entry.
func hasContent(m map[string]any) bool {
	for _, v := range m {
		if !isBlank(v) {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func coercibleToFloat(v any) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	case bool:
		return true
	case string:
		_, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return err == nil
	default:
		return false
	}
}

// valuesEqual compares a data value against a condition value with numeric
// widening, so a YAML int matches a stored float and vice versa.
func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
		return false
	}
	if reflect.TypeOf(a).Comparable() && reflect.TypeOf(b).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
