package validate

import (
	"fmt"
	"strings"

	"github.com/ccirone2/docx-builder/pkg/schema"
)

// Status classifies one report row.
type Status string

const (
	StatusOK      Status = "OK"
	StatusError   Status = "ERROR"
	StatusWarning Status = "WARNING"
)

// Row is a single line of the displayable validation report.
type Row struct {
	Status  Status
	Field   string
	Message string
}

// StatusColor returns a hex color for the status indicator, for hosts that
// paint the report.
func (r Row) StatusColor() string {
	switch r.Status {
	case StatusOK:
		return "#00B050"
	case StatusError:
		return "#C00000"
	default:
		return "#ED7D31"
	}
}

// Report is the full displayable validation report: one row per issue plus an
// OK row for every required field that passed.
type Report struct {
	Valid        bool
	Summary      string
	Rows         []Row
	ErrorCount   int
	WarningCount int
}

// BuildReport converts a Result into a displayable report against the schema
// it was validated with.
func BuildReport(s *schema.Schema, result Result) Report {
	rows := make([]Row, 0, len(result.Errors)+len(result.Warnings))

	flagged := make(map[string]struct{})
	for _, msg := range result.Errors {
		key := FieldKey(msg)
		flagged[key] = struct{}{}
		rows = append(rows, Row{Status: StatusError, Field: key, Message: msg})
	}
	for _, msg := range result.Warnings {
		key := FieldKey(msg)
		flagged[key] = struct{}{}
		rows = append(rows, Row{Status: StatusWarning, Field: key, Message: msg})
	}

	for _, f := range s.RequiredFields() {
		if _, hit := flagged[f.Key]; hit {
			continue
		}
		rows = append(rows, Row{Status: StatusOK, Field: f.Key, Message: f.Label + ": OK"})
	}

	report := Report{
		Valid:        result.Valid,
		Rows:         rows,
		ErrorCount:   len(result.Errors),
		WarningCount: len(result.Warnings),
	}

	if result.Valid {
		report.Summary = "All required fields are valid."
	} else {
		report.Summary = fmt.Sprintf("%d error(s) found.", report.ErrorCount)
	}
	if report.WarningCount > 0 {
		report.Summary += fmt.Sprintf(" %d warning(s) noted.", report.WarningCount)
	}
	return report
}

// FieldKey extracts the field key from an issue message. Messages carry the
// key in a trailing parenthetical ("Missing required field: Label (key)");
// when absent, a leading single-word label before a colon is used, and the
// whole message is the last resort.
func FieldKey(message string) string {
	if strings.HasSuffix(message, ")") {
		if start := strings.LastIndex(message, "("); start >= 0 {
			return message[start+1 : len(message)-1]
		}
	}
	if head, _, found := strings.Cut(message, ":"); found {
		head = strings.TrimSpace(head)
		if head != "" && !strings.Contains(head, " ") {
			return head
		}
	}
	return message
}

// FormatRows flattens a report into [status, field, message] rows suitable
// for a tabular display: header, summary, then errors, warnings, and OK rows.
func FormatRows(report Report) [][]string {
	rows := [][]string{
		{"Status", "Field", "Message"},
		{"SUMMARY", "", report.Summary},
	}
	for _, status := range []Status{StatusError, StatusWarning, StatusOK} {
		for _, row := range report.Rows {
			if row.Status == status {
				rows = append(rows, []string{string(row.Status), row.Field, row.Message})
			}
		}
	}
	return rows
}
