package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ccirone2/docx-builder/pkg/validate"
)

var validateDataPath string

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a data snapshot against its schema",
	Long: `Validate a YAML data snapshot against the schema and print a
per-field report. Errors block document generation; warnings do not.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVarP(&validateDataPath, "data", "d", "", "path to the data snapshot YAML")
	_ = validateCmd.MarkFlagRequired("data")
}

func runValidate(cmd *cobra.Command, _ []string) error {
	path, err := resolvedSchemaPath()
	if err != nil {
		return err
	}
	s, err := loadSchema(path)
	if err != nil {
		return err
	}
	data, warnings, err := loadData(s, validateDataPath)
	if err != nil {
		return err
	}
	printWarnings(cmd.ErrOrStderr(), warnings)

	report := validate.BuildReport(s, validate.Validate(s, data))

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, row := range validate.FormatRows(report) {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", row[0], row[1], row[2])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if !report.Valid {
		return fmt.Errorf("validation failed: %s", report.Summary)
	}
	return nil
}
