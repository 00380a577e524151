package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccirone2/docx-builder/pkg/exchange"
	"github.com/ccirone2/docx-builder/pkg/validate"
)

var (
	exportDataPath string
	exportOutPath  string
	exportRedact   bool

	importSnapshotPath string
	importOutPath      string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a data snapshot as schema-ordered YAML",
	Long: `Export data as a YAML snapshot ordered by the schema. With --redact,
fields marked sensitive in the schema are masked so the snapshot is safe to
share with an LLM or externally.`,
	RunE: runExport,
}

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a YAML snapshot and normalize it",
	Long: `Parse a YAML snapshot against the schema, report anything skipped,
validate the result, and write the normalized snapshot back out. Redaction
placeholders never overwrite data; they import as empty fields.`,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportDataPath, "data", "d", "", "path to the data snapshot YAML")
	exportCmd.Flags().StringVarP(&exportOutPath, "out", "o", "", "output path (default stdout)")
	exportCmd.Flags().BoolVar(&exportRedact, "redact", false, "mask fields flagged sensitive in the schema")
	_ = exportCmd.MarkFlagRequired("data")

	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVarP(&importSnapshotPath, "data", "d", "", "path to the snapshot YAML to import")
	importCmd.Flags().StringVarP(&importOutPath, "out", "o", "", "output path (default stdout)")
	_ = importCmd.MarkFlagRequired("data")
}

func runExport(cmd *cobra.Command, _ []string) error {
	path, err := resolvedSchemaPath()
	if err != nil {
		return err
	}
	s, err := loadSchema(path)
	if err != nil {
		return err
	}
	data, warnings, err := loadData(s, exportDataPath)
	if err != nil {
		return err
	}
	printWarnings(cmd.ErrOrStderr(), warnings)

	snapshot, err := exchange.Export(s, data, exportRedact)
	if err != nil {
		return err
	}
	verboseLog("exported %d bytes (redact=%t)", len(snapshot), exportRedact)
	return writeOutput(cmd.OutOrStdout(), exportOutPath, snapshot)
}

func runImport(cmd *cobra.Command, _ []string) error {
	path, err := resolvedSchemaPath()
	if err != nil {
		return err
	}
	s, err := loadSchema(path)
	if err != nil {
		return err
	}
	data, warnings, err := loadData(s, importSnapshotPath)
	if err != nil {
		return err
	}
	printWarnings(cmd.ErrOrStderr(), warnings)

	result := validate.Validate(s, data)
	for _, msg := range result.Errors {
		fmt.Fprintln(cmd.ErrOrStderr(), "Invalid:", msg)
	}

	normalized, err := exchange.Export(s, data, false)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), importOutPath, normalized)
}
