package commands

import (
	"github.com/spf13/cobra"

	"github.com/ccirone2/docx-builder/pkg/orchestrator"
	"github.com/ccirone2/docx-builder/pkg/render"
)

var jsonSchemaOut string

// jsonSchemaCmd represents the json-schema command
var jsonSchemaCmd = &cobra.Command{
	Use:   "json-schema",
	Short: "Generate a JSON Schema for the snapshot format",
	Long: `Emit a machine-readable description of the snapshot YAML this schema
produces. Feed it to standard JSON Schema validators to check completed
snapshots mechanically, for example ones filled in by an LLM.`,
	RunE: runJSONSchema,
}

func init() {
	rootCmd.AddCommand(jsonSchemaCmd)
	jsonSchemaCmd.Flags().StringVarP(&jsonSchemaOut, "out", "o", "", "output path (default stdout)")
}

func runJSONSchema(cmd *cobra.Command, _ []string) error {
	path, err := resolvedSchemaPath()
	if err != nil {
		return err
	}
	s, err := loadSchema(path)
	if err != nil {
		return err
	}

	out, err := orchestrator.New().Generate(cmd.Context(), orchestrator.Request{
		Schema:        s,
		Renderer:      "jsonschema",
		RenderOptions: render.Options{},
	})
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), jsonSchemaOut, out)
}
