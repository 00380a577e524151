package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ccirone2/docx-builder/pkg/orchestrator"
	"github.com/ccirone2/docx-builder/pkg/prompt"
	"github.com/ccirone2/docx-builder/pkg/render"
)

var (
	promptDataPath string
	promptOutPath  string
	promptContext  string
	promptNoRedact bool
	referenceOut   string
)

// promptCmd represents the prompt command
var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Generate an LLM fill-in prompt",
	Long: `Generate a fill-in prompt for the schema: instructions, field
directives, and a YAML skeleton carrying any existing values. Sensitive
fields are redacted by default; pass --no-redact only when the recipient is
trusted with all data.`,
	RunE: runPrompt,
}

// referenceCmd represents the reference command
var referenceCmd = &cobra.Command{
	Use:   "reference",
	Short: "Generate a compact schema reference",
	Long: `Generate a compact schema listing (fields, types, requiredness,
choices) for sharing with an LLM that should answer questions about the
structure without filling it in.`,
	RunE: runReference,
}

func init() {
	rootCmd.AddCommand(promptCmd)
	promptCmd.Flags().StringVarP(&promptDataPath, "data", "d", "", "path to an existing data snapshot YAML")
	promptCmd.Flags().StringVarP(&promptOutPath, "out", "o", "", "output path (default stdout)")
	promptCmd.Flags().StringVar(&promptContext, "context", "", "free-text project context, or @file to read it")
	promptCmd.Flags().BoolVar(&promptNoRedact, "no-redact", false, "include sensitive values in the prompt")

	rootCmd.AddCommand(referenceCmd)
	referenceCmd.Flags().StringVarP(&referenceOut, "out", "o", "", "output path (default stdout)")
}

func runPrompt(cmd *cobra.Command, _ []string) error {
	path, err := resolvedSchemaPath()
	if err != nil {
		return err
	}
	s, err := loadSchema(path)
	if err != nil {
		return err
	}
	data, warnings, err := loadData(s, promptDataPath)
	if err != nil {
		return err
	}
	printWarnings(cmd.ErrOrStderr(), warnings)

	contextText := promptContext
	if len(contextText) > 1 && contextText[0] == '@' {
		raw, err := os.ReadFile(contextText[1:])
		if err != nil {
			return err
		}
		contextText = string(raw)
	}

	out, err := orchestrator.New().Generate(cmd.Context(), orchestrator.Request{
		Schema:   s,
		Renderer: "fill-in",
		RenderOptions: render.Options{
			Data:    data,
			Redact:  !promptNoRedact,
			Context: map[string]any{prompt.ContextKey: contextText},
		},
	})
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), promptOutPath, out)
}

func runReference(cmd *cobra.Command, _ []string) error {
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
		Renderer:      "reference",
		RenderOptions: render.Options{},
	})
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), referenceOut, out)
}
