// Package docxbuilder is the root façade for the schema-driven document data
// engine: schema parsing, validation, redaction-aware YAML exchange, and
// LLM-facing prompt rendering. The subpackages under pkg/ carry the full
// surface; this package re-exports the common entry points so simple callers
// need a single import.
package docxbuilder

import (
	"context"

	"github.com/ccirone2/docx-builder/pkg/exchange"
	"github.com/ccirone2/docx-builder/pkg/orchestrator"
	"github.com/ccirone2/docx-builder/pkg/render"
	"github.com/ccirone2/docx-builder/pkg/schema"
	"github.com/ccirone2/docx-builder/pkg/validate"
)

// Schema aliases the parsed schema document.
type Schema = schema.Schema

// Data aliases the flat field-key to value mapping the engine operates on.
type Data = schema.Data

// Options aliases per-request renderer options.
type Options = render.Options

// Result aliases a validation outcome.
type Result = validate.Result

// ParseSchema parses raw schema YAML into its structured form.
func ParseSchema(raw []byte) (*Schema, error) {
	return schema.Parse(raw)
}

// Validate checks a data mapping against a schema.
func Validate(s *Schema, data Data) Result {
	return validate.Validate(s, data)
}

// Export serializes data to the YAML snapshot format, masking flagged values
// when redact is set.
func Export(s *Schema, data Data, redact bool) ([]byte, error) {
	return exchange.Export(s, data, redact)
}

// Import parses a snapshot back into a data mapping plus non-fatal warnings.
func Import(s *Schema, snapshot []byte) (Data, []string) {
	return exchange.Import(s, snapshot)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module. The default configuration registers the fill-in and reference
// renderers.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GeneratePrompt resolves a schema from the source, joins it with data, and
// renders the named artifact. It is the simplest entry point for callers that
// just want prompt text.
func GeneratePrompt(ctx context.Context, source schema.Source, data Data, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:        source,
		Renderer:      rendererName,
		RenderOptions: render.Options{Data: data, Redact: true},
	})
}

// GeneratePromptFromDocument renders using pre-loaded schema text, bypassing
// source resolution while still delegating to the orchestrator.
func GeneratePromptFromDocument(ctx context.Context, doc schema.Document, data Data, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document:      &doc,
		Renderer:      rendererName,
		RenderOptions: render.Options{Data: data, Redact: true},
	})
}
