package orchestrator_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/ccirone2/docx-builder/pkg/orchestrator"
	"github.com/ccirone2/docx-builder/pkg/render"
	"github.com/ccirone2/docx-builder/pkg/schema"
	"github.com/ccirone2/docx-builder/pkg/testsupport"
)

func TestGenerate_DefaultRenderer(t *testing.T) {
	o := orchestrator.New()

	out, err := o.Generate(context.Background(), orchestrator.Request{
		Schema: testsupport.MustSchema(t),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "# --- START YAML ---") {
		t.Fatalf("default renderer should produce the fill-in prompt:\n%s", out)
	}
}

func TestGenerate_NamedRenderer(t *testing.T) {
	o := orchestrator.New()

	out, err := o.Generate(context.Background(), orchestrator.Request{
		Schema:   testsupport.MustSchema(t),
		Renderer: "reference",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "# Schema Reference: Electric Utility RFQ") {
		t.Fatalf("reference renderer not used:\n%s", out)
	}

	if _, err := o.Generate(context.Background(), orchestrator.Request{
		Schema:   testsupport.MustSchema(t),
		Renderer: "missing",
	}); err == nil {
		t.Fatalf("unknown renderer must error")
	}
}

func TestGenerate_BuiltInRenderers(t *testing.T) {
	o := orchestrator.New()

	out, err := o.Generate(context.Background(), orchestrator.Request{
		Schema:        testsupport.MustSchema(t),
		Renderer:      "snapshot",
		RenderOptions: render.Options{Data: testsupport.SampleData()},
	})
	if err != nil {
		t.Fatalf("generate snapshot: %v", err)
	}
	if !strings.HasPrefix(string(out), "_meta:") {
		t.Fatalf("snapshot renderer should emit the exchange format:\n%s", out)
	}

	out, err = o.Generate(context.Background(), orchestrator.Request{
		Schema:   testsupport.MustSchema(t),
		Renderer: "jsonschema",
	})
	if err != nil {
		t.Fatalf("generate jsonschema: %v", err)
	}
	if !strings.Contains(string(out), `"properties"`) {
		t.Fatalf("jsonschema renderer should emit a schema document:\n%s", out)
	}
}

func TestGenerate_FromDocumentAndFS(t *testing.T) {
	doc := schema.MustNewDocument(schema.SourceFromText("fixture"), testsupport.SchemaBytes())

	o := orchestrator.New(orchestrator.WithSchemaFS(fstest.MapFS{
		"schemas/rfq.yaml": &fstest.MapFile{Data: testsupport.SchemaBytes()},
	}))

	if _, err := o.Generate(context.Background(), orchestrator.Request{Document: &doc}); err != nil {
		t.Fatalf("generate from document: %v", err)
	}
	if _, err := o.Generate(context.Background(), orchestrator.Request{
		Source: schema.SourceFromFS("schemas/rfq.yaml"),
	}); err != nil {
		t.Fatalf("generate from fs source: %v", err)
	}

	// Text sources carry no bytes and need an explicit document.
	if _, err := o.Generate(context.Background(), orchestrator.Request{
		Source: schema.SourceFromText("pasted"),
	}); err == nil {
		t.Fatalf("text source without document must error")
	}
}

func TestValidateExportImport(t *testing.T) {
	o := orchestrator.New()
	ctx := context.Background()

	req := orchestrator.Request{
		Schema:        testsupport.MustSchema(t),
		RenderOptions: render.Options{Data: testsupport.SampleData()},
	}

	result, err := o.Validate(ctx, req)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !result.Valid {
		t.Fatalf("sample data should validate: %v", result.Errors)
	}

	snapshot, err := o.Export(ctx, req)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	data, warnings, err := o.Import(ctx, req, snapshot)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if data["rfq_number"] != "RFQ-2026-042" {
		t.Fatalf("round trip lost data: %#v", data["rfq_number"])
	}
}

func TestCustomRegistry(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(echoRenderer{})

	o := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer("echo"),
	)

	out, err := o.Generate(context.Background(), orchestrator.Request{
		Schema: testsupport.MustSchema(t),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(out) != "rfq_electric_utility" {
		t.Fatalf("custom renderer not used: %q", out)
	}
}

type echoRenderer struct{}

func (echoRenderer) Name() string        { return "echo" }
func (echoRenderer) ContentType() string { return "text/plain" }
func (echoRenderer) Render(_ context.Context, s *schema.Schema, _ render.Options) ([]byte, error) {
	return []byte(s.ID), nil
}
