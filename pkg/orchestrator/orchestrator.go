// Package orchestrator coordinates the pipeline from schema source to
// rendered artifact. It applies sensible defaults (the fill-in, reference,
// snapshot, and jsonschema renderers) while remaining open to dependency
// injection for advanced callers.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ccirone2/docx-builder/pkg/exchange"
	"github.com/ccirone2/docx-builder/pkg/jsonschema"
	"github.com/ccirone2/docx-builder/pkg/prompt"
	"github.com/ccirone2/docx-builder/pkg/render"
	"github.com/ccirone2/docx-builder/pkg/schema"
	"github.com/ccirone2/docx-builder/pkg/validate"
)

const defaultRendererName = "fill-in"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry, replacing the built-in one.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithSchemaFS supplies the fs.FS that fs-kind sources resolve against.
func WithSchemaFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.schemaFS = fsys
	}
}

// Orchestrator resolves a schema from a request and drives validation, the
// exchange codec, and the renderer registry against it.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	schemaFS        fs.FS
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs for one orchestrated operation. Exactly one of
// Schema, Document, or Source must identify the schema; they are consulted in
// that order.
type Request struct {
	// Schema short-circuits resolution when the caller already parsed one.
	Schema *schema.Schema

	// Document supplies raw schema text plus origin metadata.
	Document *schema.Document

	// Source names where the schema lives. File sources are read from disk;
	// fs sources resolve against the orchestrator's schema fs.FS.
	Source schema.Source

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// RenderOptions carries the data mapping, the redaction flag, and
	// renderer-specific context.
	RenderOptions render.Options
}

// Generate resolves the schema and renders it with the requested renderer.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	o.applyDefaults()

	s, err := o.resolveSchema(req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, s, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Validate resolves the schema and validates the request's data mapping.
func (o *Orchestrator) Validate(ctx context.Context, req Request) (validate.Result, error) {
	if ctx == nil {
		return validate.Result{}, errors.New("orchestrator: context is required")
	}
	s, err := o.resolveSchema(req)
	if err != nil {
		return validate.Result{}, err
	}
	return validate.Validate(s, req.RenderOptions.Data), nil
}

// Export resolves the schema and serializes the request's data mapping to a
// YAML snapshot, honoring the request's redaction flag.
func (o *Orchestrator) Export(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	s, err := o.resolveSchema(req)
	if err != nil {
		return nil, err
	}
	return exchange.Export(s, req.RenderOptions.Data, req.RenderOptions.Redact)
}

// Import resolves the schema and parses a snapshot into a data mapping plus
// import warnings.
func (o *Orchestrator) Import(ctx context.Context, req Request, snapshot []byte) (schema.Data, []string, error) {
	if ctx == nil {
		return nil, nil, errors.New("orchestrator: context is required")
	}
	s, err := o.resolveSchema(req)
	if err != nil {
		return nil, nil, err
	}
	data, warnings := exchange.Import(s, snapshot)
	return data, warnings, nil
}

func (o *Orchestrator) resolveSchema(req Request) (*schema.Schema, error) {
	if req.Schema != nil {
		return req.Schema, nil
	}
	if req.Document != nil {
		s, err := schema.ParseDocument(*req.Document)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: parse document: %w", err)
		}
		return s, nil
	}
	if req.Source == nil {
		return nil, errors.New("orchestrator: schema, document, or source is required")
	}

	var raw []byte
	var err error
	switch req.Source.Kind() {
	case schema.SourceKindFile:
		raw, err = os.ReadFile(req.Source.Location())
	case schema.SourceKindFS:
		if o.schemaFS == nil {
			return nil, errors.New("orchestrator: fs source requires WithSchemaFS")
		}
		raw, err = fs.ReadFile(o.schemaFS, req.Source.Location())
	default:
		return nil, fmt.Errorf("orchestrator: source kind %q needs an explicit document", req.Source.Kind())
	}
	if err != nil {
		return nil, fmt.Errorf("orchestrator: read schema %s: %w", req.Source.Location(), err)
	}

	s, err := schema.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse schema %s: %w", req.Source.Location(), err)
	}
	return s, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return o.registry.Get(names[0])
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.registry == nil {
		o.registry = render.NewRegistry()
		o.registry.MustRegister(prompt.NewFillRenderer())
		o.registry.MustRegister(prompt.NewReferenceRenderer())
		o.registry.MustRegister(exchange.NewSnapshotRenderer())
		o.registry.MustRegister(jsonschema.NewRenderer())
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}
