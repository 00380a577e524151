package jsonschema

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ccirone2/docx-builder/pkg/render"
	"github.com/ccirone2/docx-builder/pkg/schema"
)

// Renderer exposes Snapshot through the renderer registry, emitting the
// snapshot document schema as indented JSON. Options.Data and Options.Redact
// are ignored; the output describes the format, not any values.
type Renderer struct{}

// NewRenderer returns a renderer registered under the name "jsonschema".
func NewRenderer() *Renderer {
	return &Renderer{}
}

func (Renderer) Name() string        { return "jsonschema" }
func (Renderer) ContentType() string { return "application/json" }

func (Renderer) Render(_ context.Context, s *schema.Schema, _ render.Options) ([]byte, error) {
	out, err := json.MarshalIndent(Snapshot(s), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("jsonschema: marshal snapshot schema: %w", err)
	}
	return append(out, '\n'), nil
}
