// Package render defines the renderer contract and a registry for looking
// renderers up by name. Renderers turn a schema, optionally joined with data,
// into a textual artifact such as an LLM fill-in prompt or a schema reference.
package render

import (
	"context"

	"github.com/ccirone2/docx-builder/pkg/schema"
)

// Renderer converts a schema plus per-request options into a byte artifact.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, s *schema.Schema, opts Options) ([]byte, error)
}
