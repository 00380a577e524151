package exchange

import (
	"context"

	"github.com/ccirone2/docx-builder/pkg/render"
	"github.com/ccirone2/docx-builder/pkg/schema"
)

// SnapshotRenderer exposes Export through the renderer registry, so hosts can
// produce snapshots with the same named dispatch they use for prompts.
type SnapshotRenderer struct{}

// NewSnapshotRenderer returns a renderer registered under the name "snapshot".
func NewSnapshotRenderer() *SnapshotRenderer {
	return &SnapshotRenderer{}
}

func (SnapshotRenderer) Name() string        { return "snapshot" }
func (SnapshotRenderer) ContentType() string { return "application/yaml" }

func (SnapshotRenderer) Render(_ context.Context, s *schema.Schema, opts render.Options) ([]byte, error) {
	return Export(s, opts.Data, opts.Redact)
}
