package render

// Options carry per-request data into a renderer without the renderer
// mutating schema state.
type Options struct {
	// Data pre-populates rendered fields. Renderers decide how missing keys
	// surface; the fill-in prompt shows them as blanks to complete.
	Data map[string]any
	// Redact masks flagged values before they reach the output.
	Redact bool
	// Context passes renderer-specific knobs (project notes, source excerpts)
	// that are not part of the data mapping.
	Context map[string]any
}
