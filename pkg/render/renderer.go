// Package render defines the rendering contract between the form engine and
// concrete output renderers. The engine itself never renders anything; it
// exposes form overlays through read-only accessors, and this package turns
// them into neutral FormView values plus a field-kind-keyed renderer
// registry that concrete renderers (see the html subpackage) draw from.
package render

import (
	"context"

	theme "github.com/goliatone/go-theme"
)

// Options carries cross-cutting render inputs.
type Options struct {
	// Theme is an optional go-theme renderer configuration; nil renders
	// without theme classes or CSS variables.
	Theme *theme.RendererConfig
}

// Renderer converts a FormView into a byte representation (HTML, text, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view FormView, options Options) ([]byte, error)
}

// FieldRenderer produces the markup for a single field.
type FieldRenderer func(ctx context.Context, field FieldView, options Options) ([]byte, error)
