// Package detect maps detection-model identifiers to the coordinate
// convention their bounding boxes use, and converts raw boxes accordingly.
package detect

import (
	"strings"

	"github.com/halvard/spyglass/internal/geometry"
)

// Convention describes how one family of detection models reports element
// locations. Models are matched by case-insensitive substring of their name.
type Convention struct {
	Match    string
	GridBase int // 0 means boxes are already in pixel space
}

// The -vl model family quantizes locations onto a 0..1000 grid relative to
// the screenshot it was shown; everything else is assumed to emit pixels.
var defaultConventions = []Convention{
	{Match: "-vl", GridBase: geometry.DefaultGridBase},
}

// Registry resolves model names to conventions. Entries supplied by config
// take priority over the built-in defaults.
type Registry struct {
	conventions []Convention
}

// NewRegistry builds a registry with extra conventions ahead of the defaults.
func NewRegistry(extra ...Convention) *Registry {
	conventions := make([]Convention, 0, len(extra)+len(defaultConventions))
	conventions = append(conventions, extra...)
	conventions = append(conventions, defaultConventions...)
	return &Registry{conventions: conventions}
}

// Lookup returns the convention for a model name, matching case-insensitively
// by substring. The first matching entry wins.
func (r *Registry) Lookup(model string) (Convention, bool) {
	name := strings.ToLower(model)
	for _, c := range r.conventions {
		if c.Match != "" && strings.Contains(name, strings.ToLower(c.Match)) {
			return c, true
		}
	}
	return Convention{}, false
}

// UsesGrid reports whether a model emits normalized-grid coordinates.
func (r *Registry) UsesGrid(model string) bool {
	c, ok := r.Lookup(model)
	return ok && c.GridBase > 0
}

// ConvertBox converts a model's raw [x1,y1,x2,y2] box into the pixel space of
// the captured image. Pixel-space models pass through untouched; grid models
// convert through the model's grid base. Malformed boxes come back unchanged.
func (r *Registry) ConvertBox(model string, box []int, imageSize geometry.Size) ([]int, error) {
	c, ok := r.Lookup(model)
	if !ok || c.GridBase <= 0 {
		return box, nil
	}
	return geometry.ConvertBoundingBoxFromGrid(box, c.GridBase, imageSize)
}
