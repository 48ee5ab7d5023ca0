package overlay

import "github.com/halvard/spyglass/internal/geometry"

// Label placement metrics.
const (
	labelSpacing = 6
	labelHeight  = lineHeight
)

// LabelPosition places an element label inside a view. Three static branches,
// in order: directly above the element with fixed spacing; below the element
// when above would leave the view; the element's center when neither fits.
// Predictability beats perfect non-overlap with a dense neighbor, so there is
// no packing search.
func LabelPosition(element geometry.Rect, viewSize geometry.Size) geometry.Point {
	above := element.Y - labelSpacing - labelHeight
	if above >= 0 {
		return geometry.Point{X: element.X, Y: above}
	}

	below := element.Y + element.Height + labelSpacing
	if below+labelHeight <= viewSize.Height {
		return geometry.Point{X: element.X, Y: below}
	}

	return element.Center()
}
