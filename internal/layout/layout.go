package layout

import (
	"github.com/halvard/spyglass/internal/geometry"
	"github.com/halvard/spyglass/internal/resolve"
)

// Overrides are per-field replacements for a window's current bounds. A nil
// field preserves the window's value.
type Overrides struct {
	X      *float64
	Y      *float64
	Width  *float64
	Height *float64
}

func (o Overrides) positionGiven() bool { return o.X != nil || o.Y != nil }

// Compute resolves the new screen-space rect for a window. Rule order:
//
//  1. A preset wins outright and is computed purely from the target screen's
//     visible frame; overrides are ignored (preset and manual geometry are
//     mutually exclusive per call).
//  2. Otherwise each present override replaces that field of the window's
//     current bounds; absent fields are preserved.
//  3. If the target screen differs from the screen currently containing the
//     window and neither x nor y was given, the window's fractional position
//     within its current screen's frame is reapplied against the target
//     frame, so it lands in the analogous spot instead of at absolute
//     coordinates that may be off-screen.
//
// screens is the same snapshot the target was resolved from; it is only read,
// never re-queried.
func Compute(win resolve.WindowDescriptor, preset *Preset, ov Overrides, target resolve.ScreenDescriptor, screens []resolve.ScreenDescriptor) (geometry.Rect, error) {
	if preset != nil {
		return preset.apply(win, target), nil
	}

	out := win.Bounds
	if ov.X != nil {
		out.X = *ov.X
	}
	if ov.Y != nil {
		out.Y = *ov.Y
	}
	if ov.Width != nil {
		out.Width = *ov.Width
	}
	if ov.Height != nil {
		out.Height = *ov.Height
	}

	if ov.positionGiven() {
		return out, nil
	}

	current, ok := resolve.ScreenContaining(win, screens)
	if !ok || current.Index == target.Index {
		// Off every screen, or already on the target: keep absolute
		// coordinates.
		return out, nil
	}

	// Fractional relocation through the two screen frames. Routing through
	// the transform engine also rejects zero-dimension frames.
	origin, err := geometry.TransformPoint(
		geometry.PointIn(out.Origin(), geometry.Screen{Bounds: current.Frame}),
		geometry.Screen{Bounds: target.Frame},
	)
	if err != nil {
		return geometry.Rect{}, err
	}
	out.X = origin.Point.X
	out.Y = origin.Point.Y
	return out, nil
}
