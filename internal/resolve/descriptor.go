// Package resolve answers targeting queries ("the window titled X", "the next
// screen") against immutable snapshots of the desktop, producing concrete
// window and screen descriptors or structured not-found failures.
package resolve

import "github.com/halvard/spyglass/internal/geometry"

// WindowID identifies one window for the lifetime of a snapshot.
type WindowID uint32

// WindowDescriptor is an immutable snapshot of one window. Bounds are in
// global screen pixels.
type WindowDescriptor struct {
	ID          WindowID
	App         string
	Title       string
	Bounds      geometry.Rect
	IsMinimized bool
}

// ScreenDescriptor is an immutable snapshot of one display. Frame is the full
// pixel rect in screen space; VisibleFrame excludes panels and docks.
// Descriptors are re-enumerated on demand, never cached across calls, since
// displays can be connected or removed at any time.
type ScreenDescriptor struct {
	Index        int
	Name         string
	Frame        geometry.Rect
	VisibleFrame geometry.Rect
	Scale        float64
	DisplayID    uint32
	IsPrimary    bool
}

// Snapshot is one consistent view of the desktop: the window list plus the
// window manager's activity signals. Frontmost queries answer from the
// signals, never from enumeration order.
type Snapshot struct {
	Windows []WindowDescriptor
	// Active is the focused window per the window manager, 0 when unknown.
	Active WindowID
	// Stacking lists window IDs top to bottom, empty when unavailable.
	Stacking []WindowID
}

// Find returns the snapshot window with the given ID.
func (s Snapshot) Find(id WindowID) (WindowDescriptor, bool) {
	for _, w := range s.Windows {
		if w.ID == id {
			return w, true
		}
	}
	return WindowDescriptor{}, false
}

// VirtualBounds returns the bounding rect of every screen frame: the session's
// global screen space.
func VirtualBounds(screens []ScreenDescriptor) geometry.Rect {
	if len(screens) == 0 {
		return geometry.Rect{}
	}
	r := screens[0].Frame
	for _, s := range screens[1:] {
		x1 := minf(r.X, s.Frame.X)
		y1 := minf(r.Y, s.Frame.Y)
		x2 := maxf(r.X+r.Width, s.Frame.X+s.Frame.Width)
		y2 := maxf(r.Y+r.Height, s.Frame.Y+s.Frame.Height)
		r = geometry.Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
	}
	return r
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
