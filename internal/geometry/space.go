// Package geometry provides space-tagged points and rectangles and the
// conversions between the coordinate spaces used across the pipeline: global
// screen pixels, window-local pixels, scaled view surfaces, and the normalized
// grids emitted by vision models. A value always carries its space; mixing
// spaces without an explicit Transform is impossible by construction.
package geometry

import "fmt"

// Point is a position in some coordinate space.
type Point struct {
	X float64
	Y float64
}

// Size is a width/height pair.
type Size struct {
	Width  float64
	Height float64
}

// Rect is an origin plus size. Degenerate rects (zero or negative size) are
// legal values; only reference dimensions used for conversion must be positive.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Origin returns the rect's top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Dim returns the rect's size.
func (r Rect) Dim() Size { return Size{Width: r.Width, Height: r.Height} }

// Center returns the rect's midpoint.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether p lies inside r (right/bottom edges exclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Intersect returns the overlap of two rects, or a zero-size rect if disjoint.
func (r Rect) Intersect(o Rect) Rect {
	x1 := maxf(r.X, o.X)
	y1 := maxf(r.Y, o.Y)
	x2 := minf(r.X+r.Width, o.X+o.Width)
	y2 := minf(r.Y+r.Height, o.Y+o.Height)
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Area returns width*height, zero for degenerate rects.
func (r Rect) Area() float64 {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// Space is a coordinate space. Every space defines exactly two conversions,
// to and from the canonical unit interval space, so any pair of spaces
// interoperates through Unit without a pairwise table.
type Space interface {
	// ToUnit maps a rect in this space onto [0,1] on both axes.
	ToUnit(r Rect) (Rect, error)
	// FromUnit maps a unit-interval rect into this space.
	FromUnit(r Rect) (Rect, error)
	// String names the space for error messages.
	String() string
}

// InvalidGeometryError reports a conversion through a space whose reference
// size has a zero or negative dimension. Surfaced instead of producing
// Inf/NaN coordinates.
type InvalidGeometryError struct {
	Space     string
	Reference Size
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("cannot convert through %s: reference size %gx%g is not positive",
		e.Space, e.Reference.Width, e.Reference.Height)
}

// Screen is the union of all displays in one global pixel coordinate system.
// Bounds is the bounding rect of every display frame, fixed for a session.
type Screen struct {
	Bounds Rect
}

func (s Screen) ToUnit(r Rect) (Rect, error)   { return toUnit(s, s.Bounds.Origin(), s.Bounds.Dim(), r) }
func (s Screen) FromUnit(r Rect) (Rect, error) { return fromUnit(s, s.Bounds.Origin(), s.Bounds.Dim(), r) }
func (s Screen) String() string                { return "screen" }

// Window is the pixel space local to one window. Bounds anchors it to Screen.
type Window struct {
	Bounds Rect
}

func (w Window) ToUnit(r Rect) (Rect, error)   { return toUnit(w, Point{}, w.Bounds.Dim(), r) }
func (w Window) FromUnit(r Rect) (Rect, error) { return fromUnit(w, Point{}, w.Bounds.Dim(), r) }
func (w Window) String() string                { return "window" }

// View is a rendering surface (an overlay canvas or a captured image) that may
// be scaled relative to whatever it draws over.
type View struct {
	Size Size
}

func (v View) ToUnit(r Rect) (Rect, error)   { return toUnit(v, Point{}, v.Size, r) }
func (v View) FromUnit(r Rect) (Rect, error) { return fromUnit(v, Point{}, v.Size, r) }
func (v View) String() string                { return "view" }

// Unit is the canonical normalized space: both axes in [0,1].
type Unit struct{}

func (Unit) ToUnit(r Rect) (Rect, error)   { return r, nil }
func (Unit) FromUnit(r Rect) (Rect, error) { return r, nil }
func (Unit) String() string                { return "unit" }

// Grid is an integer coordinate convention with both axes in [0,Base], used by
// detection sources that quantize locations against a reference image size.
// Reference records which image the coordinates were quantized for; it is
// carried as provenance and does not participate in the unit conversion.
type Grid struct {
	Base      int
	Reference Size
}

func (g Grid) ToUnit(r Rect) (Rect, error) {
	return toUnit(g, Point{}, Size{Width: float64(g.Base), Height: float64(g.Base)}, r)
}

func (g Grid) FromUnit(r Rect) (Rect, error) {
	return fromUnit(g, Point{}, Size{Width: float64(g.Base), Height: float64(g.Base)}, r)
}

func (g Grid) String() string { return fmt.Sprintf("grid[0,%d]", g.Base) }

func toUnit(s Space, origin Point, ref Size, r Rect) (Rect, error) {
	if ref.Width <= 0 || ref.Height <= 0 {
		return Rect{}, &InvalidGeometryError{Space: s.String(), Reference: ref}
	}
	return Rect{
		X:      (r.X - origin.X) / ref.Width,
		Y:      (r.Y - origin.Y) / ref.Height,
		Width:  r.Width / ref.Width,
		Height: r.Height / ref.Height,
	}, nil
}

func fromUnit(s Space, origin Point, ref Size, r Rect) (Rect, error) {
	if ref.Width <= 0 || ref.Height <= 0 {
		return Rect{}, &InvalidGeometryError{Space: s.String(), Reference: ref}
	}
	return Rect{
		X:      origin.X + r.X*ref.Width,
		Y:      origin.Y + r.Y*ref.Height,
		Width:  r.Width * ref.Width,
		Height: r.Height * ref.Height,
	}, nil
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
