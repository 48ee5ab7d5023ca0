package geometry

// SpacedRect is a rect paired with the space its numbers are meaningful in.
type SpacedRect struct {
	Rect  Rect
	Space Space
}

// SpacedPoint is a point paired with its space.
type SpacedPoint struct {
	Point Point
	Space Space
}

// RectIn tags a rect with a space.
func RectIn(r Rect, s Space) SpacedRect { return SpacedRect{Rect: r, Space: s} }

// PointIn tags a point with a space.
func PointIn(p Point, s Space) SpacedPoint { return SpacedPoint{Point: p, Space: s} }

// Transform converts a rect from its own space into another by routing through
// the unit space: to.FromUnit(from.ToUnit(r)). Adding a space therefore means
// implementing exactly ToUnit and FromUnit, nothing pairwise.
func Transform(r SpacedRect, to Space) (SpacedRect, error) {
	unit, err := r.Space.ToUnit(r.Rect)
	if err != nil {
		return SpacedRect{}, err
	}
	out, err := to.FromUnit(unit)
	if err != nil {
		return SpacedRect{}, err
	}
	return SpacedRect{Rect: out, Space: to}, nil
}

// TransformPoint converts a point between spaces. A point is a zero-size rect
// under every supported space, so it reuses the rect path.
func TransformPoint(p SpacedPoint, to Space) (SpacedPoint, error) {
	r, err := Transform(SpacedRect{
		Rect:  Rect{X: p.Point.X, Y: p.Point.Y},
		Space: p.Space,
	}, to)
	if err != nil {
		return SpacedPoint{}, err
	}
	return SpacedPoint{Point: r.Rect.Origin(), Space: to}, nil
}
