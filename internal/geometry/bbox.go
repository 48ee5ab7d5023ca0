package geometry

// DefaultGridBase is the grid resolution used by detection models that emit
// normalized integer coordinates.
const DefaultGridBase = 1000

// ConvertBoundingBox converts a 4-element [x1,y1,x2,y2] box from the default
// 0..1000 grid into the pixel space of an image, truncating to integers.
//
// Boxes that are not exactly 4 elements come back unchanged: malformed
// detections are a frequent, recoverable condition from noisy sources, and an
// annotation pass should skip a bad box rather than abort. A zero-dimension
// image is a caller bug and fails.
func ConvertBoundingBox(box []int, imageSize Size) ([]int, error) {
	return ConvertBoundingBoxFromGrid(box, DefaultGridBase, imageSize)
}

// ConvertBoundingBoxFromGrid is ConvertBoundingBox with an explicit grid base.
func ConvertBoundingBoxFromGrid(box []int, base int, imageSize Size) ([]int, error) {
	if len(box) != 4 {
		return box, nil
	}
	grid := Grid{Base: base, Reference: imageSize}
	view := View{Size: imageSize}

	out := make([]int, 4)
	for i := 0; i < 4; i += 2 {
		p, err := TransformPoint(PointIn(Point{X: float64(box[i]), Y: float64(box[i+1])}, grid), view)
		if err != nil {
			return nil, err
		}
		out[i] = int(p.Point.X)
		out[i+1] = int(p.Point.Y)
	}
	return out, nil
}

// CenterPoint returns the midpoint of a 4-element [x1,y1,x2,y2] box, or
// ok=false for anything else.
func CenterPoint(box []int) (Point, bool) {
	if len(box) != 4 {
		return Point{}, false
	}
	return Point{
		X: float64(box[0]+box[2]) / 2,
		Y: float64(box[1]+box[3]) / 2,
	}, true
}
