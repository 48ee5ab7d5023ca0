package detect

import "github.com/halvard/spyglass/internal/geometry"

// Detection is one element located by a vision model: the raw box as the
// model reported it, the model's name (used only to pick the coordinate
// convention), and an optional label for annotation.
type Detection struct {
	Model string
	Box   []int
	Label string
}

// PixelBox returns the detection's box in the pixel space of the captured
// image. Malformed boxes pass through unchanged, matching the box converter.
func (d Detection) PixelBox(reg *Registry, imageSize geometry.Size) ([]int, error) {
	return reg.ConvertBox(d.Model, d.Box, imageSize)
}

// PixelRect returns the detection's box as a rect tagged with the image's
// view space, or ok=false for a malformed box.
func (d Detection) PixelRect(reg *Registry, imageSize geometry.Size) (geometry.SpacedRect, bool, error) {
	box, err := d.PixelBox(reg, imageSize)
	if err != nil {
		return geometry.SpacedRect{}, false, err
	}
	if len(box) != 4 {
		return geometry.SpacedRect{}, false, nil
	}
	r := geometry.Rect{
		X:      float64(box[0]),
		Y:      float64(box[1]),
		Width:  float64(box[2] - box[0]),
		Height: float64(box[3] - box[1]),
	}
	return geometry.RectIn(r, geometry.View{Size: imageSize}), true, nil
}
