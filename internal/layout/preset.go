// Package layout computes target window rectangles from presets, explicit
// overrides, and screen-relocation requests.
package layout

import (
	"fmt"

	"github.com/halvard/spyglass/internal/geometry"
	"github.com/halvard/spyglass/internal/resolve"
)

// Preset is a named screen-relative target layout. All presets are defined
// against the target screen's visible frame.
type Preset string

const (
	PresetMaximize   Preset = "maximize"
	PresetCenter     Preset = "center"
	PresetLeftHalf   Preset = "left-half"
	PresetRightHalf  Preset = "right-half"
	PresetTopHalf    Preset = "top-half"
	PresetBottomHalf Preset = "bottom-half"
)

// InvalidPresetError reports an unrecognized preset name from an unvalidated
// caller string.
type InvalidPresetError struct {
	Name string
}

func (e *InvalidPresetError) Error() string {
	return fmt.Sprintf("unknown layout preset %q", e.Name)
}

// ParsePreset maps a string to a Preset.
func ParsePreset(s string) (Preset, error) {
	switch Preset(s) {
	case PresetMaximize, PresetCenter, PresetLeftHalf, PresetRightHalf, PresetTopHalf, PresetBottomHalf:
		return Preset(s), nil
	}
	return "", &InvalidPresetError{Name: s}
}

// Presets lists every preset name, for help text and tool schemas.
func Presets() []Preset {
	return []Preset{
		PresetMaximize, PresetCenter,
		PresetLeftHalf, PresetRightHalf,
		PresetTopHalf, PresetBottomHalf,
	}
}

// apply computes a preset's rect from the target screen's visible frame.
// center keeps the window's current size; the half presets and maximize
// dictate size from the split itself.
func (p Preset) apply(win resolve.WindowDescriptor, screen resolve.ScreenDescriptor) geometry.Rect {
	vf := screen.VisibleFrame
	switch p {
	case PresetMaximize:
		return vf
	case PresetCenter:
		return geometry.Rect{
			X:      vf.X + (vf.Width-win.Bounds.Width)/2,
			Y:      vf.Y + (vf.Height-win.Bounds.Height)/2,
			Width:  win.Bounds.Width,
			Height: win.Bounds.Height,
		}
	case PresetLeftHalf:
		return geometry.Rect{X: vf.X, Y: vf.Y, Width: vf.Width / 2, Height: vf.Height}
	case PresetRightHalf:
		return geometry.Rect{X: vf.X + vf.Width/2, Y: vf.Y, Width: vf.Width / 2, Height: vf.Height}
	case PresetTopHalf:
		return geometry.Rect{X: vf.X, Y: vf.Y, Width: vf.Width, Height: vf.Height / 2}
	case PresetBottomHalf:
		return geometry.Rect{X: vf.X, Y: vf.Y + vf.Height/2, Width: vf.Width, Height: vf.Height / 2}
	}
	return vf
}
