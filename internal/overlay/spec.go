// Package overlay computes sizes and placements for transient informational
// overlays (hotkey hints, navigation breadcrumbs, element annotations) and
// renders them as override-redirect X11 windows.
package overlay

import (
	"strings"

	"github.com/halvard/spyglass/internal/geometry"
)

// Colors for overlay chrome.
const (
	ColorElement = 0x3498db // blue element borders
	ColorText    = 0xf5f7fa // light text
	ColorPanelBg = 0x1f2933 // dark panel background
)

// BorderThickness is the element border width in pixels.
const BorderThickness = 3

// Text metrics for the fixed X11 fonts the renderer opens.
const (
	charWidth   = 7
	lineHeight  = 16
	paddingX    = 10
	paddingY    = 8
	panelMargin = 12
)

// minPanelWidth is the floor: even a one-key hint stays legible.
const minPanelWidth = 120

const keySeparator = " + "
const crumbSeparator = " > "

// Spec is a typed description of overlay content from which a size is
// derived. Specs are created per display request and discarded afterwards.
type Spec interface {
	// Text returns the rendered panel line.
	Text() string
	// Size returns the panel size. More content never yields a smaller
	// panel than less content.
	Size() geometry.Size
}

// KeycapSpec displays an ordered list of key names, e.g. a hotkey being
// pressed on the user's behalf.
type KeycapSpec struct {
	Keys []string
}

func (s KeycapSpec) Text() string { return strings.Join(s.Keys, keySeparator) }

func (s KeycapSpec) Size() geometry.Size { return panelSize(s.Text()) }

// BreadcrumbSpec displays an ordered path, e.g. the menu trail that was
// walked to reach an item. Segments lay out horizontally, so height is
// constant regardless of depth.
type BreadcrumbSpec struct {
	Segments []string
}

func (s BreadcrumbSpec) Text() string { return strings.Join(s.Segments, crumbSeparator) }

func (s BreadcrumbSpec) Size() geometry.Size { return panelSize(s.Text()) }

// panelSize sizes a single-line panel: width tracks content length with a
// legibility floor, height is one line plus padding.
func panelSize(text string) geometry.Size {
	width := len(text)*charWidth + 2*paddingX
	if width < minPanelWidth {
		width = minPanelWidth
	}
	return geometry.Size{
		Width:  float64(width),
		Height: float64(lineHeight + 2*paddingY),
	}
}
