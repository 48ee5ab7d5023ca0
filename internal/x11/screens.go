package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/halvard/spyglass/internal/geometry"
	"github.com/halvard/spyglass/internal/resolve"
)

// Screens enumerates active displays via XRandR and returns fresh
// descriptors: full frame, visible frame (frame minus panels/docks), scale,
// and the primary flag. Never cached; displays can change at any moment.
func (c *Connection) Screens() ([]resolve.ScreenDescriptor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var primaryOutput randr.Output
	if prim, err := randr.GetOutputPrimary(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		primaryOutput = prim.Output
	}

	var screens []resolve.ScreenDescriptor
	for _, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		// Skip disabled CRTCs.
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		output := crtcInfo.Outputs[0]
		name := fmt.Sprintf("Screen%d", len(screens))
		scale := 1.0
		if outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), output, resources.ConfigTimestamp).Reply(); err == nil {
			if n := string(outputInfo.Name); n != "" {
				name = n
			}
			scale = dpiScale(int(crtcInfo.Width), int(outputInfo.MmWidth))
		}

		frame := geometry.Rect{
			X:      float64(crtcInfo.X),
			Y:      float64(crtcInfo.Y),
			Width:  float64(crtcInfo.Width),
			Height: float64(crtcInfo.Height),
		}

		screens = append(screens, resolve.ScreenDescriptor{
			Index:        len(screens),
			Name:         name,
			Frame:        frame,
			VisibleFrame: c.visibleFrame(frame),
			Scale:        scale,
			DisplayID:    uint32(output),
			IsPrimary:    output == primaryOutput,
		})
	}

	if len(screens) == 0 {
		return nil, fmt.Errorf("no active screens found")
	}
	return screens, nil
}

// visibleFrame subtracts reserved system chrome from a screen frame: dock
// struts first, then the EWMH work area as a fallback for window managers
// that only publish the latter.
func (c *Connection) visibleFrame(frame geometry.Rect) geometry.Rect {
	if visible, ok := c.applyStruts(frame); ok {
		return visible
	}

	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workArea) == 0 {
		return frame
	}
	idx := 0
	if cur, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(cur) < len(workArea) {
		idx = int(cur)
	}
	wa := workArea[idx]
	waRect := geometry.Rect{
		X:      float64(wa.X),
		Y:      float64(wa.Y),
		Width:  float64(wa.Width),
		Height: float64(wa.Height),
	}

	if overlap := frame.Intersect(waRect); overlap.Area() > 0 {
		return overlap
	}
	return frame
}

// applyStruts clips a frame by every dock window's strut that touches it.
// Reports ok=false when no dock published struts, so the caller can fall
// back to the work area.
func (c *Connection) applyStruts(frame geometry.Rect) (geometry.Rect, bool) {
	rootGeom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return frame, false
	}
	rootW := float64(rootGeom.Width)
	rootH := float64(rootGeom.Height)

	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return frame, false
	}

	var left, right, top, bottom float64
	for _, win := range clients {
		if !isDock(c, win) {
			continue
		}
		sp, err := ewmh.WmStrutPartialGet(c.XUtil, win)
		if err != nil {
			// Some docks only set _NET_WM_STRUT.
			s, err := ewmh.WmStrutGet(c.XUtil, win)
			if err != nil {
				continue
			}
			sp = &ewmh.WmStrutPartial{
				Left: s.Left, Right: s.Right, Top: s.Top, Bottom: s.Bottom,
				LeftStartY: 0, LeftEndY: uint(rootH - 1),
				RightStartY: 0, RightEndY: uint(rootH - 1),
				TopStartX: 0, TopEndX: uint(rootW - 1),
				BottomStartX: 0, BottomEndX: uint(rootW - 1),
			}
		}

		if sp.Top > 0 {
			strut := geometry.Rect{
				X:      float64(sp.TopStartX),
				Y:      0,
				Width:  float64(sp.TopEndX-sp.TopStartX) + 1,
				Height: float64(sp.Top),
			}
			if o := frame.Intersect(strut); o.Area() > 0 && o.Height > top {
				top = o.Height
			}
		}
		if sp.Bottom > 0 {
			strut := geometry.Rect{
				X:      float64(sp.BottomStartX),
				Y:      rootH - float64(sp.Bottom),
				Width:  float64(sp.BottomEndX-sp.BottomStartX) + 1,
				Height: float64(sp.Bottom),
			}
			if o := frame.Intersect(strut); o.Area() > 0 && o.Height > bottom {
				bottom = o.Height
			}
		}
		if sp.Left > 0 {
			strut := geometry.Rect{
				X:      0,
				Y:      float64(sp.LeftStartY),
				Width:  float64(sp.Left),
				Height: float64(sp.LeftEndY-sp.LeftStartY) + 1,
			}
			if o := frame.Intersect(strut); o.Area() > 0 && o.Width > left {
				left = o.Width
			}
		}
		if sp.Right > 0 {
			strut := geometry.Rect{
				X:      rootW - float64(sp.Right),
				Y:      float64(sp.RightStartY),
				Width:  float64(sp.Right),
				Height: float64(sp.RightEndY-sp.RightStartY) + 1,
			}
			if o := frame.Intersect(strut); o.Area() > 0 && o.Width > right {
				right = o.Width
			}
		}
	}

	if left == 0 && right == 0 && top == 0 && bottom == 0 {
		return frame, false
	}

	visible := geometry.Rect{
		X:      frame.X + left,
		Y:      frame.Y + top,
		Width:  frame.Width - left - right,
		Height: frame.Height - top - bottom,
	}
	if visible.Width < 1 {
		visible.Width = 1
	}
	if visible.Height < 1 {
		visible.Height = 1
	}
	return visible, true
}

func isDock(c *Connection, win xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, win)
	if err != nil {
		return false
	}
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_DOCK" {
			return true
		}
	}
	return false
}

// dpiScale estimates a display scale factor from pixel and physical width.
// Unknown physical size means scale 1.
func dpiScale(px, mm int) float64 {
	if px <= 0 || mm <= 0 {
		return 1
	}
	dpi := float64(px) / (float64(mm) / 25.4)
	switch {
	case dpi >= 264:
		return 3
	case dpi >= 168:
		return 2
	case dpi >= 132:
		return 1.5
	default:
		return 1
	}
}
