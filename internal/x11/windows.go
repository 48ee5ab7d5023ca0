package x11

import (
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/halvard/spyglass/internal/geometry"
	"github.com/halvard/spyglass/internal/resolve"
)

// Snapshot enumerates all normal application windows plus the window
// manager's activity signals, producing one consistent view for the
// resolver. The caller fetches a snapshot immediately before resolving and
// never mid-computation.
func (c *Connection) Snapshot() (resolve.Snapshot, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return resolve.Snapshot{}, err
	}

	snap := resolve.Snapshot{}
	for _, win := range clients {
		if !c.isNormalWindow(win) {
			continue
		}
		bounds, ok := c.windowBounds(win)
		if !ok {
			continue
		}
		snap.Windows = append(snap.Windows, resolve.WindowDescriptor{
			ID:          resolve.WindowID(win),
			App:         c.windowApp(win),
			Title:       c.windowTitle(win),
			Bounds:      bounds,
			IsMinimized: c.isMinimized(win),
		})
	}

	if active, err := ewmh.ActiveWindowGet(c.XUtil); err == nil {
		snap.Active = resolve.WindowID(active)
	}
	if stacking, err := ewmh.ClientListStackingGet(c.XUtil); err == nil {
		// EWMH lists bottom to top; the resolver wants top first.
		for i := len(stacking) - 1; i >= 0; i-- {
			snap.Stacking = append(snap.Stacking, resolve.WindowID(stacking[i]))
		}
	}

	return snap, nil
}

// ApplyFrame moves and resizes a window to a computed screen-space rect.
// Maximized state is cleared first, otherwise many window managers ignore
// the request.
func (c *Connection) ApplyFrame(id resolve.WindowID, frame geometry.Rect) error {
	win := xproto.Window(id)
	c.unmaximize(win)

	x, y := int(frame.X), int(frame.Y)
	w, h := int(frame.Width), int(frame.Height)

	if err := ewmh.MoveresizeWindow(c.XUtil, win, x, y, w, h); err != nil {
		// Fallback to direct configuration for non-EWMH window managers.
		xwindow.New(c.XUtil, win).MoveResize(x, y, w, h)
	}
	return nil
}

// Activate focuses and raises a window via _NET_ACTIVE_WINDOW. The client
// message is built by hand; the xgbutil helper panics on this library
// version (uint vs int type assertion).
func (c *Connection) Activate(id resolve.WindowID) error {
	atomReply, err := xproto.InternAtom(c.XUtil.Conn(), false,
		uint16(len("_NET_ACTIVE_WINDOW")), "_NET_ACTIVE_WINDOW").Reply()
	if err != nil {
		return err
	}

	const sourceIndication = 2 // pager/direct action
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(id),
		Type:   atomReply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{sourceIndication, 0, 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

func (c *Connection) unmaximize(win xproto.Window) {
	states, err := ewmh.WmStateGet(c.XUtil, win)
	if err != nil {
		return
	}
	for _, state := range states {
		if state == "_NET_WM_STATE_MAXIMIZED_HORZ" || state == "_NET_WM_STATE_MAXIMIZED_VERT" {
			ewmh.WmStateReq(c.XUtil, win, 0, state)
		}
	}
}

// windowBounds returns a window's rect in global screen pixels. Geometry is
// relative to the parent, so the origin is translated to root coordinates.
func (c *Connection) windowBounds(win xproto.Window) (geometry.Rect, bool) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(win)).Reply()
	if err != nil {
		return geometry.Rect{}, false
	}
	translate, err := xproto.TranslateCoordinates(c.XUtil.Conn(), win, c.Root, 0, 0).Reply()
	if err != nil {
		return geometry.Rect{}, false
	}
	return geometry.Rect{
		X:      float64(translate.DstX),
		Y:      float64(translate.DstY),
		Width:  float64(geom.Width),
		Height: float64(geom.Height),
	}, true
}

func (c *Connection) windowApp(win xproto.Window) string {
	wmClass, err := icccm.WmClassGet(c.XUtil, win)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(wmClass.Class)
}

func (c *Connection) windowTitle(win xproto.Window) string {
	if title, err := ewmh.WmNameGet(c.XUtil, win); err == nil {
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}
	if title, err := icccm.WmNameGet(c.XUtil, win); err == nil {
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}
	return ""
}

func (c *Connection) isMinimized(win xproto.Window) bool {
	states, err := ewmh.WmStateGet(c.XUtil, win)
	if err != nil {
		return false
	}
	for _, state := range states {
		if state == "_NET_WM_STATE_HIDDEN" {
			return true
		}
	}
	return false
}

// isNormalWindow filters out desktops, docks, splash screens, and other
// non-application windows.
func (c *Connection) isNormalWindow(win xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, win)
	if err != nil {
		return true
	}
	for _, t := range types {
		switch t {
		case "_NET_WM_WINDOW_TYPE_NORMAL":
			return true
		case "_NET_WM_WINDOW_TYPE_DESKTOP",
			"_NET_WM_WINDOW_TYPE_DOCK",
			"_NET_WM_WINDOW_TYPE_SPLASH",
			"_NET_WM_WINDOW_TYPE_NOTIFICATION":
			return false
		}
	}
	return len(types) == 0
}
