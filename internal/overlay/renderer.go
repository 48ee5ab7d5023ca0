package overlay

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"

	"github.com/halvard/spyglass/internal/geometry"
)

// Annotation is one element to highlight on screen: its rect in screen
// pixels plus an optional label.
type Annotation struct {
	Bounds geometry.Rect
	Label  string
}

// elementBorder is a rectangular outline built from 4 thin windows.
type elementBorder struct {
	top, bottom, left, right xproto.Window
	created                  bool
	mapped                   bool
}

// textPane is a single override-redirect window with its own GC for text.
type textPane struct {
	win     xproto.Window
	gc      xproto.Gcontext
	created bool
	mapped  bool
}

// Renderer draws annotation overlays as override-redirect X11 windows, so
// they bypass the window manager and stack above everything. Windows are
// pooled and reused between renders.
type Renderer struct {
	xu   *xgbutil.XUtil
	root xproto.Window

	borders []*elementBorder
	labels  []*textPane
	panel   *textPane

	font       xproto.Font
	fontOpened bool
	fontFailed bool
}

// NewRenderer creates a renderer drawing on the given root window.
func NewRenderer(xu *xgbutil.XUtil, root xproto.Window) *Renderer {
	return &Renderer{xu: xu, root: root}
}

// Render shows borders and labels for each annotation, plus an optional info
// panel in the top-right corner of the view. viewSize bounds label placement;
// it is normally the screen the annotations live on.
func (r *Renderer) Render(annotations []Annotation, panel Spec, viewSize geometry.Size) error {
	if err := r.ensureBorders(len(annotations)); err != nil {
		return err
	}
	if err := r.ensureLabels(len(annotations)); err != nil {
		return err
	}

	for i, a := range annotations {
		r.showBorder(r.borders[i], a.Bounds)
		if a.Label == "" {
			r.hidePane(r.labels[i])
			continue
		}
		pos := LabelPosition(a.Bounds, viewSize)
		w := len(a.Label)*charWidth + 2*paddingX
		r.showPane(r.labels[i], a.Label, int(pos.X), int(pos.Y), w, labelHeight+paddingY)
	}

	if panel == nil {
		if r.panel != nil {
			r.hidePane(r.panel)
		}
		return nil
	}
	if r.panel == nil {
		r.panel = &textPane{}
	}
	size := panel.Size()
	x := int(viewSize.Width) - int(size.Width) - panelMargin
	if x < 0 {
		x = 0
	}
	r.showPane(r.panel, panel.Text(), x, panelMargin, int(size.Width), int(size.Height))
	return nil
}

// HideAll unmaps every overlay window without destroying it.
func (r *Renderer) HideAll() {
	for _, b := range r.borders {
		r.hideBorder(b)
	}
	for _, l := range r.labels {
		r.hidePane(l)
	}
	if r.panel != nil {
		r.hidePane(r.panel)
	}
}

// Cleanup destroys all overlay resources.
func (r *Renderer) Cleanup() {
	for _, b := range r.borders {
		r.destroyBorder(b)
	}
	for _, l := range r.labels {
		r.destroyPane(l)
	}
	if r.panel != nil {
		r.destroyPane(r.panel)
		r.panel = nil
	}
	if r.fontOpened {
		xproto.CloseFont(r.xu.Conn(), r.font)
		r.fontOpened = false
	}
	r.borders = nil
	r.labels = nil
}

func (r *Renderer) ensureBorders(count int) error {
	for i := count; i < len(r.borders); i++ {
		r.hideBorder(r.borders[i])
	}
	for len(r.borders) < count {
		b := &elementBorder{}
		if err := r.createBorder(b); err != nil {
			return err
		}
		r.borders = append(r.borders, b)
	}
	return nil
}

func (r *Renderer) ensureLabels(count int) error {
	for i := count; i < len(r.labels); i++ {
		r.hidePane(r.labels[i])
	}
	for len(r.labels) < count {
		r.labels = append(r.labels, &textPane{})
	}
	return nil
}

func (r *Renderer) createBorder(b *elementBorder) error {
	var err error
	if b.top, err = r.createWindow(); err != nil {
		return err
	}
	if b.bottom, err = r.createWindow(); err != nil {
		return err
	}
	if b.left, err = r.createWindow(); err != nil {
		return err
	}
	if b.right, err = r.createWindow(); err != nil {
		return err
	}
	b.created = true
	return nil
}

func (r *Renderer) showBorder(b *elementBorder, rect geometry.Rect) {
	x, y := int(rect.X), int(rect.Y)
	w, h := int(rect.Width), int(rect.Height)
	t := BorderThickness

	r.updateWindow(b.top, x, y, w, t, ColorElement)
	r.updateWindow(b.bottom, x, y+h-t, w, t, ColorElement)
	r.updateWindow(b.left, x, y+t, t, h-2*t, ColorElement)
	r.updateWindow(b.right, x+w-t, y+t, t, h-2*t, ColorElement)

	conn := r.xu.Conn()
	xproto.MapWindow(conn, b.top)
	xproto.MapWindow(conn, b.bottom)
	xproto.MapWindow(conn, b.left)
	xproto.MapWindow(conn, b.right)
	b.mapped = true
}

func (r *Renderer) hideBorder(b *elementBorder) {
	if !b.mapped {
		return
	}
	conn := r.xu.Conn()
	xproto.UnmapWindow(conn, b.top)
	xproto.UnmapWindow(conn, b.bottom)
	xproto.UnmapWindow(conn, b.left)
	xproto.UnmapWindow(conn, b.right)
	b.mapped = false
}

func (r *Renderer) destroyBorder(b *elementBorder) {
	conn := r.xu.Conn()
	for _, w := range []xproto.Window{b.top, b.bottom, b.left, b.right} {
		if w != 0 {
			xproto.DestroyWindow(conn, w)
		}
	}
	*b = elementBorder{}
}

func (r *Renderer) showPane(p *textPane, text string, x, y, w, h int) {
	if !p.created {
		if err := r.createPane(p); err != nil {
			return
		}
	}
	conn := r.xu.Conn()

	r.updateWindow(p.win, x, y, w, h, ColorPanelBg)
	xproto.ChangeGC(conn, p.gc, xproto.GcForeground|xproto.GcBackground,
		[]uint32{ColorText, ColorPanelBg})
	xproto.ClearArea(conn, false, p.win, 0, 0, 0, 0)

	if len(text) > 255 {
		text = text[:255]
	}
	baseline := (h+lineHeight)/2 - 4
	xproto.ImageText8(conn, byte(len(text)), xproto.Drawable(p.win), p.gc,
		int16(paddingX), int16(baseline), text)

	xproto.MapWindow(conn, p.win)
	p.mapped = true
}

func (r *Renderer) hidePane(p *textPane) {
	if !p.mapped {
		return
	}
	xproto.UnmapWindow(r.xu.Conn(), p.win)
	p.mapped = false
}

func (r *Renderer) destroyPane(p *textPane) {
	conn := r.xu.Conn()
	if p.gc != 0 {
		xproto.FreeGC(conn, p.gc)
	}
	if p.win != 0 {
		xproto.DestroyWindow(conn, p.win)
	}
	*p = textPane{}
}

func (r *Renderer) createPane(p *textPane) error {
	if err := r.ensureFont(); err != nil {
		return err
	}
	conn := r.xu.Conn()

	win, err := r.createWindow()
	if err != nil {
		return err
	}

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		xproto.DestroyWindow(conn, win)
		return err
	}
	err = xproto.CreateGCChecked(conn, gc, xproto.Drawable(win),
		xproto.GcForeground|xproto.GcBackground|xproto.GcFont|xproto.GcGraphicsExposures,
		[]uint32{ColorText, ColorPanelBg, uint32(r.font), 0},
	).Check()
	if err != nil {
		xproto.DestroyWindow(conn, win)
		return err
	}

	p.win = win
	p.gc = gc
	p.created = true
	return nil
}

func (r *Renderer) ensureFont() error {
	if r.fontOpened {
		return nil
	}
	if r.fontFailed {
		return fmt.Errorf("no usable X11 font")
	}
	conn := r.xu.Conn()

	font, err := xproto.NewFontId(conn)
	if err != nil {
		r.fontFailed = true
		return err
	}
	for _, name := range []string{"fixed", "9x15", "8x13", "6x13"} {
		if err := xproto.OpenFontChecked(conn, font, uint16(len(name)), name).Check(); err == nil {
			r.font = font
			r.fontOpened = true
			return nil
		}
	}
	r.fontFailed = true
	return fmt.Errorf("no usable X11 font")
}

// createWindow creates an override-redirect window so the overlay bypasses
// the window manager.
func (r *Renderer) createWindow() (xproto.Window, error) {
	conn := r.xu.Conn()
	screen := r.xu.Screen()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return 0, err
	}
	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		r.root,
		0, 0,
		1, 1,
		0,
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwOverrideRedirect|xproto.CwBackPixel,
		// Value list order follows the bit positions of the mask; CwBackPixel
		// is the lower bit, so it comes first.
		[]uint32{0, 1},
	).Check()
	if err != nil {
		return 0, err
	}
	return wid, nil
}

func (r *Renderer) updateWindow(wid xproto.Window, x, y, width, height int, color uint32) {
	conn := r.xu.Conn()
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	xproto.ConfigureWindow(conn, wid,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|xproto.ConfigWindowStackMode,
		[]uint32{uint32(x), uint32(y), uint32(width), uint32(height), xproto.StackModeAbove},
	)
	xproto.ChangeWindowAttributes(conn, wid, xproto.CwBackPixel, []uint32{color})
	xproto.ClearArea(conn, false, wid, 0, 0, 0, 0)
}
