package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/halvard/spyglass/internal/geometry"
	"github.com/halvard/spyglass/internal/layout"
	"github.com/halvard/spyglass/internal/logging"
	"github.com/halvard/spyglass/internal/overlay"
	"github.com/halvard/spyglass/internal/resolve"
)

// criteriaFromTarget maps the shared targeting fields onto one criteria
// variant. Compound shapes are checked before their component fields so
// app+title and app+frontmost do not degrade to plain app matches.
func criteriaFromTarget(id *uint32, app, title string, frontmost bool) (resolve.Criteria, error) {
	switch {
	case id != nil:
		return resolve.ByID{ID: resolve.WindowID(*id)}, nil
	case app != "" && title != "":
		return resolve.ByAppAndTitle{App: app, Title: title}, nil
	case app != "" && frontmost:
		return resolve.FrontmostOfApp{App: app}, nil
	case app != "":
		return resolve.ByApp{App: app}, nil
	case title != "":
		return resolve.ByTitleSubstring{Title: title}, nil
	case frontmost:
		return resolve.Frontmost{}, nil
	}
	return nil, fmt.Errorf("no window target given: set window_id, app, title, or frontmost")
}

// selectorFromTarget maps the screen fields onto a selector. Both nil means
// the caller did not ask for a screen; the move handler then stays on the
// window's current screen.
func selectorFromTarget(index *int, relation string) (resolve.ScreenSelector, error) {
	if index != nil {
		if relation != "" {
			return nil, fmt.Errorf("screen and screen_relation are mutually exclusive")
		}
		return resolve.ScreenByIndex{Index: *index}, nil
	}
	switch rel := resolve.Relation(strings.ToLower(relation)); rel {
	case "":
		return nil, nil
	case resolve.RelNext, resolve.RelPrevious, resolve.RelSame, resolve.RelPrimary:
		return resolve.ScreenRelative{Relation: rel}, nil
	default:
		return nil, fmt.Errorf("unknown screen_relation %q (want next, previous, same, or primary)", relation)
	}
}

func windowInfo(d resolve.WindowDescriptor, active resolve.WindowID) WindowInfo {
	return WindowInfo{
		ID:        uint32(d.ID),
		App:       d.App,
		Title:     d.Title,
		X:         int(d.Bounds.X),
		Y:         int(d.Bounds.Y),
		Width:     int(d.Bounds.Width),
		Height:    int(d.Bounds.Height),
		Minimized: d.IsMinimized,
		Active:    active != 0 && d.ID == active,
	}
}

func screenInfo(d resolve.ScreenDescriptor) ScreenInfo {
	return ScreenInfo{
		Index:         d.Index,
		Name:          d.Name,
		X:             int(d.Frame.X),
		Y:             int(d.Frame.Y),
		Width:         int(d.Frame.Width),
		Height:        int(d.Frame.Height),
		VisibleX:      int(d.VisibleFrame.X),
		VisibleY:      int(d.VisibleFrame.Y),
		VisibleWidth:  int(d.VisibleFrame.Width),
		VisibleHeight: int(d.VisibleFrame.Height),
		Scale:         d.Scale,
		Primary:       d.IsPrimary,
	}
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	snap, err := s.desktop.Snapshot()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}

	windows := snap.Windows
	if args.App != "" {
		windows = resolve.WindowsOfApp(args.App, snap)
	}

	out := ListWindowsOutput{Windows: make([]WindowInfo, 0, len(windows))}
	for _, w := range windows {
		out.Windows = append(out.Windows, windowInfo(w, snap.Active))
	}

	s.logger.Log(logging.ActionResolveWindow, map[string]interface{}{
		"app":   args.App,
		"count": len(out.Windows),
	})
	return nil, out, nil
}

func (s *Server) handleListScreens(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListScreensInput) (*mcpsdk.CallToolResult, ListScreensOutput, error) {
	screens, err := s.desktop.Screens()
	if err != nil {
		return nil, ListScreensOutput{}, err
	}

	out := ListScreensOutput{Screens: make([]ScreenInfo, 0, len(screens))}
	for _, sc := range screens {
		out.Screens = append(out.Screens, screenInfo(sc))
	}

	s.logger.Log(logging.ActionResolveScreen, map[string]interface{}{
		"count": len(out.Screens),
	})
	return nil, out, nil
}

func (s *Server) handleFocusWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args FocusWindowInput) (*mcpsdk.CallToolResult, FocusWindowOutput, error) {
	criteria, err := criteriaFromTarget(args.WindowID, args.App, args.Title, args.Frontmost)
	if err != nil {
		return nil, FocusWindowOutput{}, err
	}

	snap, err := s.desktop.Snapshot()
	if err != nil {
		return nil, FocusWindowOutput{}, err
	}
	win, err := resolve.Window(criteria, snap)
	if err != nil {
		return nil, FocusWindowOutput{}, err
	}

	if err := s.desktop.Activate(win.ID); err != nil {
		return nil, FocusWindowOutput{}, fmt.Errorf("failed to focus window %d: %w", win.ID, err)
	}

	s.logger.Log(logging.ActionFocus, map[string]interface{}{
		"criteria": criteria.String(),
		"window":   uint32(win.ID),
		"app":      win.App,
	})
	return nil, FocusWindowOutput{
		WindowID: uint32(win.ID),
		App:      win.App,
		Title:    win.Title,
	}, nil
}

func (s *Server) handleMoveWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveWindowInput) (*mcpsdk.CallToolResult, MoveWindowOutput, error) {
	criteria, err := criteriaFromTarget(args.WindowID, args.App, args.Title, args.Frontmost)
	if err != nil {
		return nil, MoveWindowOutput{}, err
	}
	selector, err := selectorFromTarget(args.Screen, args.ScreenRelation)
	if err != nil {
		return nil, MoveWindowOutput{}, err
	}

	var preset *layout.Preset
	if args.Preset != "" {
		p, err := layout.ParsePreset(args.Preset)
		if err != nil {
			return nil, MoveWindowOutput{}, err
		}
		preset = &p
	}

	snap, err := s.desktop.Snapshot()
	if err != nil {
		return nil, MoveWindowOutput{}, err
	}
	win, err := resolve.Window(criteria, snap)
	if err != nil {
		return nil, MoveWindowOutput{}, err
	}

	screens, err := s.desktop.Screens()
	if err != nil {
		return nil, MoveWindowOutput{}, err
	}
	target, err := targetScreen(selector, screens, win)
	if err != nil {
		return nil, MoveWindowOutput{}, err
	}

	frame, err := layout.Compute(win, preset, layout.Overrides{
		X:      args.X,
		Y:      args.Y,
		Width:  args.Width,
		Height: args.Height,
	}, target, screens)
	if err != nil {
		return nil, MoveWindowOutput{}, err
	}

	if err := s.desktop.ApplyFrame(win.ID, frame); err != nil {
		return nil, MoveWindowOutput{}, fmt.Errorf("failed to move window %d: %w", win.ID, err)
	}
	if args.Activate {
		if err := s.desktop.Activate(win.ID); err != nil {
			return nil, MoveWindowOutput{}, fmt.Errorf("moved window %d but failed to focus it: %w", win.ID, err)
		}
	}

	s.logger.Log(logging.ActionLayout, map[string]interface{}{
		"criteria": criteria.String(),
		"window":   uint32(win.ID),
		"preset":   args.Preset,
		"screen":   target.Index,
		"frame":    fmt.Sprintf("%gx%g+%g+%g", frame.Width, frame.Height, frame.X, frame.Y),
	})
	return nil, MoveWindowOutput{
		WindowID: uint32(win.ID),
		App:      win.App,
		X:        int(frame.X),
		Y:        int(frame.Y),
		Width:    int(frame.Width),
		Height:   int(frame.Height),
		Screen:   target.Index,
	}, nil
}

// targetScreen resolves the destination screen for a move. With no selector
// the window stays where it is: its current screen, falling back to the
// primary when the window sits off every screen.
func targetScreen(sel resolve.ScreenSelector, screens []resolve.ScreenDescriptor, win resolve.WindowDescriptor) (resolve.ScreenDescriptor, error) {
	if sel == nil {
		if sc, ok := resolve.ScreenContaining(win, screens); ok {
			return sc, nil
		}
		sel = resolve.ScreenRelative{Relation: resolve.RelPrimary}
	}
	return resolve.Screen(sel, screens, &win)
}

func (s *Server) handleConvertBox(_ context.Context, _ *mcpsdk.CallToolRequest, args ConvertBoxInput) (*mcpsdk.CallToolResult, ConvertBoxOutput, error) {
	if args.ImageWidth <= 0 || args.ImageHeight <= 0 {
		return nil, ConvertBoxOutput{}, fmt.Errorf("image_width and image_height must be positive, got %dx%d", args.ImageWidth, args.ImageHeight)
	}
	imageSize := geometry.Size{Width: float64(args.ImageWidth), Height: float64(args.ImageHeight)}

	box, err := s.registry.ConvertBox(args.Model, args.Box, imageSize)
	if err != nil {
		return nil, ConvertBoxOutput{}, err
	}

	out := ConvertBoxOutput{Box: box}
	if c, ok := s.registry.Lookup(args.Model); ok {
		out.GridBase = c.GridBase
	}
	if center, ok := geometry.CenterPoint(box); ok {
		out.CenterX = center.X
		out.CenterY = center.Y
	}

	s.logger.Log(logging.ActionConvertBox, map[string]interface{}{
		"model":     args.Model,
		"grid_base": out.GridBase,
		"box":       fmt.Sprintf("%v", box),
	})
	return nil, out, nil
}

func (s *Server) handleShowOverlay(ctx context.Context, _ *mcpsdk.CallToolRequest, args ShowOverlayInput) (*mcpsdk.CallToolResult, ShowOverlayOutput, error) {
	if s.annotator == nil {
		return nil, ShowOverlayOutput{}, fmt.Errorf("overlay rendering is not available on this server")
	}
	if len(args.Elements) == 0 && len(args.Keys) == 0 && len(args.Breadcrumb) == 0 {
		return nil, ShowOverlayOutput{}, fmt.Errorf("nothing to show: give elements, keys, or a breadcrumb")
	}
	if len(args.Keys) > 0 && len(args.Breadcrumb) > 0 {
		return nil, ShowOverlayOutput{}, fmt.Errorf("keys and breadcrumb are mutually exclusive")
	}

	screens, err := s.desktop.Screens()
	if err != nil {
		return nil, ShowOverlayOutput{}, err
	}
	viewSize := resolve.VirtualBounds(screens).Dim()

	imageSize := geometry.Size{Width: float64(args.ImageWidth), Height: float64(args.ImageHeight)}
	if args.Model != "" && s.registry.UsesGrid(args.Model) && (args.ImageWidth <= 0 || args.ImageHeight <= 0) {
		return nil, ShowOverlayOutput{}, fmt.Errorf("model %q uses grid coordinates: image_width and image_height are required", args.Model)
	}

	annotations := make([]overlay.Annotation, 0, len(args.Elements))
	for i, el := range args.Elements {
		box := el.Box
		if args.Model != "" {
			box, err = s.registry.ConvertBox(args.Model, el.Box, imageSize)
			if err != nil {
				return nil, ShowOverlayOutput{}, fmt.Errorf("elements[%d]: %w", i, err)
			}
		}
		if len(box) != 4 {
			// Malformed detections are skipped, not fatal.
			continue
		}
		annotations = append(annotations, overlay.Annotation{
			Bounds: geometry.Rect{
				X:      float64(box[0]),
				Y:      float64(box[1]),
				Width:  float64(box[2] - box[0]),
				Height: float64(box[3] - box[1]),
			},
			Label: el.Label,
		})
	}

	var panel overlay.Spec
	switch {
	case len(args.Keys) > 0:
		panel = overlay.KeycapSpec{Keys: args.Keys}
	case len(args.Breadcrumb) > 0:
		panel = overlay.BreadcrumbSpec{Segments: args.Breadcrumb}
	}

	durationMS := args.DurationMS
	if durationMS <= 0 {
		durationMS = s.config.GetOverlayConfig().DurationMS
	}

	if err := s.annotator.Render(annotations, panel, viewSize); err != nil {
		return nil, ShowOverlayOutput{}, fmt.Errorf("failed to render overlay: %w", err)
	}

	s.logger.Log(logging.ActionAnnotate, map[string]interface{}{
		"elements":    len(annotations),
		"panel":       panelKind(panel),
		"duration_ms": durationMS,
	})

	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(durationMS) * time.Millisecond):
	}
	s.annotator.HideAll()

	return nil, ShowOverlayOutput{
		Shown:      len(annotations),
		DurationMS: durationMS,
	}, nil
}

func panelKind(panel overlay.Spec) string {
	switch panel.(type) {
	case overlay.KeycapSpec:
		return "keycap"
	case overlay.BreadcrumbSpec:
		return "breadcrumb"
	default:
		return "none"
	}
}
