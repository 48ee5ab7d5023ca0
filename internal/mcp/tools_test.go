package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/halvard/spyglass/internal/config"
	"github.com/halvard/spyglass/internal/geometry"
	"github.com/halvard/spyglass/internal/overlay"
	"github.com/halvard/spyglass/internal/resolve"
)

// fakeDesktop implements Desktop against canned data and records mutations.
type fakeDesktop struct {
	screens []resolve.ScreenDescriptor
	snap    resolve.Snapshot

	applied   map[resolve.WindowID]geometry.Rect
	activated []resolve.WindowID
}

func (f *fakeDesktop) Screens() ([]resolve.ScreenDescriptor, error) { return f.screens, nil }
func (f *fakeDesktop) Snapshot() (resolve.Snapshot, error)          { return f.snap, nil }

func (f *fakeDesktop) ApplyFrame(id resolve.WindowID, frame geometry.Rect) error {
	if f.applied == nil {
		f.applied = make(map[resolve.WindowID]geometry.Rect)
	}
	f.applied[id] = frame
	return nil
}

func (f *fakeDesktop) Activate(id resolve.WindowID) error {
	f.activated = append(f.activated, id)
	return nil
}

// fakeAnnotator records the last render call.
type fakeAnnotator struct {
	annotations []overlay.Annotation
	panel       overlay.Spec
	viewSize    geometry.Size
	hidden      bool
}

func (f *fakeAnnotator) Render(annotations []overlay.Annotation, panel overlay.Spec, viewSize geometry.Size) error {
	f.annotations = annotations
	f.panel = panel
	f.viewSize = viewSize
	return nil
}

func (f *fakeAnnotator) HideAll() { f.hidden = true }

func newTestDesktop() *fakeDesktop {
	return &fakeDesktop{
		screens: []resolve.ScreenDescriptor{
			{
				Index:        0,
				Name:         "eDP-1",
				Frame:        geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080},
				VisibleFrame: geometry.Rect{X: 0, Y: 30, Width: 1920, Height: 1050},
				Scale:        1,
				IsPrimary:    true,
			},
			{
				Index:        1,
				Name:         "DP-2",
				Frame:        geometry.Rect{X: 1920, Y: 0, Width: 2560, Height: 1440},
				VisibleFrame: geometry.Rect{X: 1920, Y: 0, Width: 2560, Height: 1440},
				Scale:        1,
			},
		},
		snap: resolve.Snapshot{
			Windows: []resolve.WindowDescriptor{
				{ID: 10, App: "Firefox", Title: "Mozilla Firefox", Bounds: geometry.Rect{X: 100, Y: 100, Width: 800, Height: 600}},
				{ID: 20, App: "kitty", Title: "~/src", Bounds: geometry.Rect{X: 2000, Y: 50, Width: 1000, Height: 700}},
			},
			Active:   20,
			Stacking: []resolve.WindowID{20, 10},
		},
	}
}

func newTestServer(desktop Desktop, annotator Annotator) *Server {
	return NewServer(config.Default(), desktop, annotator)
}

func TestCriteriaFromTarget(t *testing.T) {
	id := uint32(42)
	cases := []struct {
		name      string
		id        *uint32
		app       string
		title     string
		frontmost bool
		want      string
	}{
		{"id wins", &id, "Firefox", "ignored", true, "id=42"},
		{"app and title", nil, "Firefox", "Mozilla", false, `app="Firefox" title~"Mozilla"`},
		{"frontmost of app", nil, "Firefox", "", true, `frontmost of app="Firefox"`},
		{"app alone", nil, "Firefox", "", false, `app="Firefox"`},
		{"title alone", nil, "", "Mozilla", false, `title~"Mozilla"`},
		{"frontmost alone", nil, "", "", true, "frontmost"},
	}
	for _, tc := range cases {
		c, err := criteriaFromTarget(tc.id, tc.app, tc.title, tc.frontmost)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if c.String() != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, c.String(), tc.want)
		}
	}

	if _, err := criteriaFromTarget(nil, "", "", false); err == nil {
		t.Fatal("expected error for empty target")
	}
}

func TestSelectorFromTarget(t *testing.T) {
	idx := 1
	sel, err := selectorFromTarget(&idx, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := sel.(resolve.ScreenByIndex); !ok {
		t.Fatalf("expected ScreenByIndex, got %T", sel)
	}

	sel, err = selectorFromTarget(nil, "NEXT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rel, ok := sel.(resolve.ScreenRelative)
	if !ok || rel.Relation != resolve.RelNext {
		t.Fatalf("expected next relation, got %#v", sel)
	}

	if sel, err = selectorFromTarget(nil, ""); err != nil || sel != nil {
		t.Fatalf("expected nil selector for empty target, got %#v, %v", sel, err)
	}

	if _, err = selectorFromTarget(&idx, "next"); err == nil {
		t.Fatal("expected error for index plus relation")
	}
	if _, err = selectorFromTarget(nil, "sideways"); err == nil {
		t.Fatal("expected error for unknown relation")
	}
}

func TestHandleListWindows_FiltersByApp(t *testing.T) {
	s := newTestServer(newTestDesktop(), nil)

	_, out, err := s.handleListWindows(context.Background(), nil, ListWindowsInput{App: "firefox"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Windows) != 1 || out.Windows[0].App != "Firefox" {
		t.Fatalf("unexpected windows: %+v", out.Windows)
	}
	if out.Windows[0].Active {
		t.Fatal("Firefox window should not be marked active")
	}

	_, out, err = s.handleListWindows(context.Background(), nil, ListWindowsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(out.Windows))
	}
}

func TestHandleFocusWindow_ResolvesAndActivates(t *testing.T) {
	desktop := newTestDesktop()
	s := newTestServer(desktop, nil)

	_, out, err := s.handleFocusWindow(context.Background(), nil, FocusWindowInput{Title: "firefox"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.WindowID != 10 {
		t.Fatalf("expected window 10, got %d", out.WindowID)
	}
	if len(desktop.activated) != 1 || desktop.activated[0] != 10 {
		t.Fatalf("expected activation of window 10, got %v", desktop.activated)
	}
}

func TestHandleFocusWindow_NotFoundIsStructured(t *testing.T) {
	s := newTestServer(newTestDesktop(), nil)

	_, _, err := s.handleFocusWindow(context.Background(), nil, FocusWindowInput{App: "Gimp"})
	var notFound *resolve.WindowNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected WindowNotFoundError, got %v", err)
	}
}

func TestHandleMoveWindow_PresetOnTargetScreen(t *testing.T) {
	desktop := newTestDesktop()
	s := newTestServer(desktop, nil)

	idx := 1
	_, out, err := s.handleMoveWindow(context.Background(), nil, MoveWindowInput{
		App:    "Firefox",
		Preset: "maximize",
		Screen: &idx,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Screen != 1 {
		t.Fatalf("expected screen 1, got %d", out.Screen)
	}

	want := geometry.Rect{X: 1920, Y: 0, Width: 2560, Height: 1440}
	if got := desktop.applied[10]; got != want {
		t.Fatalf("applied frame %+v, want %+v", got, want)
	}
}

func TestHandleMoveWindow_DefaultScreenIsCurrent(t *testing.T) {
	desktop := newTestDesktop()
	s := newTestServer(desktop, nil)

	// kitty sits on screen 1; no screen target given.
	_, out, err := s.handleMoveWindow(context.Background(), nil, MoveWindowInput{
		App:    "kitty",
		Preset: "left-half",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Screen != 1 {
		t.Fatalf("expected current screen 1, got %d", out.Screen)
	}
	if got := desktop.applied[20]; got.X != 1920 || got.Width != 1280 {
		t.Fatalf("unexpected frame %+v", got)
	}
}

func TestHandleMoveWindow_OverridesKeepOmittedFields(t *testing.T) {
	desktop := newTestDesktop()
	s := newTestServer(desktop, nil)

	w := 640.0
	_, out, err := s.handleMoveWindow(context.Background(), nil, MoveWindowInput{
		WindowID: func() *uint32 { id := uint32(10); return &id }(),
		Width:    &w,
		Activate: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.X != 100 || out.Y != 100 || out.Width != 640 || out.Height != 600 {
		t.Fatalf("unexpected output frame: %+v", out)
	}
	if len(desktop.activated) != 1 || desktop.activated[0] != 10 {
		t.Fatalf("expected activation, got %v", desktop.activated)
	}
}

func TestHandleConvertBox_GridModel(t *testing.T) {
	s := newTestServer(newTestDesktop(), nil)

	_, out, err := s.handleConvertBox(context.Background(), nil, ConvertBoxInput{
		Model:       "qwen2-vl",
		Box:         []int{283, 263, 463, 295},
		ImageWidth:  1920,
		ImageHeight: 1080,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{543, 284, 888, 318}
	for i := range want {
		if out.Box[i] != want[i] {
			t.Fatalf("box = %v, want %v", out.Box, want)
		}
	}
	if out.CenterX != 715.5 || out.CenterY != 301 {
		t.Fatalf("center = (%g, %g), want (715.5, 301)", out.CenterX, out.CenterY)
	}
	if out.GridBase != 1000 {
		t.Fatalf("grid base = %d, want 1000", out.GridBase)
	}
}

func TestHandleConvertBox_PixelModelPassthrough(t *testing.T) {
	s := newTestServer(newTestDesktop(), nil)

	_, out, err := s.handleConvertBox(context.Background(), nil, ConvertBoxInput{
		Model:       "gpt-4o",
		Box:         []int{10, 20, 30, 40},
		ImageWidth:  1920,
		ImageHeight: 1080,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Box[0] != 10 || out.Box[3] != 40 || out.GridBase != 0 {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestHandleShowOverlay_RendersAndHides(t *testing.T) {
	desktop := newTestDesktop()
	annotator := &fakeAnnotator{}
	s := newTestServer(desktop, annotator)

	_, out, err := s.handleShowOverlay(context.Background(), nil, ShowOverlayInput{
		Elements: []ElementInput{
			{Box: []int{100, 100, 200, 150}, Label: "OK button"},
			{Box: []int{1, 2, 3}}, // malformed, skipped
		},
		Keys:       []string{"ctrl", "t"},
		DurationMS: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Shown != 1 {
		t.Fatalf("expected 1 annotation shown, got %d", out.Shown)
	}
	if len(annotator.annotations) != 1 || annotator.annotations[0].Label != "OK button" {
		t.Fatalf("unexpected annotations: %+v", annotator.annotations)
	}
	if _, ok := annotator.panel.(overlay.KeycapSpec); !ok {
		t.Fatalf("expected keycap panel, got %T", annotator.panel)
	}
	// View spans both screens.
	if annotator.viewSize.Width != 4480 || annotator.viewSize.Height != 1440 {
		t.Fatalf("unexpected view size: %+v", annotator.viewSize)
	}
	if !annotator.hidden {
		t.Fatal("expected overlay to be hidden after the duration")
	}
}

func TestHandleShowOverlay_GridModelNeedsImageSize(t *testing.T) {
	s := newTestServer(newTestDesktop(), &fakeAnnotator{})

	_, _, err := s.handleShowOverlay(context.Background(), nil, ShowOverlayInput{
		Elements: []ElementInput{{Box: []int{0, 0, 500, 500}}},
		Model:    "qwen2-vl",
	})
	if err == nil {
		t.Fatal("expected error for missing image size")
	}
}

func TestHandleShowOverlay_WithoutAnnotator(t *testing.T) {
	s := newTestServer(newTestDesktop(), nil)

	_, _, err := s.handleShowOverlay(context.Background(), nil, ShowOverlayInput{
		Keys: []string{"enter"},
	})
	if err == nil {
		t.Fatal("expected error when overlay rendering is unavailable")
	}
}
