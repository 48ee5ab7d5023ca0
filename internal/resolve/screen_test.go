package resolve

import (
	"errors"
	"testing"

	"github.com/halvard/spyglass/internal/geometry"
)

func testScreens() []ScreenDescriptor {
	return []ScreenDescriptor{
		{
			Index:        0,
			Name:         "eDP-1",
			Frame:        geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080},
			VisibleFrame: geometry.Rect{X: 0, Y: 30, Width: 1920, Height: 1050},
			IsPrimary:    true,
		},
		{
			Index:        1,
			Name:         "DP-2",
			Frame:        geometry.Rect{X: 1920, Y: 0, Width: 2560, Height: 1440},
			VisibleFrame: geometry.Rect{X: 1920, Y: 0, Width: 2560, Height: 1440},
		},
		{
			Index:        2,
			Name:         "HDMI-1",
			Frame:        geometry.Rect{X: 4480, Y: 0, Width: 1920, Height: 1080},
			VisibleFrame: geometry.Rect{X: 4480, Y: 0, Width: 1920, Height: 1080},
		},
	}
}

func TestScreen_ByIndex(t *testing.T) {
	sc, err := Screen(ScreenByIndex{Index: 1}, testScreens(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.Name != "DP-2" {
		t.Fatalf("expected DP-2, got %q", sc.Name)
	}
}

func TestScreen_ByIndexOutOfRange(t *testing.T) {
	_, err := Screen(ScreenByIndex{Index: 3}, testScreens(), nil)
	var inv *InvalidIndexError
	if !errors.As(err, &inv) {
		t.Fatalf("expected InvalidIndexError, got %v", err)
	}
	if inv.Index != 3 || inv.Count != 3 {
		t.Fatalf("expected index=3 count=3, got %+v", inv)
	}

	if _, err := Screen(ScreenByIndex{Index: -1}, testScreens(), nil); err == nil {
		t.Fatalf("expected error for negative index")
	}
}

func TestScreen_Primary(t *testing.T) {
	sc, err := Screen(ScreenRelative{Relation: RelPrimary}, testScreens(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.Index != 0 {
		t.Fatalf("expected primary screen 0, got %d", sc.Index)
	}
}

func TestScreen_NextPreviousWrap(t *testing.T) {
	win := &WindowDescriptor{ID: 1, Bounds: geometry.Rect{X: 4500, Y: 10, Width: 800, Height: 600}}

	// Window is on screen 2 (the last); next wraps to 0.
	sc, err := Screen(ScreenRelative{Relation: RelNext}, testScreens(), win)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.Index != 0 {
		t.Fatalf("expected wrap to screen 0, got %d", sc.Index)
	}

	winFirst := &WindowDescriptor{ID: 2, Bounds: geometry.Rect{X: 10, Y: 10, Width: 800, Height: 600}}
	sc, err = Screen(ScreenRelative{Relation: RelPrevious}, testScreens(), winFirst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.Index != 2 {
		t.Fatalf("expected wrap to screen 2, got %d", sc.Index)
	}
}

func TestScreen_Same(t *testing.T) {
	win := &WindowDescriptor{ID: 1, Bounds: geometry.Rect{X: 2000, Y: 100, Width: 800, Height: 600}}

	sc, err := Screen(ScreenRelative{Relation: RelSame}, testScreens(), win)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.Index != 1 {
		t.Fatalf("expected screen 1, got %d", sc.Index)
	}
}

func TestScreenContaining_BoundaryFallsBackToOverlap(t *testing.T) {
	screens := testScreens()

	// Origin exactly on the right boundary of screen 0: containment fails
	// (edges are exclusive), so greatest overlap decides. The window body
	// lies on screen 1.
	win := WindowDescriptor{ID: 1, Bounds: geometry.Rect{X: 1920, Y: 0, Width: 800, Height: 600}}
	sc, ok := ScreenContaining(win, screens)
	if !ok {
		t.Fatalf("expected a containing screen")
	}
	if sc.Index != 1 {
		t.Fatalf("expected screen 1 by overlap, got %d", sc.Index)
	}
}

func TestScreen_SameWithoutReferenceIsNotFound(t *testing.T) {
	_, err := Screen(ScreenRelative{Relation: RelSame}, testScreens(), nil)
	var nf *ScreenNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected ScreenNotFoundError, got %v", err)
	}
}

func TestVirtualBounds(t *testing.T) {
	got := VirtualBounds(testScreens())
	want := geometry.Rect{X: 0, Y: 0, Width: 6400, Height: 1440}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
