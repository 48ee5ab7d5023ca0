package overlay

import (
	"testing"

	"github.com/halvard/spyglass/internal/geometry"
)

func TestPanelSize_MonotonicInContent(t *testing.T) {
	specs := []Spec{
		KeycapSpec{Keys: []string{"P"}},
		KeycapSpec{Keys: []string{"Shift", "P"}},
		KeycapSpec{Keys: []string{"Ctrl", "Shift", "P"}},
		KeycapSpec{Keys: []string{"Ctrl", "Alt", "Shift", "P"}},
	}

	prev := 0.0
	for _, s := range specs {
		size := s.Size()
		if size.Width < prev {
			t.Fatalf("width shrank with more keys: %v after %v", size.Width, prev)
		}
		prev = size.Width
	}
}

func TestPanelSize_FloorForMinimalContent(t *testing.T) {
	size := KeycapSpec{Keys: []string{"A"}}.Size()
	if size.Width < minPanelWidth {
		t.Fatalf("expected floor width %d, got %v", minPanelWidth, size.Width)
	}
	if size.Height <= 0 {
		t.Fatalf("expected positive height, got %v", size.Height)
	}
}

func TestBreadcrumbSize_ConstantHeightAcrossDepths(t *testing.T) {
	shallow := BreadcrumbSpec{Segments: []string{"File"}}
	deep := BreadcrumbSpec{Segments: []string{"File", "Export", "As PNG", "Options"}}

	if shallow.Size().Height != deep.Size().Height {
		t.Fatalf("breadcrumb height changed with depth: %v vs %v",
			shallow.Size().Height, deep.Size().Height)
	}
	if deep.Size().Width < shallow.Size().Width {
		t.Fatalf("breadcrumb width shrank with depth")
	}
}

func TestLabelPosition_PrefersAbove(t *testing.T) {
	view := geometry.Size{Width: 1920, Height: 1080}
	element := geometry.Rect{X: 100, Y: 200, Width: 80, Height: 30}

	p := LabelPosition(element, view)
	// Above: y = 200 - 6 - 16 = 178.
	if p.X != 100 || p.Y != 178 {
		t.Fatalf("expected (100, 178), got %+v", p)
	}
}

func TestLabelPosition_FallsBelowNearTopEdge(t *testing.T) {
	view := geometry.Size{Width: 1920, Height: 1080}
	element := geometry.Rect{X: 100, Y: 10, Width: 80, Height: 30}

	p := LabelPosition(element, view)
	// Below: y = 10 + 30 + 6 = 46.
	if p.X != 100 || p.Y != 46 {
		t.Fatalf("expected (100, 46), got %+v", p)
	}
}

func TestLabelPosition_CenterWhenNeitherFits(t *testing.T) {
	// Element covers nearly the whole tiny view: no room above or below.
	view := geometry.Size{Width: 200, Height: 40}
	element := geometry.Rect{X: 0, Y: 4, Width: 200, Height: 34}

	p := LabelPosition(element, view)
	if p != element.Center() {
		t.Fatalf("expected element center %+v, got %+v", element.Center(), p)
	}
}
