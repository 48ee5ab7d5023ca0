package geometry

import (
	"errors"
	"testing"
)

func TestConvertBoundingBox_GridToPixels(t *testing.T) {
	// 283 * 1920/1000 = 543.36 -> 543, 263 * 1080/1000 = 284.04 -> 284
	// 463 * 1920/1000 = 888.96 -> 888, 295 * 1080/1000 = 318.60 -> 318
	got, err := ConvertBoundingBox([]int{283, 263, 463, 295}, Size{Width: 1920, Height: 1080})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{543, 284, 888, 318}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestConvertBoundingBox_MalformedPassthrough(t *testing.T) {
	box := []int{100, 200, 300}
	got, err := ConvertBoundingBox(box, Size{Width: 1920, Height: 1080})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 || got[0] != 100 || got[1] != 200 || got[2] != 300 {
		t.Fatalf("expected box unchanged, got %v", got)
	}
}

func TestConvertBoundingBox_ZeroImageDimensionFails(t *testing.T) {
	_, err := ConvertBoundingBox([]int{1, 2, 3, 4}, Size{Width: 0, Height: 1080})
	if err == nil {
		t.Fatalf("expected error for zero-width image")
	}
	var ig *InvalidGeometryError
	if !errors.As(err, &ig) {
		t.Fatalf("expected InvalidGeometryError, got %T", err)
	}
}

func TestCenterPoint(t *testing.T) {
	p, ok := CenterPoint([]int{543, 284, 888, 318})
	if !ok {
		t.Fatalf("expected ok for 4-element box")
	}
	// (543+888)/2 = 715.5, (284+318)/2 = 301.0
	if p.X != 715.5 || p.Y != 301.0 {
		t.Fatalf("got (%v, %v), want (715.5, 301)", p.X, p.Y)
	}

	if _, ok := CenterPoint([]int{1, 2, 3}); ok {
		t.Fatalf("expected not-ok for 3-element box")
	}
}

func TestRect_IntersectAndContains(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	b := Rect{X: 50, Y: 50, Width: 100, Height: 100}

	got := a.Intersect(b)
	want := Rect{X: 50, Y: 50, Width: 50, Height: 50}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	if !a.Contains(Point{X: 99, Y: 0}) {
		t.Fatalf("expected (99,0) inside")
	}
	if a.Contains(Point{X: 100, Y: 0}) {
		t.Fatalf("expected right edge exclusive")
	}

	disjoint := a.Intersect(Rect{X: 200, Y: 200, Width: 10, Height: 10})
	if disjoint.Area() != 0 {
		t.Fatalf("expected empty intersection, got %+v", disjoint)
	}
}
