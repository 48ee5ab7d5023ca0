package tui

import (
	"testing"

	"github.com/halvard/spyglass/internal/geometry"
	"github.com/halvard/spyglass/internal/resolve"
)

func TestWindowItem_Text(t *testing.T) {
	item := windowItem{win: resolve.WindowDescriptor{
		ID:    42,
		App:   "Firefox",
		Title: "Mozilla Firefox",
	}}
	if item.Title() != "Firefox" {
		t.Fatalf("unexpected title %q", item.Title())
	}
	if item.Description() != "Mozilla Firefox" {
		t.Fatalf("unexpected description %q", item.Description())
	}
	if item.FilterValue() != "Firefox Mozilla Firefox" {
		t.Fatalf("unexpected filter value %q", item.FilterValue())
	}

	minimized := windowItem{win: resolve.WindowDescriptor{ID: 7, App: "Gimp", IsMinimized: true}}
	if minimized.Description() != "window 7 (minimized)" {
		t.Fatalf("unexpected description %q", minimized.Description())
	}
}

func TestParseScreenChoice(t *testing.T) {
	if sel, ok := parseScreenChoice("2").(resolve.ScreenByIndex); !ok || sel.Index != 2 {
		t.Fatalf("expected index selector, got %#v", parseScreenChoice("2"))
	}
	if sel, ok := parseScreenChoice("next").(resolve.ScreenRelative); !ok || sel.Relation != resolve.RelNext {
		t.Fatalf("expected relative selector, got %#v", parseScreenChoice("next"))
	}
}

func TestNewModel_BuildsItems(t *testing.T) {
	windows := []resolve.WindowDescriptor{
		{ID: 1, App: "a", Bounds: geometry.Rect{Width: 100, Height: 100}},
		{ID: 2, App: "b", Bounds: geometry.Rect{Width: 100, Height: 100}},
	}
	m := newModel(windows, nil)
	if len(m.list.Items()) != 2 {
		t.Fatalf("expected 2 items, got %d", len(m.list.Items()))
	}
	if m.phase != phasePickWindow {
		t.Fatalf("expected initial pick phase, got %d", m.phase)
	}
}
