package resolve

import (
	"fmt"
	"sort"
)

// Relation selects a screen relative to a reference window's screen.
type Relation string

const (
	RelNext     Relation = "next"
	RelPrevious Relation = "previous"
	RelSame     Relation = "same"
	RelPrimary  Relation = "primary"
)

// ScreenSelector is a screen targeting query.
type ScreenSelector interface {
	fmt.Stringer
	screenSelector()
}

// ScreenByIndex selects the screen at a 0-based index in stable index order.
type ScreenByIndex struct {
	Index int
}

// ScreenRelative selects a screen relative to the reference window:
// next/previous wrap around the index-ordered list, same is the screen
// containing the window, primary is the descriptor flagged primary.
type ScreenRelative struct {
	Relation Relation
}

func (ScreenByIndex) screenSelector()  {}
func (ScreenRelative) screenSelector() {}

func (s ScreenByIndex) String() string  { return fmt.Sprintf("screen index %d", s.Index) }
func (s ScreenRelative) String() string { return fmt.Sprintf("%s screen", s.Relation) }

// ScreenNotFoundError reports that a selector matched no screen; it carries
// the selector that failed.
type ScreenNotFoundError struct {
	Selector ScreenSelector
}

func (e *ScreenNotFoundError) Error() string {
	return fmt.Sprintf("no screen found for %s", e.Selector)
}

// InvalidIndexError reports a screen index outside [0, count).
type InvalidIndexError struct {
	Index int
	Count int
}

func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("screen index %d out of range [0, %d)", e.Index, e.Count)
}

// Screen resolves a screen selector against a snapshot of screens. ref is the
// reference window for the relative selectors; it may be nil for ByIndex and
// primary.
func Screen(sel ScreenSelector, screens []ScreenDescriptor, ref *WindowDescriptor) (ScreenDescriptor, error) {
	ordered := make([]ScreenDescriptor, len(screens))
	copy(ordered, screens)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })

	switch s := sel.(type) {
	case ScreenByIndex:
		if s.Index < 0 || s.Index >= len(ordered) {
			return ScreenDescriptor{}, &InvalidIndexError{Index: s.Index, Count: len(ordered)}
		}
		return ordered[s.Index], nil

	case ScreenRelative:
		switch s.Relation {
		case RelPrimary:
			for _, sc := range ordered {
				if sc.IsPrimary {
					return sc, nil
				}
			}

		case RelSame:
			if ref == nil {
				break
			}
			if sc, ok := ScreenContaining(*ref, ordered); ok {
				return sc, nil
			}

		case RelNext, RelPrevious:
			if ref == nil || len(ordered) == 0 {
				break
			}
			cur, ok := ScreenContaining(*ref, ordered)
			if !ok {
				break
			}
			pos := 0
			for i, sc := range ordered {
				if sc.Index == cur.Index {
					pos = i
					break
				}
			}
			if s.Relation == RelNext {
				return ordered[(pos+1)%len(ordered)], nil
			}
			return ordered[(pos-1+len(ordered))%len(ordered)], nil

		default:
			return ScreenDescriptor{}, fmt.Errorf("unsupported screen relation %q", s.Relation)
		}

	default:
		return ScreenDescriptor{}, fmt.Errorf("unsupported screen selector %T", sel)
	}

	return ScreenDescriptor{}, &ScreenNotFoundError{Selector: sel}
}

// ScreenContaining returns the screen holding a window: the one whose frame
// contains the window's origin, falling back to greatest frame overlap when
// the origin sits exactly on a boundary or off every frame.
func ScreenContaining(w WindowDescriptor, screens []ScreenDescriptor) (ScreenDescriptor, bool) {
	for _, sc := range screens {
		if sc.Frame.Contains(w.Bounds.Origin()) {
			return sc, true
		}
	}

	best := -1
	bestArea := 0.0
	for i, sc := range screens {
		area := sc.Frame.Intersect(w.Bounds).Area()
		if area > bestArea {
			bestArea = area
			best = i
		}
	}
	if best >= 0 {
		return screens[best], true
	}
	return ScreenDescriptor{}, false
}
