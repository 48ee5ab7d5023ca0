package resolve

import (
	"fmt"
	"strings"
)

// Window resolves a targeting query against a snapshot. Absence is always a
// *WindowNotFoundError carrying the criteria, never a default match.
func Window(c Criteria, snap Snapshot) (WindowDescriptor, error) {
	switch q := c.(type) {
	case ByID:
		if w, ok := snap.Find(q.ID); ok {
			return w, nil
		}

	case ByTitleSubstring:
		title := strings.ToLower(q.Title)
		for _, w := range snap.Windows {
			if strings.Contains(strings.ToLower(w.Title), title) {
				return w, nil
			}
		}

	case ByApp:
		for _, w := range snap.Windows {
			if strings.EqualFold(w.App, q.App) {
				return w, nil
			}
		}

	case ByAppAndTitle:
		title := strings.ToLower(q.Title)
		for _, w := range snap.Windows {
			if strings.EqualFold(w.App, q.App) && strings.Contains(strings.ToLower(w.Title), title) {
				return w, nil
			}
		}

	case FrontmostOfApp:
		// Answer from the stacking signal only. Snapshot enumeration order
		// says nothing about what is on top.
		for _, id := range snap.Stacking {
			if w, ok := snap.Find(id); ok && strings.EqualFold(w.App, q.App) {
				return w, nil
			}
		}
		if len(snap.Stacking) == 0 && snap.Active != 0 {
			if w, ok := snap.Find(snap.Active); ok && strings.EqualFold(w.App, q.App) {
				return w, nil
			}
		}

	case Frontmost:
		if snap.Active != 0 {
			if w, ok := snap.Find(snap.Active); ok {
				return w, nil
			}
		}
		for _, id := range snap.Stacking {
			if w, ok := snap.Find(id); ok {
				return w, nil
			}
		}

	default:
		return WindowDescriptor{}, fmt.Errorf("unsupported window criteria %T", c)
	}

	return WindowDescriptor{}, &WindowNotFoundError{Criteria: c}
}

// WindowsOfApp filters a snapshot down to one application's windows,
// preserving snapshot order.
func WindowsOfApp(app string, snap Snapshot) []WindowDescriptor {
	var out []WindowDescriptor
	for _, w := range snap.Windows {
		if strings.EqualFold(w.App, app) {
			out = append(out, w)
		}
	}
	return out
}
