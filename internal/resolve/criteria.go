package resolve

import "fmt"

// Criteria is a window targeting query. One variant per supported query
// shape, each with fixed matching semantics; compound queries are their own
// variant rather than layered predicates, so the semantics of every shape are
// documented in one place.
type Criteria interface {
	fmt.Stringer
	criteria()
}

// ByID matches the window with exactly this identifier. Identifiers are
// unique per snapshot, so absence is the only possible failure.
type ByID struct {
	ID WindowID
}

// ByTitleSubstring matches titles containing the substring,
// case-insensitively. The first window in snapshot order wins; callers should
// treat ties as unspecified but stable within one call.
type ByTitleSubstring struct {
	Title string
}

// ByApp matches windows of the named application, case-insensitive exact
// name. Used as a resolver it returns the first such window in snapshot
// order; used as a filter it keeps all of them.
type ByApp struct {
	App string
}

// ByAppAndTitle intersects the application and title predicates as one
// query, evaluated in a single pass over the source.
type ByAppAndTitle struct {
	App   string
	Title string
}

// FrontmostOfApp selects the named application's topmost window per the
// window manager's stacking signal.
type FrontmostOfApp struct {
	App string
}

// Frontmost selects the focused window per the window manager's active-window
// signal.
type Frontmost struct{}

func (ByID) criteria()             {}
func (ByTitleSubstring) criteria() {}
func (ByApp) criteria()            {}
func (ByAppAndTitle) criteria()    {}
func (FrontmostOfApp) criteria()   {}
func (Frontmost) criteria()        {}

func (c ByID) String() string             { return fmt.Sprintf("id=%d", c.ID) }
func (c ByTitleSubstring) String() string { return fmt.Sprintf("title~%q", c.Title) }
func (c ByApp) String() string            { return fmt.Sprintf("app=%q", c.App) }
func (c ByAppAndTitle) String() string {
	return fmt.Sprintf("app=%q title~%q", c.App, c.Title)
}
func (c FrontmostOfApp) String() string { return fmt.Sprintf("frontmost of app=%q", c.App) }
func (Frontmost) String() string        { return "frontmost" }

// WindowNotFoundError reports that no window matched. It carries the failed
// criteria so callers can produce actionable guidance instead of a generic
// failure.
type WindowNotFoundError struct {
	Criteria Criteria
}

func (e *WindowNotFoundError) Error() string {
	return fmt.Sprintf("no window found matching %s", e.Criteria)
}
