package mcp

// WindowInfo summarizes one top-level window for tool output.
type WindowInfo struct {
	ID        uint32 `json:"id"`
	App       string `json:"app"`
	Title     string `json:"title"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Minimized bool   `json:"minimized,omitempty"`
	Active    bool   `json:"active,omitempty"`
}

// ScreenInfo summarizes one connected screen for tool output.
type ScreenInfo struct {
	Index         int     `json:"index"`
	Name          string  `json:"name"`
	X             int     `json:"x"`
	Y             int     `json:"y"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	VisibleX      int     `json:"visible_x"`
	VisibleY      int     `json:"visible_y"`
	VisibleWidth  int     `json:"visible_width"`
	VisibleHeight int     `json:"visible_height"`
	Scale         float64 `json:"scale"`
	Primary       bool    `json:"primary,omitempty"`
}

type ListWindowsInput struct {
	App string `json:"app,omitempty" jsonschema:"Only list windows of this application (case-insensitive name match)"`
}

type ListWindowsOutput struct {
	Windows []WindowInfo `json:"windows"`
}

type ListScreensInput struct{}

type ListScreensOutput struct {
	Screens []ScreenInfo `json:"screens"`
}

// Window targeting fields shared by focus_window and move_window. Exactly one
// targeting shape must be given: window_id; app and/or title; or frontmost
// (alone for the focused window, with app for that app's topmost window).
type FocusWindowInput struct {
	WindowID  *uint32 `json:"window_id,omitempty" jsonschema:"Target the window with this exact id from list_windows"`
	App       string  `json:"app,omitempty" jsonschema:"Target a window of this application (case-insensitive name match)"`
	Title     string  `json:"title,omitempty" jsonschema:"Target a window whose title contains this substring (case-insensitive)"`
	Frontmost bool    `json:"frontmost,omitempty" jsonschema:"Target the focused window, or with app the topmost window of that app"`
}

type FocusWindowOutput struct {
	WindowID uint32 `json:"window_id"`
	App      string `json:"app"`
	Title    string `json:"title"`
}

type MoveWindowInput struct {
	WindowID  *uint32 `json:"window_id,omitempty" jsonschema:"Target the window with this exact id from list_windows"`
	App       string  `json:"app,omitempty" jsonschema:"Target a window of this application (case-insensitive name match)"`
	Title     string  `json:"title,omitempty" jsonschema:"Target a window whose title contains this substring (case-insensitive)"`
	Frontmost bool    `json:"frontmost,omitempty" jsonschema:"Target the focused window, or with app the topmost window of that app"`

	Preset string   `json:"preset,omitempty" jsonschema:"Named layout: maximize, center, left-half, right-half, top-half, or bottom-half. Takes precedence over x/y/width/height"`
	X      *float64 `json:"x,omitempty" jsonschema:"New x origin in screen pixels; omitted fields keep their current value"`
	Y      *float64 `json:"y,omitempty" jsonschema:"New y origin in screen pixels"`
	Width  *float64 `json:"width,omitempty" jsonschema:"New width in pixels"`
	Height *float64 `json:"height,omitempty" jsonschema:"New height in pixels"`

	Screen         *int   `json:"screen,omitempty" jsonschema:"Target screen by 0-based index from list_screens"`
	ScreenRelation string `json:"screen_relation,omitempty" jsonschema:"Target screen relative to the window: next, previous, same, or primary"`

	Activate bool `json:"activate,omitempty" jsonschema:"Also focus the window after moving it"`
}

type MoveWindowOutput struct {
	WindowID uint32 `json:"window_id"`
	App      string `json:"app"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Screen   int    `json:"screen"`
}

type ConvertBoxInput struct {
	Model       string `json:"model" jsonschema:"required,The detection model that produced the box (e.g. qwen2-vl, gpt-4o)"`
	Box         []int  `json:"box" jsonschema:"required,The raw [x1,y1,x2,y2] bounding box as emitted by the model"`
	ImageWidth  int    `json:"image_width" jsonschema:"required,Width in pixels of the screenshot the model was shown"`
	ImageHeight int    `json:"image_height" jsonschema:"required,Height in pixels of the screenshot the model was shown"`
}

type ConvertBoxOutput struct {
	Box     []int   `json:"box"`
	CenterX float64 `json:"center_x"`
	CenterY float64 `json:"center_y"`
	// GridBase is the normalized grid the model's convention uses, or 0 when
	// the box was already in pixels and passed through unchanged.
	GridBase int `json:"grid_base"`
}

// ElementInput is one box to highlight on screen.
type ElementInput struct {
	Box   []int  `json:"box" jsonschema:"required,The [x1,y1,x2,y2] box to highlight"`
	Label string `json:"label,omitempty" jsonschema:"Short label drawn next to the box"`
}

type ShowOverlayInput struct {
	Elements []ElementInput `json:"elements,omitempty" jsonschema:"Boxes to outline and label on screen"`
	Model    string         `json:"model,omitempty" jsonschema:"Detection model that produced the boxes; grid-convention boxes are converted to pixels first"`

	ImageWidth  int `json:"image_width,omitempty" jsonschema:"Width of the screenshot the boxes refer to; required when model uses a grid convention"`
	ImageHeight int `json:"image_height,omitempty" jsonschema:"Height of the screenshot the boxes refer to"`

	Keys       []string `json:"keys,omitempty" jsonschema:"Key names to show as a keycap panel (e.g. ctrl, shift, t)"`
	Breadcrumb []string `json:"breadcrumb,omitempty" jsonschema:"Menu path segments to show as a breadcrumb panel"`

	DurationMS int `json:"duration_ms,omitempty" jsonschema:"How long to keep the overlay visible; defaults to the configured duration"`
}

type ShowOverlayOutput struct {
	Shown      int `json:"shown"`
	DurationMS int `json:"duration_ms"`
}
