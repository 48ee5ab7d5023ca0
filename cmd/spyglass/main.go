package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/halvard/spyglass/internal/layout"
	"github.com/halvard/spyglass/internal/resolve"
	"github.com/halvard/spyglass/internal/x11"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "windows":
		os.Exit(runWindows(os.Args[2:]))
	case "screens":
		os.Exit(runScreens(os.Args[2:]))
	case "focus":
		os.Exit(runFocus(os.Args[2:]))
	case "move":
		os.Exit(runMove(os.Args[2:]))
	case "pick":
		os.Exit(runPick(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: spyglass <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  windows  List top-level windows")
	fmt.Fprintln(w, "  screens  List connected screens")
	fmt.Fprintln(w, "  focus    Raise and focus a window")
	fmt.Fprintln(w, "  move     Move and/or resize a window")
	fmt.Fprintln(w, "  pick     Interactively pick a window and place it")
	fmt.Fprintln(w, "  mcp      MCP server commands")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'spyglass <command> --help' for command-specific options.")
}

// targetFlags are the window targeting flags shared by focus and move.
type targetFlags struct {
	id        *uint
	app       *string
	title     *string
	frontmost *bool
	idSet     bool
}

func addTargetFlags(fs *flag.FlagSet) *targetFlags {
	return &targetFlags{
		id:        fs.Uint("id", 0, "target window by exact id"),
		app:       fs.String("app", "", "target a window of this application"),
		title:     fs.String("title", "", "target a window whose title contains this substring"),
		frontmost: fs.Bool("frontmost", false, "target the focused window (with -app: that app's topmost window)"),
	}
}

func (t *targetFlags) criteria(fs *flag.FlagSet) (resolve.Criteria, error) {
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "id" {
			t.idSet = true
		}
	})

	switch {
	case t.idSet:
		return resolve.ByID{ID: resolve.WindowID(*t.id)}, nil
	case *t.app != "" && *t.title != "":
		return resolve.ByAppAndTitle{App: *t.app, Title: *t.title}, nil
	case *t.app != "" && *t.frontmost:
		return resolve.FrontmostOfApp{App: *t.app}, nil
	case *t.app != "":
		return resolve.ByApp{App: *t.app}, nil
	case *t.title != "":
		return resolve.ByTitleSubstring{Title: *t.title}, nil
	case *t.frontmost:
		return resolve.Frontmost{}, nil
	}
	return nil, fmt.Errorf("no window target given: use -id, -app, -title, or -frontmost")
}

func runWindows(args []string) int {
	fs := flag.NewFlagSet("windows", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	app := fs.String("app", "", "only list windows of this application")
	asJSON := fs.Bool("json", false, "emit JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: spyglass windows [-app NAME] [-json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List top-level windows with id, app, title, and pixel bounds.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	conn, err := x11.NewConnection()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer conn.Close()

	snap, err := conn.Snapshot()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	windows := snap.Windows
	if *app != "" {
		windows = resolve.WindowsOfApp(*app, snap)
	}

	if *asJSON {
		type jsonWindow struct {
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
		out := make([]jsonWindow, 0, len(windows))
		for _, w := range windows {
			out = append(out, jsonWindow{
				ID:        uint32(w.ID),
				App:       w.App,
				Title:     w.Title,
				X:         int(w.Bounds.X),
				Y:         int(w.Bounds.Y),
				Width:     int(w.Bounds.Width),
				Height:    int(w.Bounds.Height),
				Minimized: w.IsMinimized,
				Active:    w.ID == snap.Active,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	for _, w := range windows {
		marker := " "
		if w.ID == snap.Active {
			marker = "*"
		}
		state := ""
		if w.IsMinimized {
			state = " [minimized]"
		}
		fmt.Printf("%s %-10d %-20s %4.0fx%-4.0f at %5.0f,%-5.0f %s%s\n",
			marker, w.ID, w.App, w.Bounds.Width, w.Bounds.Height, w.Bounds.X, w.Bounds.Y, w.Title, state)
	}
	return 0
}

func runScreens(args []string) int {
	fs := flag.NewFlagSet("screens", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "emit JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: spyglass screens [-json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List connected screens with frame, visible frame, and scale.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	conn, err := x11.NewConnection()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer conn.Close()

	screens, err := conn.Screens()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *asJSON {
		type jsonScreen struct {
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
		out := make([]jsonScreen, 0, len(screens))
		for _, sc := range screens {
			out = append(out, jsonScreen{
				Index:         sc.Index,
				Name:          sc.Name,
				X:             int(sc.Frame.X),
				Y:             int(sc.Frame.Y),
				Width:         int(sc.Frame.Width),
				Height:        int(sc.Frame.Height),
				VisibleX:      int(sc.VisibleFrame.X),
				VisibleY:      int(sc.VisibleFrame.Y),
				VisibleWidth:  int(sc.VisibleFrame.Width),
				VisibleHeight: int(sc.VisibleFrame.Height),
				Scale:         sc.Scale,
				Primary:       sc.IsPrimary,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	for _, sc := range screens {
		marker := " "
		if sc.IsPrimary {
			marker = "*"
		}
		fmt.Printf("%s %d %-8s %4.0fx%-4.0f at %5.0f,%-5.0f visible %4.0fx%-4.0f scale %.1f\n",
			marker, sc.Index, sc.Name,
			sc.Frame.Width, sc.Frame.Height, sc.Frame.X, sc.Frame.Y,
			sc.VisibleFrame.Width, sc.VisibleFrame.Height, sc.Scale)
	}
	return 0
}

func runFocus(args []string) int {
	fs := flag.NewFlagSet("focus", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	target := addTargetFlags(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: spyglass focus [-id ID | -app NAME [-title SUBSTR | -frontmost] | -title SUBSTR | -frontmost]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Raise and focus the targeted window.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	criteria, err := target.criteria(fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return 2
	}

	conn, err := x11.NewConnection()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer conn.Close()

	snap, err := conn.Snapshot()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	win, err := resolve.Window(criteria, snap)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := conn.Activate(win.ID); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("focused %d (%s: %s)\n", win.ID, win.App, win.Title)
	return 0
}

func runMove(args []string) int {
	fs := flag.NewFlagSet("move", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	target := addTargetFlags(fs)
	preset := fs.String("preset", "", "named layout: maximize, center, left-half, right-half, top-half, bottom-half")
	x := fs.Float64("x", 0, "new x origin in pixels")
	y := fs.Float64("y", 0, "new y origin in pixels")
	width := fs.Float64("width", 0, "new width in pixels")
	height := fs.Float64("height", 0, "new height in pixels")
	screen := fs.Int("screen", 0, "target screen by index")
	screenRel := fs.String("screen-rel", "", "target screen relative to the window: next, previous, same, primary")
	activate := fs.Bool("activate", false, "also focus the window after moving it")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: spyglass move <target flags> [-preset NAME | -x N -y N -width N -height N] [-screen N | -screen-rel REL] [-activate]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Move and/or resize the targeted window. Omitted geometry fields keep")
		fmt.Fprintln(os.Stderr, "their current values. Moving to another screen without -x/-y keeps the")
		fmt.Fprintln(os.Stderr, "window's relative position on the new screen.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	criteria, err := target.criteria(fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return 2
	}

	var p *layout.Preset
	if *preset != "" {
		parsed, err := layout.ParsePreset(*preset)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		p = &parsed
	}

	var ov layout.Overrides
	var screenSet bool
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "x":
			ov.X = x
		case "y":
			ov.Y = y
		case "width":
			ov.Width = width
		case "height":
			ov.Height = height
		case "screen":
			screenSet = true
		}
	})

	var selector resolve.ScreenSelector
	switch {
	case screenSet && *screenRel != "":
		fmt.Fprintln(os.Stderr, "-screen and -screen-rel are mutually exclusive")
		return 2
	case screenSet:
		selector = resolve.ScreenByIndex{Index: *screen}
	case *screenRel != "":
		rel := resolve.Relation(*screenRel)
		switch rel {
		case resolve.RelNext, resolve.RelPrevious, resolve.RelSame, resolve.RelPrimary:
			selector = resolve.ScreenRelative{Relation: rel}
		default:
			fmt.Fprintf(os.Stderr, "unknown screen relation %q\n", *screenRel)
			return 2
		}
	}

	conn, err := x11.NewConnection()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer conn.Close()

	snap, err := conn.Snapshot()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	win, err := resolve.Window(criteria, snap)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	screens, err := conn.Screens()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if selector == nil {
		if sc, ok := resolve.ScreenContaining(win, screens); ok {
			selector = resolve.ScreenByIndex{Index: sc.Index}
		} else {
			selector = resolve.ScreenRelative{Relation: resolve.RelPrimary}
		}
	}
	targetScreen, err := resolve.Screen(selector, screens, &win)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	frame, err := layout.Compute(win, p, ov, targetScreen, screens)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := conn.ApplyFrame(win.ID, frame); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *activate {
		if err := conn.Activate(win.ID); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	fmt.Printf("moved %d (%s) to %.0fx%.0f at %.0f,%.0f on screen %d\n",
		win.ID, win.App, frame.Width, frame.Height, frame.X, frame.Y, targetScreen.Index)
	return 0
}
